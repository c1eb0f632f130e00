package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminStatsHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/admin_stats"
	cancelReservationHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/cancel_reservation"
	createMachineHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/create_machine"
	createReservationHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/create_reservation"
	deleteMachineHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/delete_machine"
	exportReservationsHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/export_reservations"
	getAvailableSlotsHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/get_available_slots"
	getBlacklistHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/get_blacklist"
	listMachinesHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/list_machines"
	listReservationsHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/list_reservations"
	loginHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/login"
	releaseSlotsHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/release_slots"
	rescheduleReservationHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/reschedule_reservation"
	seedDemoHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/seed_demo"
	setBlacklistHandler "github.com/v0ron/DLS-LaundryService/internal/api/handlers/set_blacklist"
	"github.com/v0ron/DLS-LaundryService/internal/api/middleware"
	"github.com/v0ron/DLS-LaundryService/internal/config"
	machineRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/machine"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	userRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/user"
	"github.com/v0ron/DLS-LaundryService/internal/seed"
	authService "github.com/v0ron/DLS-LaundryService/internal/service/auth"
	blacklistService "github.com/v0ron/DLS-LaundryService/internal/service/blacklist"
	machinesService "github.com/v0ron/DLS-LaundryService/internal/service/machines"
	reportsService "github.com/v0ron/DLS-LaundryService/internal/service/reports"
	reservationsService "github.com/v0ron/DLS-LaundryService/internal/service/reservations"
	createReservationUC "github.com/v0ron/DLS-LaundryService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/v0ron/DLS-LaundryService/internal/usecase/get_available_slots"
	rescheduleReservationUC "github.com/v0ron/DLS-LaundryService/internal/usecase/reschedule_reservation"
	"github.com/v0ron/DLS-LaundryService/pkg/auth"
	"github.com/v0ron/DLS-LaundryService/pkg/dbmetrics"
	"github.com/v0ron/DLS-LaundryService/pkg/logger"
	"github.com/v0ron/DLS-LaundryService/pkg/metrics"
	"github.com/v0ron/DLS-LaundryService/pkg/simpletxmanager"
	"github.com/v0ron/DLS-LaundryService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting DLS-LaundryService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		machineRepository     *machineRepo.Repository
		userRepository        *userRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		machineRepository = machineRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		machineRepository = machineRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Засеваем пустую базу стартовыми данными
	seeder := seed.NewSeeder(machineRepository, userRepository, log)
	if err := seeder.Run(context.Background()); err != nil {
		log.Fatal("Failed to seed database: %v", err)
	}

	// Провайдер токенов
	tokenManager := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, tokenManager, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	machinesSvc := machinesService.NewService(
		machineRepository,
		reservationRepository,
		txMgr,
		machinesService.Config{
			DailyStartHour: cfg.Booking.DailyStartHour,
			DailyEndHour:   cfg.Booking.DailyEndHour,
		},
		log,
	)
	blacklistSvc := blacklistService.NewService(userRepository, log)
	reportsSvc := reportsService.NewService(reservationRepository, machineRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		machineRepository,
		getAvailableSlotsUC.Config{
			DailyStartHour: cfg.Booking.DailyStartHour,
			DailyEndHour:   cfg.Booking.DailyEndHour,
		},
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		machineRepository,
		userRepository,
		txMgr,
		createReservationUC.Config{
			DailyStartHour:    cfg.Booking.DailyStartHour,
			DailyEndHour:      cfg.Booking.DailyEndHour,
			DailyLimitPerUser: cfg.Booking.DailyLimitPerUser,
			CooldownMinutes:   cfg.Booking.CooldownMinutes,
		},
		log,
	)
	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		userRepository,
		txMgr,
		rescheduleReservationUC.Config{
			DailyStartHour: cfg.Booking.DailyStartHour,
			DailyEndHour:   cfg.Booking.DailyEndHour,
		},
		log,
	)

	// Инициализируем handlers
	login := loginHandler.NewHandler(authSvc, log)
	listMachines := listMachinesHandler.NewHandler(machinesSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	createMachine := createMachineHandler.NewHandler(machinesSvc, log)
	deleteMachine := deleteMachineHandler.NewHandler(machinesSvc, log)
	releaseSlots := releaseSlotsHandler.NewHandler(machinesSvc, log)
	seedDemo := seedDemoHandler.NewHandler(machinesSvc, log)
	adminStats := adminStatsHandler.NewHandler(reportsSvc, log)
	exportReservations := exportReservationsHandler.NewHandler(reportsSvc, log)
	getBlacklist := getBlacklistHandler.NewHandler(blacklistSvc, log)
	setBlacklist := setBlacklistHandler.NewHandler(blacklistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/machines", listMachines.Handle).Methods(http.MethodGet)
	api.HandleFunc("/machines/{machineId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Маршруты, требующие аутентификации
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenManager, log))

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Административные маршруты
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	admin.HandleFunc("/machines", createMachine.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/machines/{machineId}", deleteMachine.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/machines/{machineId}/release", releaseSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/stats", adminStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/blacklist", getBlacklist.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/blacklist", setBlacklist.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/seed-demo", seedDemo.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/export/reservations.csv", exportReservations.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
