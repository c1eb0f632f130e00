package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	machineRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/machine"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	userRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/user"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// UseCase use case создания брони слота
type UseCase struct {
	reservationRepo ReservationRepository
	machineRepo     MachineRepository
	userRepo        UserRepository
	txManager       TransactionManager
	config          Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	machineRepo MachineRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		machineRepo:     machineRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		config:          config,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони.
// Порядок проверок: валидация, черный список, cooldown, существование
// слота и его актуальность, затем в сериализуемой транзакции - дневная
// квота, пересечение интервалов и занятость слота. Уникальный индекс
// (machine_id, date, start_hour) служит последним рубежом от гонок.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, machine=%d, slot=%d, date=%s",
		req.UserID, req.MachineID, req.SlotID, req.DateKey)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время; пустая дата = сегодня
	now := uc.timeProvider.Now()
	dateKey := req.DateKey
	if dateKey == "" {
		dateKey = domain.ToDateKey(now)
	}

	// 3. Проверяем черный список
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if user.IsBanned(now) {
		uc.logger.Warn("CreateReservation: user id=%d is banned until %v", req.UserID, user.BannedUntil)
		return nil, ErrUserBanned
	}

	// 4. Проверяем cooldown с момента последней успешной брони
	if err := uc.checkCooldown(ctx, req.UserID, now); err != nil {
		return nil, err
	}

	// 5. Проверяем существование машины
	machine, err := uc.machineRepo.GetByID(ctx, req.MachineID)
	if err != nil {
		if errors.Is(err, machineRepo.ErrMachineNotFound) {
			uc.logger.Warn("CreateReservation: machine id=%d not found", req.MachineID)
			return nil, ErrMachineNotFound
		}
		uc.logger.Error("CreateReservation: failed to get machine id=%d: %v", req.MachineID, err)
		return nil, fmt.Errorf("%w: failed to get machine: %v", ErrInternal, err)
	}

	// 6. Восстанавливаем интервал слота из его ID
	startHour, endHour, err := resolveSlotHours(req.MachineID, req.SlotID,
		uc.config.DailyStartHour, uc.config.DailyEndHour)
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 7. Отклоняем прошедший слот: конец часа не позже текущего часа сегодня
	if domain.ToDateKey(now) == dateKey && endHour <= now.Hour() {
		uc.logger.Warn("CreateReservation: slot %d on %s has expired", req.SlotID, dateKey)
		return nil, ErrSlotExpired
	}

	// 8. Квота, пересечение и занятость проверяются в одной сериализуемой
	// транзакции с блокировкой строк пользователя
	var created *domain.Reservation
	txErr := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := uc.reservationRepo.GetByUserAndDate(ctx, req.UserID, dateKey, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to get user reservations: %w", ErrInternal, err)
		}
		if len(existing) >= uc.config.DailyLimitPerUser {
			return ErrDailyLimitReached
		}
		newStart, newEnd := types.NewHourString(startHour), types.NewHourString(endHour)
		for _, r := range existing {
			if domain.HasTimeOverlap(newStart, newEnd, r.Start, r.End) {
				return fmt.Errorf("%w: with reservation id=%d", ErrTimeOverlap, r.ID)
			}
		}

		_, err = uc.reservationRepo.FindByMachineDateStart(ctx, req.MachineID, dateKey, startHour, nil)
		if err == nil {
			return ErrSlotTaken
		}
		if !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return fmt.Errorf("%w: failed to check slot occupancy: %w", ErrInternal, err)
		}

		created, err = uc.reservationRepo.Create(ctx, &domain.Reservation{
			UserID:      req.UserID,
			MachineID:   req.MachineID,
			MachineName: machine.Name,
			Date:        dateKey,
			Start:       types.NewHourString(startHour),
			End:         types.NewHourString(endHour),
			CreatedAt:   now,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Warn("CreateReservation: user=%d, machine=%d, slot=%d: %v",
			req.UserID, req.MachineID, req.SlotID, txErr)
		return nil, txErr
	}

	uc.logger.Info("CreateReservation: created id=%d, user=%d, machine=%d, date=%s, start=%s",
		created.ID, created.UserID, created.MachineID, created.Date, created.Start)

	return &Response{
		ID:          created.ID,
		UserID:      created.UserID,
		MachineID:   created.MachineID,
		MachineName: created.MachineName,
		Date:        created.Date,
		Start:       created.Start,
		End:         created.End,
		Status:      created.Status(now),
		CreatedAt:   created.CreatedAt,
	}, nil
}

// checkCooldown проверяет интервал с момента последней брони пользователя.
// При нулевом CooldownMinutes проверка отключена.
func (uc *UseCase) checkCooldown(ctx context.Context, userID int64, now time.Time) error {
	if uc.config.CooldownMinutes <= 0 {
		return nil
	}

	last, err := uc.reservationRepo.GetLastByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil
		}
		uc.logger.Error("CreateReservation: failed to get last reservation for user=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to check cooldown: %v", ErrInternal, err)
	}

	cooldown := time.Duration(uc.config.CooldownMinutes) * time.Minute
	elapsed := now.Sub(last.CreatedAt)
	if elapsed < cooldown {
		remaining := int(math.Ceil((cooldown - elapsed).Minutes()))
		uc.logger.Warn("CreateReservation: cooldown active for user=%d, %d minutes remaining",
			userID, remaining)
		return &CooldownError{RemainingMinutes: remaining}
	}
	return nil
}
