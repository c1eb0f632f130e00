package machines

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	machineRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/machine"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

// Значения по умолчанию для генерации демо-машин
var defaultSeedBuildings = []string{"A区", "B区", "C区"}

const (
	defaultFloorsPerBuilding = 5
	defaultMachinesPerFloor  = 3
	unknownBuilding          = "未知"
)

var buildingPattern = regexp.MustCompile(`([A-Z]区)`)

// Config параметры рабочего окна бронирования
type Config struct {
	DailyStartHour int
	DailyEndHour   int
}

// Service сервис управления машинами
type Service struct {
	machineRepo     MachineRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	config          Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса машин
func NewService(
	machineRepo MachineRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	config Config,
	logger Logger,
) *Service {
	return &Service{
		machineRepo:     machineRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		config:          config,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List возвращает список всех машин
func (s *Service) List(ctx context.Context) (*models.MachineListResponse, error) {
	list, err := s.machineRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainMachines(list), nil
}

// Create создает новую машину.
// Пустое здание выводится из location, пустой статус означает idle.
func (s *Service) Create(ctx context.Context, req *models.CreateMachineRequest) (*models.MachineResponse, error) {
	s.logger.Info("Create: creating machine name=%s", req.Name)

	if req.Name == "" || req.Location == "" {
		return nil, fmt.Errorf("%w: name and location are required", ErrInvalidInput)
	}

	status := domain.MachineStatus(req.Status)
	if req.Status == "" {
		status = domain.MachineIdle
	}
	if !domain.IsValidMachineStatus(status) {
		return nil, fmt.Errorf("%w: invalid machine status %q", ErrInvalidInput, req.Status)
	}

	building := req.Building
	if building == "" {
		building = guessBuilding(req.Location)
	}

	created, err := s.machineRepo.Create(ctx, &domain.Machine{
		Name:     req.Name,
		Location: req.Location,
		Building: building,
		Floor:    req.Floor,
		Status:   status,
		Guide:    req.Guide,
	})
	if err != nil {
		s.logger.Error("Create: failed to create machine: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created machine id=%d", created.ID)
	resp := models.FromDomainMachine(created)
	return &resp, nil
}

// Delete удаляет машину вместе со всеми ее бронями.
// Каскад выполняется в одной транзакции: сначала брони, затем машина.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting machine id=%d", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		removed, err := s.reservationRepo.DeleteByMachine(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - failed to delete reservations: %v", ErrInternal, err)
		}
		if removed > 0 {
			s.logger.Info("Delete: removed %d reservations of machine id=%d", removed, id)
		}

		if err := s.machineRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, machineRepo.ErrMachineNotFound) {
				return ErrMachineNotFound
			}
			return fmt.Errorf("%w: Delete - failed to delete machine: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Delete: machine id=%d: %v", id, err)
		return err
	}

	s.logger.Info("Delete: machine id=%d deleted", id)
	return nil
}

// Release принудительно освобождает слоты машины на дату.
// С указанным слотом снимает только его бронь, без слота - все брони
// машины на дату. Идемпотентна: отсутствие броней считается успехом.
func (s *Service) Release(ctx context.Context, req *models.ReleaseSlotsRequest) (*models.ReleaseSlotsResponse, error) {
	s.logger.Info("Release: machine=%d, date=%s", req.MachineID, req.DateKey)

	dateKey := req.DateKey
	if dateKey == "" {
		dateKey = domain.ToDateKey(s.timeProvider.Now())
	}

	if req.SlotID == nil {
		removed, err := s.reservationRepo.DeleteByMachineAndDate(ctx, req.MachineID, dateKey)
		if err != nil {
			s.logger.Error("Release: failed to delete reservations: %v", err)
			return nil, fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Release: released %d slots of machine=%d on %s", removed, req.MachineID, dateKey)
		return &models.ReleaseSlotsResponse{Released: removed}, nil
	}

	idx := *req.SlotID - domain.SlotID(req.MachineID, 0)
	if idx < 0 || idx >= int64(s.config.DailyEndHour-s.config.DailyStartHour) {
		return nil, fmt.Errorf("%w: slot %d does not exist on machine %d", ErrSlotNotFound, *req.SlotID, req.MachineID)
	}
	startHour := s.config.DailyStartHour + int(idx)

	reservation, err := s.reservationRepo.FindByMachineDateStart(ctx, req.MachineID, dateKey, startHour, nil)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return &models.ReleaseSlotsResponse{Released: 0}, nil
		}
		s.logger.Error("Release: failed to find reservation: %v", err)
		return nil, fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	if err := s.reservationRepo.Delete(ctx, reservation.ID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return &models.ReleaseSlotsResponse{Released: 0}, nil
		}
		s.logger.Error("Release: failed to delete reservation id=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: released slot %d of machine=%d on %s", *req.SlotID, req.MachineID, dateKey)
	return &models.ReleaseSlotsResponse{Released: 1}, nil
}

// SeedDemo генерирует демо-парк машин по корпусам и этажам.
// Параметры с нулевыми значениями заменяются значениями по умолчанию.
func (s *Service) SeedDemo(ctx context.Context, req *models.SeedDemoRequest) (*models.SeedDemoResponse, error) {
	buildings := req.Buildings
	if len(buildings) == 0 {
		buildings = defaultSeedBuildings
	}
	floors := req.FloorsPerBuilding
	if floors <= 0 {
		floors = defaultFloorsPerBuilding
	}
	perFloor := req.MachinesPerFloor
	if perFloor <= 0 {
		perFloor = defaultMachinesPerFloor
	}

	machines := GenerateDemoMachines(buildings, floors, perFloor)
	created, err := s.machineRepo.CreateBatch(ctx, machines)
	if err != nil {
		s.logger.Error("SeedDemo: failed to create machines: %v", err)
		return nil, fmt.Errorf("%w: SeedDemo - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SeedDemo: created %d machines", created)
	return &models.SeedDemoResponse{Created: created}, nil
}

// GenerateDemoMachines строит парк демо-машин: по perFloor машин
// на каждом из floors этажей каждого корпуса
func GenerateDemoMachines(buildings []string, floors, perFloor int) []*domain.Machine {
	machines := make([]*domain.Machine, 0, len(buildings)*floors*perFloor)
	for _, b := range buildings {
		prefix := firstRune(b)
		for f := 1; f <= floors; f++ {
			for i := 1; i <= perFloor; i++ {
				machines = append(machines, &domain.Machine{
					Name:     fmt.Sprintf("%s-%02d号", b, i),
					Building: b,
					Floor:    fmt.Sprintf("%d层", f),
					Location: fmt.Sprintf("宿舍%s楼%d层", prefix, f),
					Status:   domain.MachineIdle,
					Guide:    "请按步骤操作，注意安全。",
				})
			}
		}
	}
	return machines
}

// guessBuilding выводит корпус из описания расположения машины
func guessBuilding(location string) string {
	if m := buildingPattern.FindString(location); m != "" {
		return m
	}
	return unknownBuilding
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return s
}
