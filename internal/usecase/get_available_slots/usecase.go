package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	machineRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/machine"
)

// UseCase use case получения слотов машины на день
type UseCase struct {
	reservationRepo ReservationRepository
	machineRepo     MachineRepository
	config          Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	machineRepo MachineRepository,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		machineRepo:     machineRepo,
		config:          config,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: machine=%d, date=%s", req.MachineID, req.DateKey)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время; пустая дата = сегодня
	now := uc.timeProvider.Now()
	dateKey := req.DateKey
	if dateKey == "" {
		dateKey = domain.ToDateKey(now)
	}

	// 3. Проверяем существование машины
	if _, err := uc.machineRepo.GetByID(ctx, req.MachineID); err != nil {
		if errors.Is(err, machineRepo.ErrMachineNotFound) {
			uc.logger.Warn("GetAvailableSlots: machine id=%d not found", req.MachineID)
			return nil, ErrMachineNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get machine id=%d: %v", req.MachineID, err)
		return nil, fmt.Errorf("%w: failed to get machine: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты рабочего окна
	slots := generateDailySlots(req.MachineID, uc.config.DailyStartHour, uc.config.DailyEndHour)

	// 5. Маскируем прошедшие часы (только для сегодняшней даты)
	maskPastSlots(slots, dateKey, now)

	// 6. Маскируем занятые слоты по броням машины на дату
	reservations, err := uc.reservationRepo.GetByMachineAndDate(ctx, req.MachineID, dateKey)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}
	maskReservedSlots(slots, reservations)

	uc.logger.Info("GetAvailableSlots: generated %d slots for machine=%d, date=%s",
		len(slots), req.MachineID, dateKey)

	return &Response{
		MachineID: req.MachineID,
		Date:      dateKey,
		Slots:     slots,
	}, nil
}
