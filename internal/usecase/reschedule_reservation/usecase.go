package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	userRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/user"
	"github.com/v0ron/DLS-LaundryService/pkg/types"
)

// UseCase use case переноса брони на другой слот или дату
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	txManager       TransactionManager
	config          Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		config:          config,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса брони.
// Машина брони не меняется, новый слот должен принадлежать ей.
// Cooldown и дневная квота не перепроверяются: перенос не создает
// новую бронь. CreatedAt сохраняется, часы cooldown не сбрасываются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: id=%d, caller=%d, slot=%d, date=%s",
		req.ReservationID, req.Caller.UserID, req.SlotID, req.DateKey)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время; пустая дата = сегодня
	now := uc.timeProvider.Now()
	dateKey := req.DateKey
	if dateKey == "" {
		dateKey = domain.ToDateKey(now)
	}

	// 3. Загружаем бронь
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 4. Авторизация: владелец или администратор
	if reservation.UserID != req.Caller.UserID && !req.Caller.IsAdmin() {
		uc.logger.Warn("RescheduleReservation: caller=%d is not owner of reservation id=%d",
			req.Caller.UserID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	// 5. Проверяем черный список вызывающего
	caller, err := uc.userRepo.GetByID(ctx, req.Caller.UserID)
	if err != nil {
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Error("RescheduleReservation: failed to get user id=%d: %v", req.Caller.UserID, err)
			return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
	} else if caller.IsBanned(now) {
		uc.logger.Warn("RescheduleReservation: caller=%d is banned until %v", req.Caller.UserID, caller.BannedUntil)
		return nil, ErrUserBanned
	}

	// 6. Восстанавливаем интервал нового слота на машине брони
	startHour, endHour, err := resolveSlotHours(reservation.MachineID, req.SlotID,
		uc.config.DailyStartHour, uc.config.DailyEndHour)
	if err != nil {
		uc.logger.Warn("RescheduleReservation: %v", err)
		return nil, err
	}

	// 7. Отклоняем прошедший слот
	if domain.ToDateKey(now) == dateKey && endHour <= now.Hour() {
		uc.logger.Warn("RescheduleReservation: slot %d on %s has expired", req.SlotID, dateKey)
		return nil, ErrSlotExpired
	}

	// 8. Пересечение и занятость проверяются в сериализуемой транзакции,
	// сама бронь исключается из обеих проверок
	excludeID := reservation.ID
	txErr := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		others, err := uc.reservationRepo.GetByUserAndDate(ctx, reservation.UserID, dateKey, &excludeID)
		if err != nil {
			return fmt.Errorf("%w: failed to get user reservations: %w", ErrInternal, err)
		}
		newStart, newEnd := types.NewHourString(startHour), types.NewHourString(endHour)
		for _, r := range others {
			if domain.HasTimeOverlap(newStart, newEnd, r.Start, r.End) {
				return fmt.Errorf("%w: with reservation id=%d", ErrTimeOverlap, r.ID)
			}
		}

		_, err = uc.reservationRepo.FindByMachineDateStart(ctx, reservation.MachineID, dateKey, startHour, &excludeID)
		if err == nil {
			return ErrSlotTaken
		}
		if !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return fmt.Errorf("%w: failed to check slot occupancy: %w", ErrInternal, err)
		}

		err = uc.reservationRepo.UpdateSchedule(ctx, reservation.ID, dateKey,
			types.NewHourString(startHour), types.NewHourString(endHour))
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Warn("RescheduleReservation: id=%d: %v", req.ReservationID, txErr)
		return nil, txErr
	}

	uc.logger.Info("RescheduleReservation: moved id=%d to date=%s, start=%d:00",
		reservation.ID, dateKey, startHour)

	return &Response{
		ID:          reservation.ID,
		UserID:      reservation.UserID,
		MachineID:   reservation.MachineID,
		MachineName: reservation.MachineName,
		Date:        dateKey,
		Start:       types.NewHourString(startHour),
		End:         types.NewHourString(endHour),
		Status:      domain.ComputeStatus(dateKey, types.NewHourString(startHour), types.NewHourString(endHour), now),
		CreatedAt:   reservation.CreatedAt,
	}, nil
}
