package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
	"github.com/v0ron/DLS-LaundryService/internal/service/reservations/models"
)

// Service сервис чтения и отмены броней
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List получает список броней с вычисленным статусом.
// Обычный пользователь видит только свои брони. Администратор видит все,
// опционально фильтруя по пользователю.
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for caller=%d", req.Caller.UserID)

	now := s.timeProvider.Now()

	if !req.Caller.IsAdmin() {
		list, err := s.reservationRepo.GetByUser(ctx, req.Caller.UserID)
		if err != nil {
			s.logger.Error("List: repository error for user=%d: %v", req.Caller.UserID, err)
			return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}
		return models.FromDomainReservations(list, now), nil
	}

	list, err := s.reservationRepo.FindWithFilter(ctx, reservationRepo.Filter{UserID: req.UserID})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReservations(list, now), nil
}

// Cancel отменяет бронь. Идемпотентна: отмена несуществующей
// (уже отмененной) брони считается успехом.
// Отменить бронь может владелец или администратор.
func (s *Service) Cancel(ctx context.Context, id int64, caller domain.Identity) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by caller=%d", id, caller.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Info("Cancel: reservation id=%d already cancelled", id)
			return nil
		}
		s.logger.Error("Cancel: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reservation.UserID != caller.UserID && !caller.IsAdmin() {
		s.logger.Warn("Cancel: caller=%d is not owner of reservation id=%d", caller.UserID, id)
		return ErrAccessDenied
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil
		}
		s.logger.Error("Cancel: failed to delete reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - failed to delete: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return nil
}
