package reservations

import (
	"context"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
	reservationRepo "github.com/v0ron/DLS-LaundryService/internal/infra/storage/reservation"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	FindWithFilter(ctx context.Context, filter reservationRepo.Filter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
