package create_reservation

import (
	"context"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByUserAndDate(ctx context.Context, userID int64, date string, excludeID *int64) ([]*domain.Reservation, error)
	FindByMachineDateStart(ctx context.Context, machineID int64, date string, startHour int, excludeID *int64) (*domain.Reservation, error)
	GetLastByUser(ctx context.Context, userID int64) (*domain.Reservation, error)
}

// MachineRepository интерфейс репозитория машин
type MachineRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Machine, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
