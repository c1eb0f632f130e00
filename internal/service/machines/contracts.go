package machines

import (
	"context"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// MachineRepository интерфейс репозитория машин
type MachineRepository interface {
	Create(ctx context.Context, m *domain.Machine) (*domain.Machine, error)
	CreateBatch(ctx context.Context, machines []*domain.Machine) (int, error)
	GetByID(ctx context.Context, id int64) (*domain.Machine, error)
	List(ctx context.Context) ([]*domain.Machine, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	FindByMachineDateStart(ctx context.Context, machineID int64, date string, startHour int, excludeID *int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	DeleteByMachine(ctx context.Context, machineID int64) (int64, error)
	DeleteByMachineAndDate(ctx context.Context, machineID int64, date string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
