package get_available_slots

import (
	"context"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByMachineAndDate(ctx context.Context, machineID int64, date string) ([]*domain.Reservation, error)
}

// MachineRepository интерфейс репозитория машин
type MachineRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Machine, error)
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
