package cancel_reservation

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

type ReservationService interface {
	Cancel(ctx context.Context, id int64, caller domain.Identity) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
