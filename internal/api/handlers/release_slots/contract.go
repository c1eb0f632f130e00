package release_slots

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

type MachineService interface {
	Release(ctx context.Context, req *models.ReleaseSlotsRequest) (*models.ReleaseSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
