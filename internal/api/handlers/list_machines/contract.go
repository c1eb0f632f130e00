package list_machines

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

type MachineService interface {
	List(ctx context.Context) (*models.MachineListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
