package create_machine

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

type MachineService interface {
	Create(ctx context.Context, req *models.CreateMachineRequest) (*models.MachineResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
