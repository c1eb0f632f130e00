package seed_demo

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

type MachineService interface {
	SeedDemo(ctx context.Context, req *models.SeedDemoRequest) (*models.SeedDemoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
