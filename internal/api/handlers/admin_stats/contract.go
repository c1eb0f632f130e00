package admin_stats

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/service/reports/models"
)

type ReportService interface {
	Stats(ctx context.Context, dateKey string) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
