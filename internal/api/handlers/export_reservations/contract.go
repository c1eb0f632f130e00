package export_reservations

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/service/reports/models"
)

type ReportService interface {
	Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
