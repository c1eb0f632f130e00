package export_reservations

import (
	"fmt"
	"net/http"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	"github.com/v0ron/DLS-LaundryService/internal/service/reports/models"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/export/reservations.csv?date=&start=&end=&building=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ExportRequest{
		Date:     query.Get("date"),
		DateFrom: query.Get("start"),
		DateTo:   query.Get("end"),
		Building: query.Get("building"),
	}

	result, err := h.service.Export(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /export/reservations.csv - Failed to export: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)
}
