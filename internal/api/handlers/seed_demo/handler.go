package seed_demo

import (
	"net/http"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service MachineService
	logger  Logger
}

func NewHandler(service MachineService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/seed-demo
// Тело опционально: без него применяются параметры по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SeedDemoRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /admin/seed-demo - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.SeedDemo(r.Context(), &req)
	if err != nil {
		h.logger.Error("POST /admin/seed-demo - Failed to seed machines: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/seed-demo - Created %d machines", result.Created)
	handlers.RespondJSON(w, http.StatusOK, result)
}
