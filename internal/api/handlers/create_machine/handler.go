package create_machine

import (
	"errors"
	"net/http"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	machineService "github.com/v0ron/DLS-LaundryService/internal/service/machines"
	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "отсутствует название или расположение"
)

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

// Handle POST /api/machines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMachineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /machines - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, machineService.ErrInvalidInput):
			h.logger.Warn("POST /machines - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)

		default:
			h.logger.Error("POST /machines - Failed to create machine: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /machines - Machine created: machine_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
