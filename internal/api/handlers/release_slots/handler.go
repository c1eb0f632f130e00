package release_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	machineService "github.com/v0ron/DLS-LaundryService/internal/service/machines"
	"github.com/v0ron/DLS-LaundryService/internal/service/machines/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMachineID   = "некорректный ID машины"
	msgSlotNotFound       = "слот не найден"
)

// releaseRequest тело запроса на освобождение слотов
type releaseRequest struct {
	Date   string `json:"date,omitempty"`
	SlotID *int64 `json:"slotId,omitempty"`
}

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

// Handle POST /api/machines/{machineId}/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	machineID, err := strconv.ParseInt(vars["machineId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /machines/{id}/release - Invalid machine ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMachineID)
		return
	}

	// Тело опционально: без него освобождаются все слоты на сегодня
	var req releaseRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /machines/{id}/release - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Release(r.Context(), &models.ReleaseSlotsRequest{
		MachineID: machineID,
		DateKey:   req.Date,
		SlotID:    req.SlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, machineService.ErrSlotNotFound):
			h.logger.Warn("POST /machines/{id}/release - Slot not found: machine_id=%d", machineID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("POST /machines/{id}/release - Failed to release: machine_id=%d, error=%v", machineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /machines/{id}/release - Released %d slots: machine_id=%d", result.Released, machineID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
