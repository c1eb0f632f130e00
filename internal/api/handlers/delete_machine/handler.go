package delete_machine

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	machineService "github.com/v0ron/DLS-LaundryService/internal/service/machines"
)

const (
	msgInvalidMachineID = "некорректный ID машины"
	msgMachineNotFound  = "машина не найдена"
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

// Handle DELETE /api/machines/{machineId}
// Удаляет машину вместе со всеми ее бронями.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	machineID, err := strconv.ParseInt(vars["machineId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /machines/{id} - Invalid machine ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMachineID)
		return
	}

	if err := h.service.Delete(r.Context(), machineID); err != nil {
		switch {
		case errors.Is(err, machineService.ErrMachineNotFound):
			h.logger.Warn("DELETE /machines/{id} - Machine not found: machine_id=%d", machineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		default:
			h.logger.Error("DELETE /machines/{id} - Failed to delete machine: machine_id=%d, error=%v", machineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /machines/{id} - Machine deleted: machine_id=%d", machineID)
	w.WriteHeader(http.StatusNoContent)
}
