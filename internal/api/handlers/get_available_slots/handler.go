package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	getSlots "github.com/v0ron/DLS-LaundryService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMachineID = "некорректный ID машины"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMachineNotFound  = "машина не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/machines/{machineId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	machineID, err := strconv.ParseInt(vars["machineId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /machines/{id}/slots - Invalid machine ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMachineID)
		return
	}

	req := &getSlots.Request{
		MachineID: machineID,
		DateKey:   r.URL.Query().Get("date"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /machines/{id}/slots - Invalid input: machine_id=%d, error=%v", machineID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getSlots.ErrMachineNotFound):
			h.logger.Warn("GET /machines/{id}/slots - Machine not found: machine_id=%d", machineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		default:
			h.logger.Error("GET /machines/{id}/slots - Failed to get slots: machine_id=%d, error=%v", machineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
