package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	"github.com/v0ron/DLS-LaundryService/internal/api/middleware"
	rescheduleReservation "github.com/v0ron/DLS-LaundryService/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID брони"
	msgNotAuthenticated     = "не авторизован"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "доступ запрещен"
	msgUserBanned           = "аккаунт ограничен в бронировании"
	msgTimeOverlap          = "время пересекается с другой вашей бронью"
	msgSlotNotFound         = "слот не найден"
	msgSlotExpired          = "время слота уже прошло"
	msgSlotTaken            = "слот уже занят"
	msgInvalidInput         = "некорректные параметры переноса"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleReservation.Request{
		ReservationID: reservationID,
		Caller:        identity,
		SlotID:        req.SlotID,
		DateKey:       req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/reschedule - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/reschedule - Access denied: reservation_id=%d, user_id=%d",
				reservationID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleReservation.ErrUserBanned):
			h.logger.Warn("POST /reservations/{id}/reschedule - User banned: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgUserBanned)

		case errors.Is(err, rescheduleReservation.ErrTimeOverlap):
			h.logger.Warn("POST /reservations/{id}/reschedule - Time overlap: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgTimeOverlap)

		case errors.Is(err, rescheduleReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations/{id}/reschedule - Slot taken: reservation_id=%d, slot_id=%d",
				reservationID, req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, rescheduleReservation.ErrSlotNotFound):
			h.logger.Warn("POST /reservations/{id}/reschedule - Slot not found: reservation_id=%d, slot_id=%d",
				reservationID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, rescheduleReservation.ErrSlotExpired):
			h.logger.Warn("POST /reservations/{id}/reschedule - Slot expired: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgSlotExpired)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/reschedule - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/reschedule - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/reschedule - Rescheduled: reservation_id=%d, user_id=%d",
		reservationID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
