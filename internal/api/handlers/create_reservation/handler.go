package create_reservation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	"github.com/v0ron/DLS-LaundryService/internal/api/middleware"
	createReservation "github.com/v0ron/DLS-LaundryService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotAuthenticated   = "не авторизован"
	msgUserBanned         = "аккаунт ограничен в бронировании"
	msgDailyLimitReached  = "достигнут дневной лимит бронирований"
	msgTimeOverlap        = "время пересекается с другой вашей бронью"
	msgSlotNotFound       = "слот не найден"
	msgSlotExpired        = "время слота уже прошло"
	msgSlotTaken          = "слот уже занят"
	msgMachineNotFound    = "машина не найдена"
	msgInvalidInput       = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createReservation.Request{
		UserID:    identity.UserID,
		MachineID: req.MachineID,
		SlotID:    req.SlotID,
		DateKey:   req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrUserBanned):
			h.logger.Warn("POST /reservations - User banned: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgUserBanned)

		case errors.Is(err, createReservation.ErrCooldownActive):
			var cooldownErr *createReservation.CooldownError
			message := msgCooldown(0)
			if errors.As(err, &cooldownErr) {
				message = msgCooldown(cooldownErr.RemainingMinutes)
			}
			h.logger.Warn("POST /reservations - Cooldown active: user_id=%d", identity.UserID)
			handlers.RespondError(w, http.StatusTooManyRequests, message)

		case errors.Is(err, createReservation.ErrDailyLimitReached):
			h.logger.Warn("POST /reservations - Daily limit reached: user_id=%d", identity.UserID)
			handlers.RespondError(w, http.StatusTooManyRequests, msgDailyLimitReached)

		case errors.Is(err, createReservation.ErrTimeOverlap):
			h.logger.Warn("POST /reservations - Time overlap: user_id=%d, machine_id=%d", identity.UserID, req.MachineID)
			handlers.RespondError(w, http.StatusConflict, msgTimeOverlap)

		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: machine_id=%d, slot_id=%d", req.MachineID, req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: machine_id=%d, slot_id=%d", req.MachineID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrSlotExpired):
			h.logger.Warn("POST /reservations - Slot expired: machine_id=%d, slot_id=%d", req.MachineID, req.SlotID)
			handlers.RespondBadRequest(w, msgSlotExpired)

		case errors.Is(err, createReservation.ErrMachineNotFound):
			h.logger.Warn("POST /reservations - Machine not found: machine_id=%d", req.MachineID)
			handlers.RespondNotFound(w, msgMachineNotFound)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", identity.UserID)
			handlers.RespondUnauthorized(w, msgNotAuthenticated)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, machine_id=%d, error=%v",
				identity.UserID, req.MachineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, machine_id=%d",
		result.ID, identity.UserID, req.MachineID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// msgCooldown строит сообщение об активном cooldown с оставшимися минутами
func msgCooldown(minutes int) string {
	if minutes <= 0 {
		return "слишком частые бронирования, попробуйте позже"
	}
	return fmt.Sprintf("слишком частые бронирования, повторите через %d мин", minutes)
}
