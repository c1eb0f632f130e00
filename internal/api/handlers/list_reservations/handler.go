package list_reservations

import (
	"net/http"
	"strconv"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	"github.com/v0ron/DLS-LaundryService/internal/api/middleware"
	"github.com/v0ron/DLS-LaundryService/internal/service/reservations/models"
	"github.com/v0ron/DLS-LaundryService/pkg/ptr"
)

const (
	msgNotAuthenticated = "не авторизован"
	msgInvalidUserID    = "некорректный ID пользователя"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/reservations?userId=
// Фильтр userId учитывается только для администратора.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	req := &models.ListReservationsRequest{Caller: identity}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid user ID filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		req.UserID = ptr.Ptr(userID)
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: user_id=%d, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
