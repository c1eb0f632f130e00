package set_blacklist

import (
	"errors"
	"net/http"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	blacklistService "github.com/v0ron/DLS-LaundryService/internal/service/blacklist"
	"github.com/v0ron/DLS-LaundryService/internal/service/blacklist/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service BlacklistService
	logger  Logger
}

func NewHandler(service BlacklistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/blacklist
// Нулевой bannedUntil снимает блокировку.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SetBanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blacklist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Set(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, blacklistService.ErrInvalidInput):
			h.logger.Warn("POST /admin/blacklist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingUserID)

		case errors.Is(err, blacklistService.ErrUserNotFound):
			h.logger.Warn("POST /admin/blacklist - User not found: user_id=%d", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("POST /admin/blacklist - Failed to update blacklist: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blacklist - Blacklist updated: user_id=%d", req.UserID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
