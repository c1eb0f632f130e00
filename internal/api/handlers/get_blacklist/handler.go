package get_blacklist

import (
	"net/http"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
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

// Handle GET /api/admin/blacklist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blacklist - Failed to list banned users: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
