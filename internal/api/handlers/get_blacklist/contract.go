package get_blacklist

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/service/blacklist/models"
)

type BlacklistService interface {
	List(ctx context.Context) (*models.BannedListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
