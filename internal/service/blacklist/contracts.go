package blacklist

import (
	"context"
	"time"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	SetBannedUntil(ctx context.Context, userID int64, until *time.Time) error
	ListBanned(ctx context.Context) ([]*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
