package auth

import (
	"context"

	"github.com/v0ron/DLS-LaundryService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TokenManager интерфейс провайдера токенов
type TokenManager interface {
	CreateToken(userID int64, name string, role string, building string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
