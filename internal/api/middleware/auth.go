package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
	"github.com/v0ron/DLS-LaundryService/internal/domain"
	"github.com/v0ron/DLS-LaundryService/pkg/auth"
)

const (
	msgNotAuthenticated = "не авторизован"
	msgTokenExpired     = "сессия истекла, войдите снова"
)

type identityContextKey struct{}

// TokenParser интерфейс провайдера токенов
type TokenParser interface {
	ParseToken(tokenStr string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer токен и кладет идентичность вызывающего в контекст
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgNotAuthenticated)
				return
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Warn("Auth: invalid token: %v", err)
				handlers.RespondUnauthorized(w, msgTokenExpired)
				return
			}

			identity := domain.Identity{
				UserID:   claims.UserID,
				Name:     claims.Name,
				Role:     domain.Role(claims.Role),
				Building: claims.Building,
			}
			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity извлекает идентичность вызывающего из контекста
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(domain.Identity)
	return identity, ok
}
