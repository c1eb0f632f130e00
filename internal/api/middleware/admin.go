package middleware

import (
	"net/http"

	"github.com/v0ron/DLS-LaundryService/internal/api/handlers"
)

const msgAdminRequired = "требуются права администратора"

// RequireAdmin пропускает только администраторов.
// Ставится после Auth.
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgNotAuthenticated)
				return
			}
			if !identity.IsAdmin() {
				logger.Warn("RequireAdmin: user=%d is not an admin", identity.UserID)
				handlers.RespondForbidden(w, msgAdminRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
