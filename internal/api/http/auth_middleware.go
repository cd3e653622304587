package http

import (
	"errors"
	"net/http"

	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/security"
)

type AuthMiddleware struct {
	guard *security.AccessGuard
}

func NewAuthMiddleware(guard *security.AccessGuard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// RequireAdmin rejects the request with 401 unless the Authorization header
// carries a valid admin token. next never runs on rejection.
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.guard.Authorize(r.Header.Get("Authorization"))
		if err != nil {
			logger.WarnContext(r.Context(), "Unauthorized request",
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"reason", err,
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="recruitment-tracker"`)
			ErrorResponse(w, http.StatusUnauthorized, unauthorizedMessage(err))
			return
		}
		next(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, security.ErrMissingToken):
		return "No token provided"
	case errors.Is(err, security.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, security.ErrNotAdmin):
		return "Admin access required"
	default:
		return "Invalid token"
	}
}
