package security

import (
	"errors"
	"strings"
)

var ErrMissingToken = errors.New("authorization token is not provided")

const bearerPrefix = "BEARER "

// AccessGuard turns an Authorization header into an authorization decision.
// It holds no state beyond the token manager, so the same header always
// yields the same verdict until the token expires.
type AccessGuard struct {
	tokenManager TokenManager
}

func NewAccessGuard(tm TokenManager) *AccessGuard {
	return &AccessGuard{tokenManager: tm}
}

// Authorize expects "Bearer <token>". A missing or malformed header is treated
// the same as no token at all.
func (g *AccessGuard) Authorize(authHeader string) (*AdminClaims, error) {
	token, ok := ExtractBearerToken(authHeader)
	if !ok {
		return nil, ErrMissingToken
	}
	return g.tokenManager.ValidateToken(token)
}

func ExtractBearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if len(authHeader) <= len(bearerPrefix) || strings.ToUpper(authHeader[:len(bearerPrefix)]) != bearerPrefix {
		return "", false
	}
	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
