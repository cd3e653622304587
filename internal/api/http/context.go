package http

import (
	"context"

	"recruitment-tracker/internal/security"
)

type contextKey int

const (
	claimsKey contextKey = iota
	requestIDKey
)

func withClaims(ctx context.Context, claims *security.AdminClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims the auth middleware verified for this
// request, or nil on public routes.
func ClaimsFromContext(ctx context.Context) *security.AdminClaims {
	claims, _ := ctx.Value(claimsKey).(*security.AdminClaims)
	return claims
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
