package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid password")

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type authService struct {
	passwordHash string
	tokenManager security.TokenManager
}

func NewAuthService(passwordHash string, tm security.TokenManager) AuthService {
	return &authService{
		passwordHash: passwordHash,
		tokenManager: tm,
	}
}

func (s *authService) Login(ctx context.Context, password string) (*Session, error) {
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	if err := security.ComparePassword(s.passwordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			logger.WarnContext(ctx, "Admin login rejected")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify admin password: %w", err)
	}

	token, expiresAt, err := s.tokenManager.GenerateAdminToken()
	if err != nil {
		return nil, fmt.Errorf("issue admin token: %w", err)
	}

	logger.InfoContext(ctx, "Admin session issued", "expires_at", expiresAt)
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}
