package service

import (
	"context"

	"recruitment-tracker/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, password string) (*Session, error)
}

type RecruitmentService interface {
	List(ctx context.Context, query string) ([]domain.Recruitment, error)
	Create(ctx context.Context, in domain.NewRecruitment) (*domain.Recruitment, error)
	UpdatePayout(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*domain.PayoutSummary, error)
}
