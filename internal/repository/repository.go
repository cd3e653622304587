package repository

import (
	"context"

	"recruitment-tracker/internal/domain"
)

// RecruitmentRepository is the persistence contract for recruitment records.
// Update and delete against an id that matches nothing are not errors.
// Implementations return domain.ErrInvalidID for ids they cannot parse.
type RecruitmentRepository interface {
	List(ctx context.Context) ([]domain.Recruitment, error)
	Create(ctx context.Context, rec *domain.Recruitment) error
	UpdatePayout(ctx context.Context, id string, status domain.PayoutStatus) error
	Delete(ctx context.Context, id string) error
}

// Store is a RecruitmentRepository plus the lifecycle of the handle behind it.
// One Store is opened at startup and shared by every request.
type Store interface {
	RecruitmentRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
