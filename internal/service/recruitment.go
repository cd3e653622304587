package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/repository"
)

var errMissingID = fmt.Errorf("%w: missing required fields: id", domain.ErrValidation)

type recruitmentService struct {
	repo repository.RecruitmentRepository
	now  func() time.Time
}

func NewRecruitmentService(repo repository.RecruitmentRepository) RecruitmentService {
	return newRecruitmentService(repo, time.Now)
}

func newRecruitmentService(repo repository.RecruitmentRepository, now func() time.Time) *recruitmentService {
	return &recruitmentService{repo: repo, now: now}
}

func (s *recruitmentService) List(ctx context.Context, query string) ([]domain.Recruitment, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return all, nil
	}

	filtered := make([]domain.Recruitment, 0, len(all))
	for _, r := range all {
		if r.Matches(query) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *recruitmentService) Create(ctx context.Context, in domain.NewRecruitment) (*domain.Recruitment, error) {
	rec, err := in.Validate()
	if err != nil {
		return nil, err
	}
	// Millisecond precision is what every backend can store.
	rec.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recruitmentService) UpdatePayout(ctx context.Context, id, status string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errMissingID
	}
	parsed, err := domain.ParsePayoutStatus(status)
	if err != nil {
		return err
	}
	return s.repo.UpdatePayout(ctx, id, parsed)
}

func (s *recruitmentService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errMissingID
	}
	return s.repo.Delete(ctx, id)
}

func (s *recruitmentService) Summary(ctx context.Context) (*domain.PayoutSummary, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(all)
	return &summary, nil
}
