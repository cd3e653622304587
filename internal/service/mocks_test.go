package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/security"
)

// MockRecruitmentRepo
type MockRecruitmentRepo struct {
	mock.Mock
}

func (m *MockRecruitmentRepo) List(ctx context.Context) ([]domain.Recruitment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recruitment), args.Error(1)
}
func (m *MockRecruitmentRepo) Create(ctx context.Context, rec *domain.Recruitment) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockRecruitmentRepo) UpdatePayout(ctx context.Context, id string, status domain.PayoutStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockRecruitmentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAdminToken() (string, time.Time, error) {
	args := m.Called()
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenManager) ValidateToken(token string) (*security.AdminClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.AdminClaims), args.Error(1)
}
func (m *MockTokenManager) TTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
