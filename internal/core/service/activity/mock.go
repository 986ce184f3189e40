package activity

import (
	"context"
	"doc-intake/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockActivityService is a mock implementation of ActivityService
type MockActivityService struct {
	mock.Mock
}

// NewMockActivityService creates a new MockActivityService
func NewMockActivityService() *MockActivityService {
	return &MockActivityService{}
}

func (m *MockActivityService) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityService) Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockActivityService) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
