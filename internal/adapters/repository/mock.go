package repository

import (
	"context"
	"doc-intake/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{}
}

func (m *MockDocumentRepository) Upsert(ctx context.Context, document domain.Document) (*domain.Document, error) {
	args := m.Called(ctx, document)
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByName(ctx context.Context, name string) (*domain.Document, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Stats(ctx context.Context, since time.Time) (*domain.DocumentStats, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(*domain.DocumentStats), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

func (m *MockActivityRepository) Create(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountByStatusSince(ctx context.Context, status domain.ActivityStatus, since time.Time) (int64, error) {
	args := m.Called(ctx, status, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
