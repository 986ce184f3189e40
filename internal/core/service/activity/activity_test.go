package activity_test

import (
	"context"
	"doc-intake/internal/adapters/repository"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/service/activity"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_ListRecent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "default when zero", limit: 0, expected: activity.DefaultRecentLimit},
		{name: "default when negative", limit: -3, expected: activity.DefaultRecentLimit},
		{name: "as asked", limit: 5, expected: 5},
		{name: "capped", limit: 1000, expected: activity.MaxRecentLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockActivities := repository.NewMockActivityRepository()
			service := activity.NewActivityService(mockActivities, repository.NewMockDocumentRepository(), discardLogger)
			mockActivities.On("ListRecent", ctx, tt.expected).Return([]domain.Activity{}, nil)

			// Act
			_, err := service.ListRecent(ctx, tt.limit)

			// Assert
			require.NoError(t, err)
			mockActivities.AssertExpectations(t)
		})
	}
}

func TestActivityService_Stats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	midnight := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		// Arrange
		mockActivities := repository.NewMockActivityRepository()
		mockDocuments := repository.NewMockDocumentRepository()
		service := activity.NewActivityService(mockActivities, mockDocuments, discardLogger)

		mockDocuments.On("Stats", ctx, midnight).Return(&domain.DocumentStats{Total: 10, StoredSince: 2, StorageBytes: 4096}, nil)
		mockActivities.On("CountByStatusSince", ctx, domain.ActivityStatusFailed, midnight).Return(int64(1), nil)

		// Act
		stats, err := service.Stats(ctx, now)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &domain.DashboardStats{
			TotalDocuments:    10,
			StoredToday:       2,
			StorageBytes:      4096,
			FailedUploadToday: 1,
		}, stats)
	})

	t.Run("document repository failure", func(t *testing.T) {
		// Arrange
		mockActivities := repository.NewMockActivityRepository()
		mockDocuments := repository.NewMockDocumentRepository()
		service := activity.NewActivityService(mockActivities, mockDocuments, discardLogger)
		repoErr := errors.New("db down")
		mockDocuments.On("Stats", ctx, midnight).Return((*domain.DocumentStats)(nil), repoErr)

		// Act
		_, err := service.Stats(ctx, now)

		// Assert
		assert.ErrorIs(t, err, repoErr)
		mockActivities.AssertNotCalled(t, "CountByStatusSince", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestActivityService_PruneBefore(t *testing.T) {
	ctx := context.Background()
	cutoff := time.Now().Add(-720 * time.Hour)

	t.Run("success", func(t *testing.T) {
		// Arrange
		mockActivities := repository.NewMockActivityRepository()
		service := activity.NewActivityService(mockActivities, repository.NewMockDocumentRepository(), discardLogger)
		mockActivities.On("DeleteBefore", ctx, cutoff).Return(int64(3), nil)

		// Act
		deleted, err := service.PruneBefore(ctx, cutoff)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})

	t.Run("failure", func(t *testing.T) {
		// Arrange
		mockActivities := repository.NewMockActivityRepository()
		service := activity.NewActivityService(mockActivities, repository.NewMockDocumentRepository(), discardLogger)
		mockActivities.On("DeleteBefore", ctx, cutoff).Return(int64(0), errors.New("db down"))

		// Act
		_, err := service.PruneBefore(ctx, cutoff)

		// Assert
		assert.Error(t, err)
	})
}
