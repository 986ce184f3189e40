package postgres_test

import (
	"context"
	"doc-intake/internal/adapters/repository/postgres"
	"doc-intake/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivity(document string, status domain.ActivityStatus, occurredAt time.Time) domain.Activity {
	action := domain.ActivityActionUploaded
	if status == domain.ActivityStatusFailed {
		action = domain.ActivityActionUploadFailed
	}
	return domain.Activity{
		ID:         uuid.New(),
		Action:     action,
		Document:   document,
		Status:     status,
		OccurredAt: occurredAt,
	}
}

func TestSqlActivityRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := postgres.NewSqlActivityRepository(dbConnection)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Create - Duplicate id is ignored", func(t *testing.T) {
		// Arrange
		truncate()
		activity := newActivity("a.pdf", domain.ActivityStatusCompleted, now)

		// Act
		err := repo.Create(ctx, activity)
		dupErr := repo.Create(ctx, activity)

		// Assert
		require.NoError(t, err)
		require.NoError(t, dupErr)
		activities, err := repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, activities, 1)
	})

	t.Run("ListRecent - Newest first and limited", func(t *testing.T) {
		// Arrange
		truncate()
		require.NoError(t, repo.Create(ctx, newActivity("old.pdf", domain.ActivityStatusCompleted, now.Add(-2*time.Hour))))
		require.NoError(t, repo.Create(ctx, newActivity("mid.pdf", domain.ActivityStatusFailed, now.Add(-time.Hour))))
		require.NoError(t, repo.Create(ctx, newActivity("new.pdf", domain.ActivityStatusCompleted, now)))

		// Act
		activities, err := repo.ListRecent(ctx, 2)

		// Assert
		require.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, "new.pdf", activities[0].Document)
		assert.Equal(t, "mid.pdf", activities[1].Document)
		assert.Equal(t, domain.ActivityActionUploadFailed, activities[1].Action)
	})

	t.Run("CountByStatusSince", func(t *testing.T) {
		// Arrange
		truncate()
		require.NoError(t, repo.Create(ctx, newActivity("a.pdf", domain.ActivityStatusFailed, now.Add(-48*time.Hour))))
		require.NoError(t, repo.Create(ctx, newActivity("b.pdf", domain.ActivityStatusFailed, now)))
		require.NoError(t, repo.Create(ctx, newActivity("c.pdf", domain.ActivityStatusCompleted, now)))

		// Act
		count, err := repo.CountByStatusSince(ctx, domain.ActivityStatusFailed, now.Add(-time.Hour))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("DeleteBefore", func(t *testing.T) {
		// Arrange
		truncate()
		require.NoError(t, repo.Create(ctx, newActivity("old.pdf", domain.ActivityStatusCompleted, now.Add(-48*time.Hour))))
		require.NoError(t, repo.Create(ctx, newActivity("new.pdf", domain.ActivityStatusCompleted, now)))

		// Act
		deleted, err := repo.DeleteBefore(ctx, now.Add(-24*time.Hour))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
		activities, err := repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, activities, 1)
		assert.Equal(t, "new.pdf", activities[0].Document)
	})
}
