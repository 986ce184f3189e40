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

func newDocument(name string, size int64) domain.Document {
	return domain.Document{
		ID:          uuid.New(),
		Name:        name,
		ContentType: "application/pdf",
		SizeBytes:   size,
		StorageKey:  name,
	}
}

func TestSqlDocumentRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := postgres.NewSqlDocumentRepository(dbConnection)

	t.Run("Upsert - Insert", func(t *testing.T) {
		// Arrange
		truncate()
		document := newDocument("report.pdf", 1024)

		// Act
		stored, err := repo.Upsert(ctx, document)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, document.ID, stored.ID)
		assert.Equal(t, "report.pdf", stored.Name)
		assert.False(t, stored.CreatedAt.IsZero())
	})

	t.Run("Upsert - Same name keeps id", func(t *testing.T) {
		// Arrange
		truncate()
		first, err := repo.Upsert(ctx, newDocument("report.pdf", 1024))
		require.NoError(t, err)

		// Act
		second, err := repo.Upsert(ctx, newDocument("report.pdf", 2048))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, int64(2048), second.SizeBytes)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	})

	t.Run("FindByName - Success", func(t *testing.T) {
		// Arrange
		truncate()
		_, err := repo.Upsert(ctx, newDocument("notes.txt", 12))
		require.NoError(t, err)

		// Act
		document, err := repo.FindByName(ctx, "notes.txt")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(12), document.SizeBytes)
	})

	t.Run("FindByName - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		_, err := repo.FindByName(ctx, "missing.pdf")

		// Assert
		require.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Stats", func(t *testing.T) {
		// Arrange
		truncate()
		_, err := repo.Upsert(ctx, newDocument("a.pdf", 100))
		require.NoError(t, err)
		_, err = repo.Upsert(ctx, newDocument("b.pdf", 50))
		require.NoError(t, err)

		// Act
		stats, err := repo.Stats(ctx, time.Now().Add(-time.Hour))
		future, futureErr := repo.Stats(ctx, time.Now().Add(time.Hour))

		// Assert
		require.NoError(t, err)
		require.NoError(t, futureErr)
		assert.Equal(t, int64(2), stats.Total)
		assert.Equal(t, int64(2), stats.StoredSince)
		assert.Equal(t, int64(150), stats.StorageBytes)
		assert.Equal(t, int64(0), future.StoredSince)
	})

	t.Run("Stats - Empty", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		stats, err := repo.Stats(ctx, time.Now())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, domain.DocumentStats{}, *stats)
	})
}
