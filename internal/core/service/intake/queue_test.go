package intake_test

import (
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/service/intake"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(name string) domain.FileEntry {
	return domain.NewFileEntry(domain.RawFile{Name: name, MediaType: "application/pdf", Size: 1024}, time.Now())
}

func names(queue *intake.Queue) []string {
	var result []string
	for entry := range queue.Snapshot() {
		result = append(result, entry.Payload.Name)
	}
	return result
}

func TestQueue_Append(t *testing.T) {
	t.Run("keeps order across calls", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()

		// Act
		require.NoError(t, queue.Append(newEntry("a.pdf"), newEntry("b.pdf")))
		require.NoError(t, queue.Append(newEntry("c.pdf")))

		// Assert
		assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, names(queue))
	})

	t.Run("duplicate id already queued", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		entry := newEntry("a.pdf")
		require.NoError(t, queue.Append(entry))

		// Act
		err := queue.Append(newEntry("b.pdf"), entry)

		// Assert
		require.ErrorIs(t, err, domain.ErrDuplicateEntry)
		assert.Equal(t, []string{"a.pdf"}, names(queue))
	})

	t.Run("duplicate id inside the batch", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		entry := newEntry("a.pdf")

		// Act
		err := queue.Append(entry, entry)

		// Assert
		require.ErrorIs(t, err, domain.ErrDuplicateEntry)
		assert.Equal(t, 0, queue.Len())
	})
}

func TestQueue_Remove(t *testing.T) {
	t.Run("removes whatever the status", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		entry := newEntry("a.pdf")
		require.NoError(t, queue.Append(entry, newEntry("b.pdf")))
		require.NoError(t, queue.UpdateStatus(entry.ID, domain.FileStatusUploading))

		// Act
		queue.Remove(entry.ID)

		// Assert
		_, found := queue.Get(entry.ID)
		assert.False(t, found)
		assert.Equal(t, []string{"b.pdf"}, names(queue))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		require.NoError(t, queue.Append(newEntry("a.pdf")))

		// Act
		queue.Remove(uuid.New())

		// Assert
		assert.Equal(t, 1, queue.Len())
	})
}

func TestQueue_UpdateStatus(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()

		// Act
		err := queue.UpdateStatus(uuid.New(), domain.FileStatusUploading)

		// Assert
		require.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("full success lifecycle", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		entry := newEntry("a.pdf")
		require.NoError(t, queue.Append(entry))

		// Act
		require.NoError(t, queue.UpdateStatus(entry.ID, domain.FileStatusUploading, intake.WithProgress(0)))
		require.NoError(t, queue.UpdateStatus(entry.ID, domain.FileStatusUploading, intake.WithProgress(40)))
		require.NoError(t, queue.UpdateStatus(entry.ID, domain.FileStatusSuccess, intake.WithProgress(100)))

		// Assert
		got, found := queue.Get(entry.ID)
		require.True(t, found)
		assert.Equal(t, domain.FileStatusSuccess, got.Status)
		assert.Equal(t, 100, got.ProgressPercent)
		assert.Empty(t, got.ErrorDetail)
	})

	t.Run("error keeps its detail", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		entry := newEntry("a.pdf")
		require.NoError(t, queue.Append(entry))
		require.NoError(t, queue.UpdateStatus(entry.ID, domain.FileStatusUploading))

		// Act
		err := queue.UpdateStatus(entry.ID, domain.FileStatusError, intake.WithErrorDetail("connection refused"))

		// Assert
		require.NoError(t, err)
		got, _ := queue.Get(entry.ID)
		assert.Equal(t, domain.FileStatusError, got.Status)
		assert.Equal(t, "connection refused", got.ErrorDetail)
	})

	t.Run("progress is clamped", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		entry := newEntry("a.pdf")
		require.NoError(t, queue.Append(entry))

		// Act
		require.NoError(t, queue.UpdateStatus(entry.ID, domain.FileStatusUploading, intake.WithProgress(250)))

		// Assert
		got, _ := queue.Get(entry.ID)
		assert.Equal(t, 100, got.ProgressPercent)
	})

	t.Run("illegal transitions", func(t *testing.T) {
		transitions := []struct {
			path []domain.FileStatus
			next domain.FileStatus
		}{
			{path: nil, next: domain.FileStatusSuccess},
			{path: nil, next: domain.FileStatusError},
			{path: nil, next: domain.FileStatusPending},
			{path: []domain.FileStatus{domain.FileStatusUploading}, next: domain.FileStatusPending},
			{path: []domain.FileStatus{domain.FileStatusUploading, domain.FileStatusSuccess}, next: domain.FileStatusUploading},
			{path: []domain.FileStatus{domain.FileStatusUploading, domain.FileStatusSuccess}, next: domain.FileStatusError},
			{path: []domain.FileStatus{domain.FileStatusUploading, domain.FileStatusError}, next: domain.FileStatusUploading},
			{path: []domain.FileStatus{domain.FileStatusUploading, domain.FileStatusError}, next: domain.FileStatusSuccess},
		}

		for _, tt := range transitions {
			// Arrange
			queue := intake.NewQueue()
			entry := newEntry("a.pdf")
			require.NoError(t, queue.Append(entry))
			for _, status := range tt.path {
				require.NoError(t, queue.UpdateStatus(entry.ID, status))
			}
			before, _ := queue.Get(entry.ID)

			// Act
			err := queue.UpdateStatus(entry.ID, tt.next)

			// Assert
			require.ErrorIs(t, err, domain.ErrInvalidTransition)
			after, _ := queue.Get(entry.ID)
			assert.Equal(t, before, after)
		}
	})
}

func TestQueue_Snapshot(t *testing.T) {
	t.Run("is restartable", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		require.NoError(t, queue.Append(newEntry("a.pdf"), newEntry("b.pdf")))
		snapshot := queue.Snapshot()

		// Act
		first := slices.Collect(snapshot)
		second := slices.Collect(snapshot)

		// Assert
		assert.Equal(t, first, second)
		assert.Len(t, first, 2)
	})

	t.Run("is not a live view", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		entry := newEntry("a.pdf")
		require.NoError(t, queue.Append(entry))
		snapshot := queue.Snapshot()

		// Act
		require.NoError(t, queue.UpdateStatus(entry.ID, domain.FileStatusUploading))
		require.NoError(t, queue.Append(newEntry("b.pdf")))

		// Assert
		entries := slices.Collect(snapshot)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.FileStatusPending, entries[0].Status)
	})

	t.Run("stops early", func(t *testing.T) {
		// Arrange
		queue := intake.NewQueue()
		require.NoError(t, queue.Append(newEntry("a.pdf"), newEntry("b.pdf"), newEntry("c.pdf")))

		// Act
		var visited int
		for range queue.Snapshot() {
			visited++
			break
		}

		// Assert
		assert.Equal(t, 1, visited)
	})
}
