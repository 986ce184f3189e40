package intake

import (
	"doc-intake/internal/core/domain"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Queue is the ordered set of admitted entries. It is the only owner of entry state,
// every write goes through Append, Remove or UpdateStatus.
type Queue struct {
	mu      sync.Mutex
	entries []domain.FileEntry
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// StatusOption completes a status update
type StatusOption func(entry *domain.FileEntry)

// WithProgress sets the progress percentage, clamped to 0-100
func WithProgress(percent int) StatusOption {
	return func(entry *domain.FileEntry) {
		entry.ProgressPercent = min(max(percent, 0), 100)
	}
}

// WithErrorDetail sets the failure cause
func WithErrorDetail(detail string) StatusOption {
	return func(entry *domain.FileEntry) {
		entry.ErrorDetail = detail
	}
}

// Append adds entries in the given order. A duplicate id fails the whole call.
func (q *Queue) Append(entries ...domain.FileEntry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.ID]; ok || q.indexOf(entry.ID) != -1 {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateEntry, entry.ID)
		}
		seen[entry.ID] = struct{}{}
	}

	q.entries = append(q.entries, entries...)
	return nil
}

// Remove drops an entry whatever its status. Unknown ids are ignored.
func (q *Queue) Remove(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index := q.indexOf(id); index != -1 {
		q.entries = slices.Delete(q.entries, index, index+1)
	}
}

// UpdateStatus transitions one entry
func (q *Queue) UpdateStatus(id uuid.UUID, status domain.FileStatus, opts ...StatusOption) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	index := q.indexOf(id)
	if index == -1 {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}

	entry := q.entries[index]
	if !entry.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s for %s", domain.ErrInvalidTransition, entry.Status, status, id)
	}

	entry.Status = status
	if status != domain.FileStatusError {
		entry.ErrorDetail = ""
	}
	for _, opt := range opts {
		opt(&entry)
	}
	q.entries[index] = entry
	return nil
}

// Get returns a copy of one entry
func (q *Queue) Get(id uuid.UUID) (domain.FileEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	index := q.indexOf(id)
	if index == -1 {
		return domain.FileEntry{}, false
	}
	return q.entries[index], true
}

// Len returns the number of queued entries
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Snapshot returns the entries as they are now. Ranging over it twice yields the same sequence.
func (q *Queue) Snapshot() iter.Seq[domain.FileEntry] {
	q.mu.Lock()
	entries := slices.Clone(q.entries)
	q.mu.Unlock()

	return func(yield func(domain.FileEntry) bool) {
		for _, entry := range entries {
			if !yield(entry) {
				return
			}
		}
	}
}

func (q *Queue) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(q.entries, func(entry domain.FileEntry) bool {
		return entry.ID == id
	})
}
