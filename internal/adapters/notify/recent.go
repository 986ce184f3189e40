package notify

import (
	"context"
	"doc-intake/internal/core/domain"
	"slices"
	"sync"
)

// Recent keeps the latest successful uploads for the dashboard "recently uploaded" list
type Recent struct {
	mu       sync.Mutex
	capacity int
	uploads  []domain.CompletionEvent
}

// NewRecent creates a Recent list holding at most capacity uploads
func NewRecent(capacity int) *Recent {
	return &Recent{capacity: max(capacity, 1)}
}

// Notify records successful completions, failures are ignored
func (r *Recent) Notify(_ context.Context, event domain.CompletionEvent) error {
	if !event.Success {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.uploads = append(r.uploads, event)
	if overflow := len(r.uploads) - r.capacity; overflow > 0 {
		r.uploads = slices.Delete(r.uploads, 0, overflow)
	}
	return nil
}

// List returns the recorded uploads, newest first
func (r *Recent) List() []domain.CompletionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := slices.Clone(r.uploads)
	slices.Reverse(list)
	return list
}
