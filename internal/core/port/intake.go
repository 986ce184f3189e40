package port

import (
	"context"
	"doc-intake/internal/core/domain"
	"iter"

	"github.com/google/uuid"
)

// ProgressFunc receives a transfer progress percentage (0-100)
type ProgressFunc func(percent int)

// Transferer performs one remote transfer of a file entry
type Transferer interface {
	Transfer(ctx context.Context, entry domain.FileEntry, progress ProgressFunc) error
}

// CompletionSink receives one notification per entry reaching a terminal status
type CompletionSink interface {
	Notify(ctx context.Context, event domain.CompletionEvent) error
}

// IntakeService is an interface to define the file intake orchestration
type IntakeService interface {
	OnFilesDropped(drop domain.Drop) (domain.DropResult, error)
	SubmitAll(ctx context.Context) (domain.DrainSummary, error)
	RemoveFile(id uuid.UUID)
	Snapshot() iter.Seq[domain.FileEntry]
	Rejections() []domain.RejectionRecord
}
