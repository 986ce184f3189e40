package intake

import (
	"context"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// notifyTimeout bounds one completion notification
const notifyTimeout = 10 * time.Second

type orchestrator struct {
	rule   domain.AcceptanceRule
	queue  *Queue
	driver *Driver
	sink   port.CompletionSink
	logger *slog.Logger
	now    func() time.Time

	// drainMu serializes SubmitAll so that at most one entry is uploading
	drainMu sync.Mutex

	rejectionsMu sync.Mutex
	rejections   []domain.RejectionRecord
}

// NewOrchestrator creates a new intake service. sink may be nil.
func NewOrchestrator(rule domain.AcceptanceRule, transferer port.Transferer, sink port.CompletionSink, logger *slog.Logger) port.IntakeService {
	return &orchestrator{
		rule:   rule,
		queue:  NewQueue(),
		driver: NewDriver(transferer, logger),
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// OnFilesDropped filters a drop, queues the admitted files in drop order and
// replaces the rejections of the previous drop.
func (o *orchestrator) OnFilesDropped(drop domain.Drop) (domain.DropResult, error) {
	var result domain.DropResult
	tooMany := !o.rule.AllowMultiple && len(drop.Files) > 1

	for _, file := range drop.Files {
		decision := Evaluate(file, o.rule)
		reasons := decision.Reasons
		if tooMany {
			reasons = append(reasons, domain.RejectionReason{
				Code:    domain.RejectionTooManyFiles,
				Message: domain.ErrTooManyFiles.Error() + ": only one file can be dropped at a time",
			})
		}

		if len(reasons) > 0 {
			result.Rejected = append(result.Rejected, domain.RejectionRecord{File: file, Reasons: reasons})
			continue
		}
		result.Admitted = append(result.Admitted, domain.NewFileEntry(file, o.now()))
	}

	for _, rejected := range drop.Rejected {
		message := domain.ErrPlatformRejected.Error()
		if rejected.Reason != "" {
			message += ": " + rejected.Reason
		}
		result.Rejected = append(result.Rejected, domain.RejectionRecord{
			File:    rejected.File,
			Reasons: []domain.RejectionReason{{Code: domain.RejectionPlatformRejected, Message: message}},
		})
	}

	if err := o.queue.Append(result.Admitted...); err != nil {
		return domain.DropResult{}, err
	}

	o.rejectionsMu.Lock()
	o.rejections = result.Rejected
	o.rejectionsMu.Unlock()

	for _, record := range result.Rejected {
		o.logger.Info("file rejected", "file", record.File.Name, "reasons", len(record.Reasons))
	}
	o.logger.Info("files dropped", "admitted", len(result.Admitted), "rejected", len(result.Rejected), "queued", o.queue.Len())

	return result, nil
}

// SubmitAll uploads every pending entry one after the other, in queue order.
// A failed transfer marks its entry and the drain goes on.
func (o *orchestrator) SubmitAll(ctx context.Context) (domain.DrainSummary, error) {
	o.drainMu.Lock()
	defer o.drainMu.Unlock()

	var summary domain.DrainSummary
	for queued := range o.queue.Snapshot() {
		if queued.Status != domain.FileStatusPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		entry, found := o.queue.Get(queued.ID)
		if !found {
			// removed after the snapshot was taken
			continue
		}
		err := o.queue.UpdateStatus(entry.ID, domain.FileStatusUploading, WithProgress(0))
		if errors.Is(err, domain.ErrEntryNotFound) {
			continue
		}
		if err != nil {
			return summary, err
		}
		entry.Status = domain.FileStatusUploading
		summary.Attempted++

		outcome := o.driver.Run(ctx, entry, func(percent int) {
			err := o.queue.UpdateStatus(entry.ID, domain.FileStatusUploading, WithProgress(percent))
			if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
				o.logger.Error("failed to record progress", "id", entry.ID, "error", err)
			}
		})

		applied, err := o.resolve(ctx, entry, outcome)
		if err != nil {
			return summary, err
		}
		switch {
		case !applied:
			summary.Discarded++
		case outcome.Success:
			summary.Succeeded++
		default:
			summary.Failed++
		}
	}

	o.logger.Info("drain completed",
		"queued", o.queue.Len(),
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"discarded", summary.Discarded)
	return summary, nil
}

// resolve records the terminal status and notifies the sink. It returns false
// when the entry left the queue while its transfer was in flight.
func (o *orchestrator) resolve(ctx context.Context, entry domain.FileEntry, outcome domain.UploadOutcome) (bool, error) {
	status := domain.FileStatusSuccess
	opts := []StatusOption{WithProgress(100)}
	if !outcome.Success {
		status = domain.FileStatusError
		opts = []StatusOption{WithErrorDetail(outcome.ErrorDetail)}
	}

	err := o.queue.UpdateStatus(outcome.ID, status, opts...)
	if errors.Is(err, domain.ErrEntryNotFound) {
		o.logger.Info("stale outcome discarded", "id", outcome.ID, "file", entry.Payload.Name)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if o.sink == nil {
		return true, nil
	}
	event := domain.CompletionEvent{
		ID:          outcome.ID,
		FileName:    entry.Payload.Name,
		SizeBytes:   entry.Payload.Size,
		Success:     outcome.Success,
		ErrorDetail: outcome.ErrorDetail,
		CompletedAt: o.now(),
	}
	// a cancelled drain still reports the entries it finished
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if notifyErr := o.sink.Notify(notifyCtx, event); notifyErr != nil {
		o.logger.Warn("failed to notify completion", "id", outcome.ID, "error", notifyErr)
	}
	return true, nil
}

// RemoveFile removes an entry whatever its status
func (o *orchestrator) RemoveFile(id uuid.UUID) {
	o.queue.Remove(id)
}

// Snapshot returns the current queue content
func (o *orchestrator) Snapshot() iter.Seq[domain.FileEntry] {
	return o.queue.Snapshot()
}

// Rejections returns the rejections of the last drop
func (o *orchestrator) Rejections() []domain.RejectionRecord {
	o.rejectionsMu.Lock()
	defer o.rejectionsMu.Unlock()
	return slices.Clone(o.rejections)
}
