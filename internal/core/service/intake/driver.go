package intake

import (
	"context"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"log/slog"
	"sync"
	"time"
)

// Driver runs one transfer at a time and turns its result into an outcome
type Driver struct {
	transferer port.Transferer
	logger     *slog.Logger
}

// NewDriver creates a new Driver
func NewDriver(transferer port.Transferer, logger *slog.Logger) *Driver {
	return &Driver{transferer: transferer, logger: logger}
}

// Run transfers entry and reports exactly one outcome. Progress is forwarded
// clamped and non decreasing, and dropped once the transfer has returned.
func (d *Driver) Run(ctx context.Context, entry domain.FileEntry, progress port.ProgressFunc) domain.UploadOutcome {
	var (
		mu      sync.Mutex
		last    int
		settled bool
	)
	report := func(percent int) {
		mu.Lock()
		defer mu.Unlock()

		percent = min(max(percent, 0), 100)
		if settled || percent <= last || progress == nil {
			return
		}
		last = percent
		progress(percent)
	}

	start := time.Now()
	err := d.transferer.Transfer(ctx, entry, report)

	mu.Lock()
	settled = true
	mu.Unlock()

	if err != nil {
		d.logger.Warn("transfer failed",
			"id", entry.ID,
			"file", entry.Payload.Name,
			"duration", time.Since(start),
			"error", err)
		return domain.UploadOutcome{ID: entry.ID, Success: false, ErrorDetail: err.Error()}
	}

	d.logger.Info("transfer completed",
		"id", entry.ID,
		"file", entry.Payload.Name,
		"duration", time.Since(start))
	return domain.UploadOutcome{ID: entry.ID, Success: true}
}
