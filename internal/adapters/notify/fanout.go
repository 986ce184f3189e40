package notify

import (
	"context"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"errors"
)

// Fanout forwards every event to all its sinks
type Fanout struct {
	sinks []port.CompletionSink
}

// NewFanout creates a Fanout, nil sinks are skipped
func NewFanout(sinks ...port.CompletionSink) *Fanout {
	f := &Fanout{}
	for _, sink := range sinks {
		if sink != nil {
			f.sinks = append(f.sinks, sink)
		}
	}
	return f
}

// Notify calls every sink, even after a failure, and joins the errors
func (f *Fanout) Notify(ctx context.Context, event domain.CompletionEvent) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
