package activity

import (
	"context"
	"doc-intake/internal/core/domain"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HandleMessage records the activity described by a broker event.
// Undecodable or unknown events wrap domain.ErrUnknownEvent, redelivering them cannot help.
func (a *activityService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("%w: could not unmarshal event: %v", domain.ErrUnknownEvent, err)
	}

	activity, err := toActivity(event)
	if err != nil {
		return err
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = time.Now()
	}

	if err := a.activities.Create(ctx, activity); err != nil {
		return err
	}

	a.logger.Info("activity recorded",
		"type", event.Type,
		"action", activity.Action,
		"document", activity.Document,
		"status", activity.Status,
	)
	return nil
}

// toActivity maps an event to its activity, the id is derived from the event so redeliveries collapse
func toActivity(event domain.Event) (domain.Activity, error) {
	switch event.Type {
	case domain.EventTypeUploadCompleted:
		c := event.Completion
		if c == nil {
			return domain.Activity{}, fmt.Errorf("%w: %s without completion", domain.ErrUnknownEvent, event.Type)
		}
		activity := domain.Activity{
			ID:         c.ID,
			Action:     domain.ActivityActionUploaded,
			Document:   c.FileName,
			Status:     domain.ActivityStatusCompleted,
			OccurredAt: c.CompletedAt,
		}
		if !c.Success {
			activity.Action = domain.ActivityActionUploadFailed
			activity.Status = domain.ActivityStatusFailed
			activity.Detail = c.ErrorDetail
		}
		return activity, nil

	case domain.EventTypeDocumentStored:
		d := event.Document
		if d == nil {
			return domain.Activity{}, fmt.Errorf("%w: %s without document", domain.ErrUnknownEvent, event.Type)
		}
		return domain.Activity{
			ID:         uuid.NewSHA1(d.ID, []byte(d.UpdatedAt.UTC().Format(time.RFC3339Nano))),
			Action:     domain.ActivityActionStored,
			Document:   d.Name,
			Status:     domain.ActivityStatusCompleted,
			Detail:     fmt.Sprintf("%s, %d bytes", d.ContentType, d.SizeBytes),
			OccurredAt: d.UpdatedAt,
		}, nil

	default:
		return domain.Activity{}, fmt.Errorf("%w: %q", domain.ErrUnknownEvent, event.Type)
	}
}
