package activity

import (
	"context"
	"time"
)

// PruneBefore deletes the activity older than cutoff
func (a *activityService) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := a.activities.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		a.logger.Info("activity pruned", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
