package activity

import (
	"context"
	"doc-intake/internal/core/domain"
)

func (a *activityService) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return a.activities.ListRecent(ctx, min(limit, MaxRecentLimit))
}
