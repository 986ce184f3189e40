package activity

import (
	"context"
	"doc-intake/internal/core/domain"
	"time"
)

// Stats computes the dashboard cards, "today" starts at midnight in now's location
func (a *activityService) Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	documents, err := a.documents.Stats(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	failed, err := a.activities.CountByStatusSince(ctx, domain.ActivityStatusFailed, startOfDay)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalDocuments:    documents.Total,
		StoredToday:       documents.StoredSince,
		StorageBytes:      documents.StorageBytes,
		FailedUploadToday: failed,
	}, nil
}
