package port

import (
	"context"
	"doc-intake/internal/core/domain"
	"time"
)

// ActivityRepository is an interface to define activity feed repository interactions
type ActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
	CountByStatusSince(ctx context.Context, status domain.ActivityStatus, since time.Time) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActivityService is an interface to define the dashboard service
type ActivityService interface {
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
	Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
