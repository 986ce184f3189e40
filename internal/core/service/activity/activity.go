package activity

import (
	"doc-intake/internal/core/port"
	"log/slog"
)

const (
	// DefaultRecentLimit is used when no positive limit is asked
	DefaultRecentLimit = 20
	// MaxRecentLimit bounds a single feed page
	MaxRecentLimit = 100
)

type activityService struct {
	activities port.ActivityRepository
	documents  port.DocumentRepository
	logger     *slog.Logger
}

// NewActivityService creates the dashboard service
func NewActivityService(activities port.ActivityRepository, documents port.DocumentRepository, logger *slog.Logger) port.ActivityService {
	return &activityService{activities: activities, documents: documents, logger: logger}
}

// NewActivityEventService creates the broker message handler feeding the activity feed
func NewActivityEventService(activities port.ActivityRepository, logger *slog.Logger) port.MessageService {
	return &activityService{activities: activities, logger: logger}
}
