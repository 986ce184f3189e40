package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction represents what happened
type ActivityAction string

const (
	ActivityActionUploaded     ActivityAction = "document_uploaded"
	ActivityActionUploadFailed ActivityAction = "upload_failed"
	ActivityActionStored       ActivityAction = "document_stored"
)

// ActivityStatus represents the outcome of an activity
type ActivityStatus string

const (
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusFailed    ActivityStatus = "failed"
)

// Activity represents an entry of the dashboard activity feed
type Activity struct {
	ID         uuid.UUID
	Action     ActivityAction
	Document   string
	Status     ActivityStatus
	Detail     string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// DashboardStats represents the dashboard summary cards
type DashboardStats struct {
	TotalDocuments    int64
	StoredToday       int64
	StorageBytes      int64
	FailedUploadToday int64
}
