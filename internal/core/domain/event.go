package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is a type that represents the type of a broker event
type EventType string

const (
	EventTypeUploadCompleted EventType = "intake.upload.completed"
	EventTypeDocumentStored  EventType = "document.stored"
)

// CompletionEvent is emitted once per entry reaching a terminal status
type CompletionEvent struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	SizeBytes   int64     `json:"size_bytes"`
	Success     bool      `json:"success"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Event is the envelope published on the broker
type Event struct {
	Type       EventType        `json:"type"`
	Completion *CompletionEvent `json:"completion,omitempty"`
	Document   *Document        `json:"document,omitempty"`
}
