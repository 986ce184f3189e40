package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a stored document metadata
type Document struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentStats aggregates stored documents
type DocumentStats struct {
	Total        int64
	StoredSince  int64
	StorageBytes int64
}
