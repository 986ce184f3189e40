package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// FileStatus represents the lifecycle status of a queued file
type FileStatus string

const (
	FileStatusPending   FileStatus = "pending"
	FileStatusUploading FileStatus = "uploading"
	FileStatusSuccess   FileStatus = "success"
	FileStatusError     FileStatus = "error"
)

// IsTerminal reports whether no further transition can happen
func (s FileStatus) IsTerminal() bool {
	return s == FileStatusSuccess || s == FileStatusError
}

// CanTransitionTo reports whether next is a legal successor of s.
// uploading -> uploading is allowed to refresh progress.
func (s FileStatus) CanTransitionTo(next FileStatus) bool {
	switch s {
	case FileStatusPending:
		return next == FileStatusUploading
	case FileStatusUploading:
		return next == FileStatusUploading || next.IsTerminal()
	default:
		return false
	}
}

// RawFile is a file descriptor as handed over by a drop or selection source
type RawFile struct {
	Name      string
	MediaType string
	Size      int64
	// Open returns the file content. It may be called once per transfer attempt.
	Open func() (io.ReadCloser, error)
}

// FileEntry represents an admitted file tracked by the intake queue
type FileEntry struct {
	ID              uuid.UUID
	Payload         RawFile
	Status          FileStatus
	ProgressPercent int
	ErrorDetail     string
	AdmittedAt      time.Time
}

// NewFileEntry creates a pending entry for an admitted file
func NewFileEntry(file RawFile, admittedAt time.Time) FileEntry {
	return FileEntry{
		ID:         uuid.New(),
		Payload:    file,
		Status:     FileStatusPending,
		AdmittedAt: admittedAt,
	}
}

// UploadOutcome is the single result of one transfer attempt
type UploadOutcome struct {
	ID          uuid.UUID
	Success     bool
	ErrorDetail string
}

// DrainSummary counts what one drain did
type DrainSummary struct {
	Attempted int
	Succeeded int
	Failed    int
	Discarded int
}
