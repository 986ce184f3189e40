package domain

import "errors"

// ErrTypeNotAllowed is a rejection reason when the media type or extension is not accepted
var ErrTypeNotAllowed = errors.New("file type not allowed")

// ErrSizeExceeded is a rejection reason when the file is bigger than the configured bound
var ErrSizeExceeded = errors.New("file size exceeded")

// ErrTooManyFiles is a rejection reason when several files are dropped on a single-file intake
var ErrTooManyFiles = errors.New("too many files")

// ErrPlatformRejected is a rejection reason for entries the drop source refused itself
var ErrPlatformRejected = errors.New("rejected by source")

// ErrDuplicateEntry is thrown when an entry id is already queued
var ErrDuplicateEntry = errors.New("duplicate entry id")

// ErrEntryNotFound is thrown when an entry id is not queued
var ErrEntryNotFound = errors.New("entry not found")

// ErrInvalidTransition is thrown when a status change breaks the entry lifecycle
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrTransferFailed is thrown when the remote service refuses a file
var ErrTransferFailed = errors.New("upload failed")

// ErrDocumentNotFound is thrown when a stored document does not exist
var ErrDocumentNotFound = errors.New("document not found")

// ErrInvalidDocumentName is thrown when a document name is empty or not a plain file name
var ErrInvalidDocumentName = errors.New("invalid document name")

// ErrDocumentTooLarge is thrown when an uploaded document is bigger than the server limit
var ErrDocumentTooLarge = errors.New("document too large")

// ErrUnknownEvent is thrown when a broker message cannot be mapped to an activity
var ErrUnknownEvent = errors.New("unknown event")
