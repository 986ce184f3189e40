package port

import (
	"context"
	"doc-intake/internal/core/domain"
	"io"
	"time"
)

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// ObjectStorage is an interface to define object storage interactions
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*ObjectInfo, error)
	GetObject(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)
	DeleteObject(ctx context.Context, key string) error
}

// DocumentRepository is an interface to define document metadata repository interactions
type DocumentRepository interface {
	Upsert(ctx context.Context, document domain.Document) (*domain.Document, error)
	FindByName(ctx context.Context, name string) (*domain.Document, error)
	Stats(ctx context.Context, since time.Time) (*domain.DocumentStats, error)
}

// DocumentService is an interface to define document service
type DocumentService interface {
	StoreDocument(ctx context.Context, name string, size int64, body io.Reader) (*domain.Document, error)
	GetDocument(ctx context.Context, name string) (*domain.Document, io.ReadCloser, error)
}
