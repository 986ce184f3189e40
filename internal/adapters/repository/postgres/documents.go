package postgres

import (
	"context"
	"database/sql"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"errors"
	"fmt"
	"time"
)

type sqlDocumentRepository struct {
	db SQLQuerier
}

// NewSqlDocumentRepository creates sqlDocumentRepository that implements port.DocumentRepository
func NewSqlDocumentRepository(db SQLQuerier) port.DocumentRepository {
	return &sqlDocumentRepository{
		db: db,
	}
}

// Upsert inserts a document or refreshes the one stored under the same name.
// The id and created_at of an existing row are kept.
func (s *sqlDocumentRepository) Upsert(ctx context.Context, document domain.Document) (*domain.Document, error) {
	query := `INSERT INTO documents (id, name, content_type, size_bytes, storage_key)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (name) DO UPDATE
              SET content_type = EXCLUDED.content_type,
                  size_bytes = EXCLUDED.size_bytes,
                  storage_key = EXCLUDED.storage_key,
                  updated_at = now()
              RETURNING id, name, content_type, size_bytes, storage_key, created_at, updated_at`

	var stored domain.Document
	err := s.db.QueryRowContext(ctx, query,
		document.ID,
		document.Name,
		document.ContentType,
		document.SizeBytes,
		document.StorageKey,
	).Scan(
		&stored.ID,
		&stored.Name,
		&stored.ContentType,
		&stored.SizeBytes,
		&stored.StorageKey,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error upserting document %s: %w", document.Name, err)
	}
	return &stored, nil
}

// FindByName finds by name
func (s *sqlDocumentRepository) FindByName(ctx context.Context, name string) (*domain.Document, error) {
	query := `SELECT id, name, content_type, size_bytes, storage_key, created_at, updated_at
              FROM documents
              WHERE name = $1`

	var document domain.Document
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&document.ID,
		&document.Name,
		&document.ContentType,
		&document.SizeBytes,
		&document.StorageKey,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error finding document %s: %w", name, err)
	}
	return &document, nil
}

// Stats counts documents, those stored since the given time, and the bytes they use
func (s *sqlDocumentRepository) Stats(ctx context.Context, since time.Time) (*domain.DocumentStats, error) {
	query := `SELECT COUNT(*),
                     COUNT(*) FILTER (WHERE updated_at >= $1),
                     COALESCE(SUM(size_bytes), 0)
              FROM documents`

	var stats domain.DocumentStats
	if err := s.db.QueryRowContext(ctx, query, since).Scan(&stats.Total, &stats.StoredSince, &stats.StorageBytes); err != nil {
		return nil, fmt.Errorf("error computing document stats: %w", err)
	}
	return &stats, nil
}
