package postgres

import (
	"context"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"fmt"
	"time"
)

type sqlActivityRepository struct {
	db SQLQuerier
}

// NewSqlActivityRepository creates sqlActivityRepository that implements port.ActivityRepository
func NewSqlActivityRepository(db SQLQuerier) port.ActivityRepository {
	return &sqlActivityRepository{
		db: db,
	}
}

// Create records an activity, recording the same id twice is a no-op
func (s *sqlActivityRepository) Create(ctx context.Context, activity domain.Activity) error {
	query := `INSERT INTO activity (id, action, document, status, detail, occurred_at)
              VALUES ($1, $2, $3, $4, $5, $6)
              ON CONFLICT (id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query,
		activity.ID,
		activity.Action,
		activity.Document,
		activity.Status,
		activity.Detail,
		activity.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting activity: %w", err)
	}
	return nil
}

// ListRecent lists the latest activities, newest first
func (s *sqlActivityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	query := `SELECT id, action, document, status, detail, occurred_at, created_at
              FROM activity
              ORDER BY occurred_at DESC, created_at DESC
              LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing activity: %w", err)
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0, limit)
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Action, &a.Document, &a.Status, &a.Detail, &a.OccurredAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}
	return activities, nil
}

// CountByStatusSince counts activities with the given status that occurred since a time
func (s *sqlActivityRepository) CountByStatusSince(ctx context.Context, status domain.ActivityStatus, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM activity WHERE status = $1 AND occurred_at >= $2`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, status, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting activity: %w", err)
	}
	return count, nil
}

// DeleteBefore hard deletes activities older than cutoff
func (s *sqlActivityRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM activity WHERE occurred_at < $1`

	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error deleting activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking rows affected: %w", err)
	}
	return rowsAffected, nil
}
