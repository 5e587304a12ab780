package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/catertrack/catertrack/internal/domain"
)

const activityColumns = "id, type, content, lead_id, user_id, created_at"

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new PostgreSQL activity repository
func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	activity.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO activities (type, content, lead_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		activity.Type,
		activity.Content,
		activity.LeadID,
		activity.UserID,
		activity.CreatedAt,
	).Scan(&activity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	created, err := scanActivity(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM activities WHERE id = $1", activityColumns), activity.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to read created activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (r *activityRepository) ListByLead(ctx context.Context, leadID int64, skip, limit int) ([]*domain.Activity, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(activityColumns).
		From("activities").
		Where(sq.Eq{"lead_id": leadID}).
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var activity domain.Activity
	err := row.Scan(
		&activity.ID,
		&activity.Type,
		&activity.Content,
		&activity.LeadID,
		&activity.UserID,
		&activity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}
