package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/catertrack/catertrack/internal/domain"
)

const followUpColumns = "id, scheduled_at, note, lead_id, user_id, status, created_at"

type followUpRepository struct {
	db *sql.DB
}

// NewFollowUpRepository creates a new PostgreSQL follow-up repository
func NewFollowUpRepository(db *sql.DB) domain.FollowUpRepository {
	return &followUpRepository{db: db}
}

func (r *followUpRepository) Create(ctx context.Context, followUp *domain.FollowUp) (*domain.FollowUp, error) {
	if followUp.Status == "" {
		followUp.Status = domain.FollowUpStatusPending
	}
	followUp.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO followups (scheduled_at, note, lead_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		followUp.ScheduledAt,
		followUp.Note,
		followUp.LeadID,
		followUp.UserID,
		followUp.Status,
		followUp.CreatedAt,
	).Scan(&followUp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create follow-up: %w", err)
	}

	created, err := scanFollowUp(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM followups WHERE id = $1", followUpColumns), followUp.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to read created follow-up: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (r *followUpRepository) GetByID(ctx context.Context, id int64) (*domain.FollowUp, error) {
	followUp, err := scanFollowUp(r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM followups WHERE id = $1", followUpColumns), id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrFollowUpNotFound{Message: "follow-up not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get follow-up: %w", err)
	}
	return followUp, nil
}

func (r *followUpRepository) ListByLead(ctx context.Context, leadID int64, skip, limit int) ([]*domain.FollowUp, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(followUpColumns).
		From("followups").
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
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	defer rows.Close()

	var followUps []*domain.FollowUp
	for rows.Next() {
		followUp, err := scanFollowUp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan follow-up: %w", err)
		}
		followUps = append(followUps, followUp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate follow-ups: %w", err)
	}
	return followUps, nil
}

func (r *followUpRepository) Update(ctx context.Context, id int64, req *domain.UpdateFollowUpRequest) (*domain.FollowUp, error) {
	setMap := sq.Eq{}
	if req.Status.Set {
		setMap["status"] = req.Status.Value
	}
	if req.Note.Set {
		setMap["note"] = req.Note.Ptr()
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("followups").
		SetMap(setMap).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update follow-up: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return nil, &domain.ErrFollowUpNotFound{Message: "follow-up not found"}
	}

	updated, err := scanFollowUp(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM followups WHERE id = $1", followUpColumns), id))
	if err != nil {
		return nil, fmt.Errorf("failed to read updated follow-up: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

func scanFollowUp(row rowScanner) (*domain.FollowUp, error) {
	var followUp domain.FollowUp
	err := row.Scan(
		&followUp.ID,
		&followUp.ScheduledAt,
		&followUp.Note,
		&followUp.LeadID,
		&followUp.UserID,
		&followUp.Status,
		&followUp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &followUp, nil
}
