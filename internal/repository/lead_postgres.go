package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/catertrack/catertrack/internal/domain"
)

const leadColumns = "id, name, phone, email, event_type, guests_count, event_date, venue, notes, stage, created_by, created_at, updated_at"

type leadRepository struct {
	db *sql.DB
}

// NewLeadRepository creates a new PostgreSQL lead repository
func NewLeadRepository(db *sql.DB) domain.LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead.Stage == "" {
		lead.Stage = domain.StageNew
	}
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO leads (name, phone, email, event_type, guests_count, event_date, venue, notes, stage, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.EventType,
		lead.GuestsCount,
		lead.EventDate,
		lead.Venue,
		lead.Notes,
		lead.Stage,
		lead.CreatedBy,
		lead.CreatedAt,
		lead.UpdatedAt,
	).Scan(&lead.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &domain.ErrPhoneExists{Message: "a lead with this phone number already exists"}
		}
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	created, err := scanLead(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM leads WHERE id = $1", leadColumns), lead.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to read created lead: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := scanLead(r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM leads WHERE id = $1", leadColumns), id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrLeadNotFound{Message: "lead not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

func (r *leadRepository) List(ctx context.Context, skip, limit int) ([]*domain.Lead, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(leadColumns).
		From("leads").
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}

// Update applies only the fields present in the request. The merge is an
// explicit per-field list, not reflection: a set field overwrites, an
// explicit null clears a nullable column, an absent field is untouched.
func (r *leadRepository) Update(ctx context.Context, id int64, req *domain.UpdateLeadRequest) (*domain.Lead, error) {
	setMap := sq.Eq{"updated_at": time.Now().UTC()}
	if req.Name.Set {
		setMap["name"] = req.Name.Value
	}
	if req.Phone.Set {
		setMap["phone"] = req.Phone.Value
	}
	if req.Email.Set {
		setMap["email"] = req.Email.Ptr()
	}
	if req.EventType.Set {
		setMap["event_type"] = req.EventType.Ptr()
	}
	if req.GuestsCount.Set {
		setMap["guests_count"] = req.GuestsCount.Ptr()
	}
	if req.EventDate.Set {
		setMap["event_date"] = req.EventDate.Ptr()
	}
	if req.Venue.Set {
		setMap["venue"] = req.Venue.Ptr()
	}
	if req.Notes.Set {
		setMap["notes"] = req.Notes.Ptr()
	}
	if req.Stage.Set {
		setMap["stage"] = req.Stage.Value
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("leads").
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
		if isUniqueViolation(err) {
			return nil, &domain.ErrPhoneExists{Message: "a lead with this phone number already exists"}
		}
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return nil, &domain.ErrLeadNotFound{Message: "lead not found"}
	}

	updated, err := scanLead(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM leads WHERE id = $1", leadColumns), id))
	if err != nil {
		return nil, fmt.Errorf("failed to read updated lead: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

// Delete removes the lead and returns the pre-deletion row. Child
// activities, follow-ups and attachments go with it via ON DELETE CASCADE.
func (r *leadRepository) Delete(ctx context.Context, id int64) (*domain.Lead, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lead, err := scanLead(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM leads WHERE id = $1", leadColumns), id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrLeadNotFound{Message: "lead not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM leads WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to delete lead: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return lead, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.EventType,
		&lead.GuestsCount,
		&lead.EventDate,
		&lead.Venue,
		&lead.Notes,
		&lead.Stage,
		&lead.CreatedBy,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
