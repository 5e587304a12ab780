package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/catertrack/catertrack/internal/domain"
)

const auditLogColumns = "id, user_id, action, details, created_at"

type auditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new PostgreSQL audit log repository
func NewAuditLogRepository(db *sql.DB) domain.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO audit_logs (user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var details interface{}
	if len(entry.Details) > 0 {
		details = []byte(entry.Details)
	}
	err := r.db.QueryRowContext(ctx, query,
		entry.UserID,
		entry.Action,
		details,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, skip, limit int) ([]*domain.AuditLog, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(auditLogColumns).
		From("audit_logs").
		OrderBy("id DESC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var details []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entry.Details = details
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}
	return entries, nil
}
