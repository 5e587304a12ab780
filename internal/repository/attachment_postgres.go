package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/catertrack/catertrack/internal/domain"
)

const attachmentColumns = "id, filename, file_path, lead_id, created_at"

type attachmentRepository struct {
	db *sql.DB
}

// NewAttachmentRepository creates a new PostgreSQL attachment repository
func NewAttachmentRepository(db *sql.DB) domain.AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error) {
	attachment.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO attachments (filename, file_path, lead_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		attachment.Filename,
		attachment.FilePath,
		attachment.LeadID,
		attachment.CreatedAt,
	).Scan(&attachment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}

	created, err := scanAttachment(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM attachments WHERE id = $1", attachmentColumns), attachment.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to read created attachment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (r *attachmentRepository) GetByID(ctx context.Context, id int64) (*domain.Attachment, error) {
	attachment, err := scanAttachment(r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM attachments WHERE id = $1", attachmentColumns), id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrAttachmentNotFound{Message: "attachment not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return attachment, nil
}

func (r *attachmentRepository) ListByLead(ctx context.Context, leadID int64) ([]*domain.Attachment, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM attachments WHERE lead_id = $1 ORDER BY id ASC", attachmentColumns), leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attachments: %w", err)
	}
	return attachments, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, id int64) (*domain.Attachment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	attachment, err := scanAttachment(tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM attachments WHERE id = $1", attachmentColumns), id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrAttachmentNotFound{Message: "attachment not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM attachments WHERE id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to delete attachment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return attachment, nil
}

func scanAttachment(row rowScanner) (*domain.Attachment, error) {
	var attachment domain.Attachment
	err := row.Scan(
		&attachment.ID,
		&attachment.Filename,
		&attachment.FilePath,
		&attachment.LeadID,
		&attachment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}
