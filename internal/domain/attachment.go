package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Attachment is a file associated with a lead. The database row is
// authoritative; the file on disk is a best-effort mirror addressed by
// FilePath.
type Attachment struct {
	ID        int64     `json:"id" db:"id"`
	Filename  string    `json:"filename" db:"filename"`
	FilePath  string    `json:"file_path" db:"file_path"`
	LeadID    int64     `json:"lead_id" db:"lead_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ValidateAttachmentFilename rejects empty, oversized or path-escaping
// client-supplied filenames before a file is written under the upload dir.
func ValidateAttachmentFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename is required")
	}
	if len(filename) > 255 {
		return fmt.Errorf("filename must be less than 255 characters")
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("filename must not contain path separators")
	}
	return nil
}

type AttachmentRepository interface {
	// Create inserts the attachment row and returns the stored row
	Create(ctx context.Context, attachment *Attachment) (*Attachment, error)

	// GetByID retrieves an attachment by id
	GetByID(ctx context.Context, id int64) (*Attachment, error)

	// ListByLead returns the lead's attachments in insertion order
	ListByLead(ctx context.Context, leadID int64) ([]*Attachment, error)

	// Delete removes the attachment row and returns the pre-deletion row.
	// Removing the backing file is the service's responsibility.
	Delete(ctx context.Context, id int64) (*Attachment, error)
}

type AttachmentServiceInterface interface {
	UploadAttachment(ctx context.Context, leadID int64, filename string, content []byte) (*Attachment, error)
	ListAttachments(ctx context.Context, leadID int64) ([]*Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) (*Attachment, error)
}

// ErrAttachmentNotFound is returned when an attachment is not found
type ErrAttachmentNotFound struct {
	Message string
}

func (e *ErrAttachmentNotFound) Error() string {
	return e.Message
}
