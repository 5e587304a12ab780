package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Audit actions recorded by the lead service
const (
	AuditActionLeadCreated = "lead.created"
	AuditActionLeadUpdated = "lead.updated"
	AuditActionLeadDeleted = "lead.deleted"
)

// AuditLog is an append-only record of a mutating action
type AuditLog struct {
	ID        int64           `json:"id" db:"id"`
	UserID    *int64          `json:"user_id,omitempty" db:"user_id"`
	Action    string          `json:"action" db:"action"`
	Details   json.RawMessage `json:"details,omitempty" db:"details"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type AuditLogRepository interface {
	// Create appends an audit entry
	Create(ctx context.Context, entry *AuditLog) error

	// List returns audit entries, most recent first
	List(ctx context.Context, skip, limit int) ([]*AuditLog, error)
}

type AuditLogServiceInterface interface {
	ListAuditLogs(ctx context.Context, skip, limit int) ([]*AuditLog, error)
}
