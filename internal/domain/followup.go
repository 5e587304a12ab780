package domain

import (
	"context"
	"fmt"
	"time"
)

// Follow-up statuses. Unlike the lead stage, this set is enforced.
const (
	FollowUpStatusPending = "pending"
	FollowUpStatusDone    = "done"
	FollowUpStatusOverdue = "overdue"
)

// FollowUp is a scheduled future action attached to a lead
type FollowUp struct {
	ID          int64     `json:"id" db:"id"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	Note        *string   `json:"note,omitempty" db:"note"`
	LeadID      int64     `json:"lead_id" db:"lead_id"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateFollowUpRequest is the input shape for scheduling a follow-up
type CreateFollowUpRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	Note        *string   `json:"note,omitempty"`
}

func (r *CreateFollowUpRequest) Validate() error {
	if r.ScheduledAt.IsZero() {
		return fmt.Errorf("invalid create follow-up request: scheduled_at is required")
	}
	return nil
}

// UpdateFollowUpRequest updates a follow-up's status and/or note. Absent
// fields are preserved; note accepts an explicit null to clear it.
type UpdateFollowUpRequest struct {
	Status Optional[string] `json:"status"`
	Note   Optional[string] `json:"note"`
}

func (r *UpdateFollowUpRequest) Validate() error {
	if r.Status.Set {
		if !r.Status.Valid {
			return fmt.Errorf("invalid update follow-up request: status cannot be cleared")
		}
		switch r.Status.Value {
		case FollowUpStatusPending, FollowUpStatusDone, FollowUpStatusOverdue:
		default:
			return fmt.Errorf("invalid update follow-up request: status must be pending, done or overdue")
		}
	}
	if !r.Status.Set && !r.Note.Set {
		return fmt.Errorf("invalid update follow-up request: no fields to update")
	}
	return nil
}

type FollowUpRepository interface {
	// Create inserts the follow-up and returns the stored row
	Create(ctx context.Context, followUp *FollowUp) (*FollowUp, error)

	// GetByID retrieves a follow-up by id
	GetByID(ctx context.Context, id int64) (*FollowUp, error)

	// ListByLead returns the lead's follow-ups in insertion order
	ListByLead(ctx context.Context, leadID int64, skip, limit int) ([]*FollowUp, error)

	// Update applies the partial update and returns the stored row
	Update(ctx context.Context, id int64, req *UpdateFollowUpRequest) (*FollowUp, error)
}

type FollowUpServiceInterface interface {
	CreateFollowUp(ctx context.Context, leadID int64, req *CreateFollowUpRequest) (*FollowUp, error)
	ListFollowUps(ctx context.Context, leadID int64, skip, limit int) ([]*FollowUp, error)
	UpdateFollowUp(ctx context.Context, id int64, req *UpdateFollowUpRequest) (*FollowUp, error)
}

// ErrFollowUpNotFound is returned when a follow-up is not found
type ErrFollowUpNotFound struct {
	Message string
}

func (e *ErrFollowUpNotFound) Error() string {
	return e.Message
}
