package domain

import (
	"context"
	"fmt"
	"time"
)

// Activity is an immutable log entry attached to a lead (call, note,
// comment). Activities are only created and listed, never updated.
type Activity struct {
	ID        int64     `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	Content   *string   `json:"content,omitempty" db:"content"`
	LeadID    int64     `json:"lead_id" db:"lead_id"`
	UserID    *int64    `json:"user_id,omitempty" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateActivityRequest is the input shape for logging an activity on a lead
type CreateActivityRequest struct {
	Type    string  `json:"type"`
	Content *string `json:"content,omitempty"`
}

func (r *CreateActivityRequest) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("invalid create activity request: type is required")
	}
	if len(r.Type) > 50 {
		return fmt.Errorf("invalid create activity request: type length must be between 1 and 50")
	}
	return nil
}

type ActivityRepository interface {
	// Create inserts the activity and returns the stored row
	Create(ctx context.Context, activity *Activity) (*Activity, error)

	// ListByLead returns the lead's activities in insertion order
	ListByLead(ctx context.Context, leadID int64, skip, limit int) ([]*Activity, error)
}

type ActivityServiceInterface interface {
	CreateActivity(ctx context.Context, leadID int64, req *CreateActivityRequest) (*Activity, error)
	ListActivities(ctx context.Context, leadID int64, skip, limit int) ([]*Activity, error)
}
