package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

// Known pipeline stages. The storage layer does not enforce this set;
// dashboards use it for display and filtering.
const (
	StageNew          = "New"
	StageContacted    = "Contacted"
	StageProposalSent = "Proposal Sent"
	StageNegotiation  = "Negotiation"
	StageClosedWon    = "Closed-Won"
	StageClosedLost   = "Closed-Lost"
)

// Lead represents a prospective customer moving through the sales pipeline
type Lead struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Phone       string     `json:"phone" db:"phone"`
	Email       *string    `json:"email,omitempty" db:"email"`
	EventType   *string    `json:"event_type,omitempty" db:"event_type"`
	GuestsCount *int       `json:"guests_count,omitempty" db:"guests_count"`
	EventDate   *time.Time `json:"event_date,omitempty" db:"event_date"`
	Venue       *string    `json:"venue,omitempty" db:"venue"`
	Notes       *string    `json:"notes,omitempty" db:"notes"`
	Stage       string     `json:"stage" db:"stage"`
	CreatedBy   *int64     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateLeadRequest is the input shape for creating a lead
type CreateLeadRequest struct {
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       *string    `json:"email,omitempty"`
	EventType   *string    `json:"event_type,omitempty"`
	GuestsCount *int       `json:"guests_count,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Stage       *string    `json:"stage,omitempty"`
}

func (r *CreateLeadRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("invalid create lead request: name is required")
	}
	if len(r.Name) > 100 {
		return fmt.Errorf("invalid create lead request: name length must be between 1 and 100")
	}
	if r.Phone == "" {
		return fmt.Errorf("invalid create lead request: phone is required")
	}
	if len(r.Phone) > 20 {
		return fmt.Errorf("invalid create lead request: phone length must be between 1 and 20")
	}
	if r.Email != nil && *r.Email != "" && !govalidator.IsEmail(*r.Email) {
		return fmt.Errorf("invalid create lead request: email is malformed")
	}
	if r.GuestsCount != nil && *r.GuestsCount < 0 {
		return fmt.Errorf("invalid create lead request: guests_count must not be negative")
	}
	return nil
}

// UpdateLeadRequest is the partial-update shape for a lead. Every field is
// optional; absent fields are preserved, explicit null clears a nullable
// field, and a present value overwrites.
type UpdateLeadRequest struct {
	Name        Optional[string]    `json:"name"`
	Phone       Optional[string]    `json:"phone"`
	Email       Optional[string]    `json:"email"`
	EventType   Optional[string]    `json:"event_type"`
	GuestsCount Optional[int]       `json:"guests_count"`
	EventDate   Optional[time.Time] `json:"event_date"`
	Venue       Optional[string]    `json:"venue"`
	Notes       Optional[string]    `json:"notes"`
	Stage       Optional[string]    `json:"stage"`
}

func (r *UpdateLeadRequest) Validate() error {
	if r.Name.Set && (!r.Name.Valid || r.Name.Value == "") {
		return fmt.Errorf("invalid update lead request: name cannot be cleared")
	}
	if r.Name.Set && len(r.Name.Value) > 100 {
		return fmt.Errorf("invalid update lead request: name length must be between 1 and 100")
	}
	if r.Phone.Set && (!r.Phone.Valid || r.Phone.Value == "") {
		return fmt.Errorf("invalid update lead request: phone cannot be cleared")
	}
	if r.Phone.Set && len(r.Phone.Value) > 20 {
		return fmt.Errorf("invalid update lead request: phone length must be between 1 and 20")
	}
	if r.Email.Set && r.Email.Valid && r.Email.Value != "" && !govalidator.IsEmail(r.Email.Value) {
		return fmt.Errorf("invalid update lead request: email is malformed")
	}
	if r.GuestsCount.Set && r.GuestsCount.Valid && r.GuestsCount.Value < 0 {
		return fmt.Errorf("invalid update lead request: guests_count must not be negative")
	}
	if r.Stage.Set && !r.Stage.Valid {
		return fmt.Errorf("invalid update lead request: stage cannot be cleared")
	}
	return nil
}

// HasChanges reports whether the request carries at least one field.
func (r *UpdateLeadRequest) HasChanges() bool {
	return r.Name.Set || r.Phone.Set || r.Email.Set || r.EventType.Set ||
		r.GuestsCount.Set || r.EventDate.Set || r.Venue.Set || r.Notes.Set ||
		r.Stage.Set
}

type LeadRepository interface {
	// Create inserts the lead and returns the stored row with generated
	// id and timestamps
	Create(ctx context.Context, lead *Lead) (*Lead, error)

	// GetByID retrieves a lead by id
	GetByID(ctx context.Context, id int64) (*Lead, error)

	// List returns leads in insertion order with offset/limit pagination
	List(ctx context.Context, skip, limit int) ([]*Lead, error)

	// Update applies the partial update and returns the stored row
	Update(ctx context.Context, id int64, req *UpdateLeadRequest) (*Lead, error)

	// Delete removes the lead, cascading to its activities, follow-ups and
	// attachments, and returns the pre-deletion row
	Delete(ctx context.Context, id int64) (*Lead, error)
}

type LeadServiceInterface interface {
	CreateLead(ctx context.Context, req *CreateLeadRequest) (*Lead, error)
	GetLeadByID(ctx context.Context, id int64) (*Lead, error)
	ListLeads(ctx context.Context, skip, limit int) ([]*Lead, error)
	UpdateLead(ctx context.Context, id int64, req *UpdateLeadRequest) (*Lead, error)
	DeleteLead(ctx context.Context, id int64) (*Lead, error)
}

// ErrLeadNotFound is returned when a lead is not found
type ErrLeadNotFound struct {
	Message string
}

func (e *ErrLeadNotFound) Error() string {
	return e.Message
}

// ErrPhoneExists is returned when another lead already has the phone number
type ErrPhoneExists struct {
	Message string
}

func (e *ErrPhoneExists) Error() string {
	return e.Message
}
