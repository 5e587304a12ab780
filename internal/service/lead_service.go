package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type LeadService struct {
	repo      domain.LeadRepository
	auditRepo domain.AuditLogRepository
	logger    logger.Logger
}

func NewLeadService(repo domain.LeadRepository, auditRepo domain.AuditLogRepository, logger logger.Logger) *LeadService {
	return &LeadService{
		repo:      repo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *LeadService) CreateLead(ctx context.Context, req *domain.CreateLeadRequest) (*domain.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead := &domain.Lead{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		EventType:   req.EventType,
		GuestsCount: req.GuestsCount,
		EventDate:   req.EventDate,
		Venue:       req.Venue,
		Notes:       req.Notes,
		CreatedBy:   userIDFromContext(ctx),
	}
	if req.Stage != nil {
		lead.Stage = *req.Stage
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		if _, ok := err.(*domain.ErrPhoneExists); ok {
			return nil, err
		}
		s.logger.WithField("phone", req.Phone).Error(fmt.Sprintf("Failed to create lead: %v", err))
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.audit(ctx, domain.AuditActionLeadCreated, map[string]interface{}{
		"lead_id": created.ID,
		"name":    created.Name,
		"phone":   created.Phone,
	})

	return created, nil
}

func (s *LeadService) GetLeadByID(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", id).Error(fmt.Sprintf("Failed to get lead: %v", err))
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

func (s *LeadService) ListLeads(ctx context.Context, skip, limit int) ([]*domain.Lead, error) {
	skip, limit = normalizePagination(skip, limit)

	leads, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list leads: %v", err))
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

func (s *LeadService) UpdateLead(ctx context.Context, id int64, req *domain.UpdateLeadRequest) (*domain.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// An empty patch is a no-op read, not an error
	if !req.HasChanges() {
		return s.GetLeadByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		switch err.(type) {
		case *domain.ErrLeadNotFound, *domain.ErrPhoneExists:
			return nil, err
		}
		s.logger.WithField("lead_id", id).Error(fmt.Sprintf("Failed to update lead: %v", err))
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	details := map[string]interface{}{"lead_id": id}
	if req.Stage.Set {
		details["stage"] = req.Stage.Value
	}
	s.audit(ctx, domain.AuditActionLeadUpdated, details)

	return updated, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, id int64) (*domain.Lead, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", id).Error(fmt.Sprintf("Failed to delete lead: %v", err))
		return nil, fmt.Errorf("failed to delete lead: %w", err)
	}

	s.audit(ctx, domain.AuditActionLeadDeleted, map[string]interface{}{
		"lead_id": deleted.ID,
		"name":    deleted.Name,
		"phone":   deleted.Phone,
	})

	return deleted, nil
}

// audit appends an audit entry. Failures are logged and swallowed: the
// mutation already committed and must not be reported as failed.
func (s *LeadService) audit(ctx context.Context, action string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		s.logger.WithField("action", action).Error(fmt.Sprintf("Failed to marshal audit details: %v", err))
		return
	}

	entry := &domain.AuditLog{
		UserID:  userIDFromContext(ctx),
		Action:  action,
		Details: payload,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.WithField("action", action).Error(fmt.Sprintf("Failed to write audit log: %v", err))
	}
}

// userIDFromContext returns the authenticated user's id, nil for
// unauthenticated flows such as bootstrap.
func userIDFromContext(ctx context.Context) *int64 {
	user, ok := ctx.Value(domain.AuthUserKey).(*domain.User)
	if !ok || user == nil {
		return nil
	}
	id := user.ID
	return &id
}
