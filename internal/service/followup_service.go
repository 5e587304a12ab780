package service

import (
	"context"
	"fmt"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type FollowUpService struct {
	repo     domain.FollowUpRepository
	leadRepo domain.LeadRepository
	logger   logger.Logger
}

func NewFollowUpService(repo domain.FollowUpRepository, leadRepo domain.LeadRepository, logger logger.Logger) *FollowUpService {
	return &FollowUpService{
		repo:     repo,
		leadRepo: leadRepo,
		logger:   logger,
	}
}

func (s *FollowUpService) CreateFollowUp(ctx context.Context, leadID int64, req *domain.CreateFollowUpRequest) (*domain.FollowUp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to check lead for followup: %v", err))
		return nil, fmt.Errorf("failed to create followup: %w", err)
	}

	followUp := &domain.FollowUp{
		LeadID:      leadID,
		ScheduledAt: req.ScheduledAt,
		Status:      domain.FollowUpStatusPending,
		Note:        req.Note,
		UserID:      userIDFromContext(ctx),
	}

	created, err := s.repo.Create(ctx, followUp)
	if err != nil {
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to create followup: %v", err))
		return nil, fmt.Errorf("failed to create followup: %w", err)
	}
	return created, nil
}

func (s *FollowUpService) ListFollowUps(ctx context.Context, leadID int64, skip, limit int) ([]*domain.FollowUp, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to check lead for followups: %v", err))
		return nil, fmt.Errorf("failed to list followups: %w", err)
	}

	skip, limit = normalizePagination(skip, limit)

	followUps, err := s.repo.ListByLead(ctx, leadID, skip, limit)
	if err != nil {
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to list followups: %v", err))
		return nil, fmt.Errorf("failed to list followups: %w", err)
	}
	return followUps, nil
}

func (s *FollowUpService) UpdateFollowUp(ctx context.Context, id int64, req *domain.UpdateFollowUpRequest) (*domain.FollowUp, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if _, ok := err.(*domain.ErrFollowUpNotFound); ok {
			return nil, err
		}
		s.logger.WithField("followup_id", id).Error(fmt.Sprintf("Failed to update followup: %v", err))
		return nil, fmt.Errorf("failed to update followup: %w", err)
	}
	return updated, nil
}
