package service

import (
	"context"
	"fmt"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type ActivityService struct {
	repo     domain.ActivityRepository
	leadRepo domain.LeadRepository
	logger   logger.Logger
}

func NewActivityService(repo domain.ActivityRepository, leadRepo domain.LeadRepository, logger logger.Logger) *ActivityService {
	return &ActivityService{
		repo:     repo,
		leadRepo: leadRepo,
		logger:   logger,
	}
}

func (s *ActivityService) CreateActivity(ctx context.Context, leadID int64, req *domain.CreateActivityRequest) (*domain.Activity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to check lead for activity: %v", err))
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	activity := &domain.Activity{
		LeadID:  leadID,
		Type:    req.Type,
		Content: req.Content,
		UserID:  userIDFromContext(ctx),
	}

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to create activity: %v", err))
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return created, nil
}

func (s *ActivityService) ListActivities(ctx context.Context, leadID int64, skip, limit int) ([]*domain.Activity, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to check lead for activities: %v", err))
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	skip, limit = normalizePagination(skip, limit)

	activities, err := s.repo.ListByLead(ctx, leadID, skip, limit)
	if err != nil {
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to list activities: %v", err))
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
