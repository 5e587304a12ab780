package service

import (
	"context"
	"fmt"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type AuditLogService struct {
	repo   domain.AuditLogRepository
	logger logger.Logger
}

func NewAuditLogService(repo domain.AuditLogRepository, logger logger.Logger) *AuditLogService {
	return &AuditLogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuditLogService) ListAuditLogs(ctx context.Context, skip, limit int) ([]*domain.AuditLog, error) {
	skip, limit = normalizePagination(skip, limit)

	logs, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list audit logs: %v", err))
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
