package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

type AttachmentService struct {
	repo      domain.AttachmentRepository
	leadRepo  domain.LeadRepository
	uploadDir string
	logger    logger.Logger
}

func NewAttachmentService(repo domain.AttachmentRepository, leadRepo domain.LeadRepository, uploadDir string, logger logger.Logger) *AttachmentService {
	return &AttachmentService{
		repo:      repo,
		leadRepo:  leadRepo,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (s *AttachmentService) UploadAttachment(ctx context.Context, leadID int64, filename string, content []byte) (*domain.Attachment, error) {
	if err := domain.ValidateAttachmentFilename(filename); err != nil {
		return nil, err
	}

	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to check lead for attachment: %v", err))
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.logger.WithField("dir", s.uploadDir).Error(fmt.Sprintf("Failed to create upload directory: %v", err))
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	// Stored under a generated name so uploads can never collide or
	// escape the upload directory; the original name lives in the row.
	storedName := uuid.New().String() + filepath.Ext(filename)
	filePath := filepath.Join(s.uploadDir, storedName)

	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		s.logger.WithField("path", filePath).Error(fmt.Sprintf("Failed to write attachment file: %v", err))
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	attachment := &domain.Attachment{
		Filename: filename,
		FilePath: filePath,
		LeadID:   leadID,
	}

	created, err := s.repo.Create(ctx, attachment)
	if err != nil {
		if removeErr := os.Remove(filePath); removeErr != nil {
			s.logger.WithField("path", filePath).Error(fmt.Sprintf("Failed to remove orphaned attachment file: %v", removeErr))
		}
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to create attachment: %v", err))
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}
	return created, nil
}

func (s *AttachmentService) ListAttachments(ctx context.Context, leadID int64) ([]*domain.Attachment, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if _, ok := err.(*domain.ErrLeadNotFound); ok {
			return nil, err
		}
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to check lead for attachments: %v", err))
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments, err := s.repo.ListByLead(ctx, leadID)
	if err != nil {
		s.logger.WithField("lead_id", leadID).Error(fmt.Sprintf("Failed to list attachments: %v", err))
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

func (s *AttachmentService) DeleteAttachment(ctx context.Context, id int64) (*domain.Attachment, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if _, ok := err.(*domain.ErrAttachmentNotFound); ok {
			return nil, err
		}
		s.logger.WithField("attachment_id", id).Error(fmt.Sprintf("Failed to delete attachment: %v", err))
		return nil, fmt.Errorf("failed to delete attachment: %w", err)
	}

	// The row is gone, so a failed unlink only leaks disk space.
	if err := os.Remove(deleted.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.WithField("path", deleted.FilePath).Error(fmt.Sprintf("Failed to remove attachment file: %v", err))
	}

	return deleted, nil
}
