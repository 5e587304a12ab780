package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/internal/repository"
	"github.com/catertrack/catertrack/pkg/logger"
)

func authedContext(userID int64) context.Context {
	user := &domain.User{ID: userID, Username: "maria", Role: domain.RoleStaff}
	return context.WithValue(context.Background(), domain.AuthUserKey, user)
}

func sampleStoredLead() *domain.Lead {
	return &domain.Lead{
		ID:        11,
		Name:      "Ana Silva",
		Phone:     "+351900000001",
		Stage:     domain.StageNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestLeadServiceCreateLead(t *testing.T) {
	t.Run("creates and records an audit entry with the acting user", func(t *testing.T) {
		ctx := authedContext(42)

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Lead) bool {
			return l.Name == "Ana Silva" && l.CreatedBy != nil && *l.CreatedBy == 42
		})).Return(sampleStoredLead(), nil)

		mockAudit := new(repository.MockAuditLogRepository)
		mockAudit.On("Create", ctx, mock.MatchedBy(func(e *domain.AuditLog) bool {
			if e.Action != domain.AuditActionLeadCreated || e.UserID == nil || *e.UserID != 42 {
				return false
			}
			var details map[string]interface{}
			if err := json.Unmarshal(e.Details, &details); err != nil {
				return false
			}
			return details["lead_id"] == float64(11)
		})).Return(nil)

		service := NewLeadService(mockRepo, mockAudit, logger.NewLoggerWithLevel("disabled"))

		created, err := service.CreateLead(ctx, &domain.CreateLeadRequest{
			Name:  "Ana Silva",
			Phone: "+351900000001",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, domain.StageNew, created.Stage)
		mockRepo.AssertExpectations(t)
		mockAudit.AssertExpectations(t)
	})

	t.Run("duplicate phone passes through without an audit entry", func(t *testing.T) {
		ctx := authedContext(42)

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Create", ctx, mock.Anything).
			Return(nil, &domain.ErrPhoneExists{Message: "phone number already registered"})

		mockAudit := new(repository.MockAuditLogRepository)

		service := NewLeadService(mockRepo, mockAudit, logger.NewLoggerWithLevel("disabled"))

		_, err := service.CreateLead(ctx, &domain.CreateLeadRequest{
			Name:  "Ana Silva",
			Phone: "+351900000001",
		})
		assert.IsType(t, &domain.ErrPhoneExists{}, err)
		mockAudit.AssertNotCalled(t, "Create")
	})

	t.Run("audit failure does not fail the create", func(t *testing.T) {
		ctx := authedContext(42)

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Create", ctx, mock.Anything).Return(sampleStoredLead(), nil)

		mockAudit := new(repository.MockAuditLogRepository)
		mockAudit.On("Create", ctx, mock.Anything).Return(errors.New("audit table gone"))

		service := NewLeadService(mockRepo, mockAudit, logger.NewLoggerWithLevel("disabled"))

		created, err := service.CreateLead(ctx, &domain.CreateLeadRequest{
			Name:  "Ana Silva",
			Phone: "+351900000001",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
	})

	t.Run("unauthenticated context leaves created_by and audit user nil", func(t *testing.T) {
		ctx := context.Background()

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Lead) bool {
			return l.CreatedBy == nil
		})).Return(sampleStoredLead(), nil)

		mockAudit := new(repository.MockAuditLogRepository)
		mockAudit.On("Create", ctx, mock.MatchedBy(func(e *domain.AuditLog) bool {
			return e.UserID == nil
		})).Return(nil)

		service := NewLeadService(mockRepo, mockAudit, logger.NewLoggerWithLevel("disabled"))

		_, err := service.CreateLead(ctx, &domain.CreateLeadRequest{
			Name:  "Ana Silva",
			Phone: "+351900000001",
		})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestLeadServiceUpdateLead(t *testing.T) {
	t.Run("updates and records an audit entry", func(t *testing.T) {
		ctx := authedContext(42)
		req := &domain.UpdateLeadRequest{Stage: domain.NewOptional(domain.StageContacted)}

		updated := sampleStoredLead()
		updated.Stage = domain.StageContacted

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Update", ctx, int64(11), req).Return(updated, nil)

		mockAudit := new(repository.MockAuditLogRepository)
		mockAudit.On("Create", ctx, mock.MatchedBy(func(e *domain.AuditLog) bool {
			return e.Action == domain.AuditActionLeadUpdated
		})).Return(nil)

		service := NewLeadService(mockRepo, mockAudit, logger.NewLoggerWithLevel("disabled"))

		lead, err := service.UpdateLead(ctx, 11, req)
		require.NoError(t, err)
		assert.Equal(t, domain.StageContacted, lead.Stage)
		mockAudit.AssertExpectations(t)
	})

	t.Run("empty patch is a plain read", func(t *testing.T) {
		ctx := authedContext(42)

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("GetByID", ctx, int64(11)).Return(sampleStoredLead(), nil)

		mockAudit := new(repository.MockAuditLogRepository)

		service := NewLeadService(mockRepo, mockAudit, logger.NewLoggerWithLevel("disabled"))

		lead, err := service.UpdateLead(ctx, 11, &domain.UpdateLeadRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(11), lead.ID)
		mockRepo.AssertNotCalled(t, "Update")
		mockAudit.AssertNotCalled(t, "Create")
	})

	t.Run("not found passes through", func(t *testing.T) {
		ctx := authedContext(42)
		req := &domain.UpdateLeadRequest{Stage: domain.NewOptional(domain.StageContacted)}

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Update", ctx, int64(99), req).
			Return(nil, &domain.ErrLeadNotFound{Message: "lead not found"})

		service := NewLeadService(mockRepo, new(repository.MockAuditLogRepository), logger.NewLoggerWithLevel("disabled"))

		_, err := service.UpdateLead(ctx, 99, req)
		assert.IsType(t, &domain.ErrLeadNotFound{}, err)
	})
}

func TestLeadServiceDeleteLead(t *testing.T) {
	t.Run("deletes and records an audit entry", func(t *testing.T) {
		ctx := authedContext(42)

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Delete", ctx, int64(11)).Return(sampleStoredLead(), nil)

		mockAudit := new(repository.MockAuditLogRepository)
		mockAudit.On("Create", ctx, mock.MatchedBy(func(e *domain.AuditLog) bool {
			return e.Action == domain.AuditActionLeadDeleted
		})).Return(nil)

		service := NewLeadService(mockRepo, mockAudit, logger.NewLoggerWithLevel("disabled"))

		deleted, err := service.DeleteLead(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, "Ana Silva", deleted.Name)
		mockAudit.AssertExpectations(t)
	})

	t.Run("not found passes through", func(t *testing.T) {
		ctx := authedContext(42)

		mockRepo := new(repository.MockLeadRepository)
		mockRepo.On("Delete", ctx, int64(99)).
			Return(nil, &domain.ErrLeadNotFound{Message: "lead not found"})

		service := NewLeadService(mockRepo, new(repository.MockAuditLogRepository), logger.NewLoggerWithLevel("disabled"))

		_, err := service.DeleteLead(ctx, 99)
		assert.IsType(t, &domain.ErrLeadNotFound{}, err)
	})
}

func TestLeadServiceListLeads(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(repository.MockLeadRepository)
	mockRepo.On("List", ctx, 0, 100).Return([]*domain.Lead{sampleStoredLead()}, nil)

	service := NewLeadService(mockRepo, new(repository.MockAuditLogRepository), logger.NewLoggerWithLevel("disabled"))

	leads, err := service.ListLeads(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}
