package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/internal/repository"
	"github.com/catertrack/catertrack/pkg/logger"
)

func TestActivityServiceCreateActivity(t *testing.T) {
	t.Run("creates with the acting user", func(t *testing.T) {
		ctx := authedContext(42)
		content := "Called about the wedding menu"

		mockLeads := new(repository.MockLeadRepository)
		mockLeads.On("GetByID", ctx, int64(11)).Return(sampleStoredLead(), nil)

		mockRepo := new(repository.MockActivityRepository)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.LeadID == 11 && a.Type == "call" &&
				a.Content != nil && *a.Content == content &&
				a.UserID != nil && *a.UserID == 42
		})).Return(&domain.Activity{ID: 5, LeadID: 11, Type: "call"}, nil)

		service := NewActivityService(mockRepo, mockLeads, logger.NewLoggerWithLevel("disabled"))

		created, err := service.CreateActivity(ctx, 11, &domain.CreateActivityRequest{
			Type:    "call",
			Content: &content,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), created.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing lead rejected", func(t *testing.T) {
		ctx := authedContext(42)

		mockLeads := new(repository.MockLeadRepository)
		mockLeads.On("GetByID", ctx, int64(99)).
			Return(nil, &domain.ErrLeadNotFound{Message: "lead not found"})

		mockRepo := new(repository.MockActivityRepository)

		service := NewActivityService(mockRepo, mockLeads, logger.NewLoggerWithLevel("disabled"))

		_, err := service.CreateActivity(ctx, 99, &domain.CreateActivityRequest{Type: "call"})
		assert.IsType(t, &domain.ErrLeadNotFound{}, err)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("missing type rejected before any lookup", func(t *testing.T) {
		mockLeads := new(repository.MockLeadRepository)
		service := NewActivityService(new(repository.MockActivityRepository), mockLeads, logger.NewLoggerWithLevel("disabled"))

		_, err := service.CreateActivity(context.Background(), 11, &domain.CreateActivityRequest{})
		require.Error(t, err)
		mockLeads.AssertNotCalled(t, "GetByID")
	})
}

func TestActivityServiceListActivities(t *testing.T) {
	ctx := context.Background()

	t.Run("lists for an existing lead", func(t *testing.T) {
		mockLeads := new(repository.MockLeadRepository)
		mockLeads.On("GetByID", ctx, int64(11)).Return(sampleStoredLead(), nil)

		mockRepo := new(repository.MockActivityRepository)
		mockRepo.On("ListByLead", ctx, int64(11), 0, 100).
			Return([]*domain.Activity{{ID: 1, LeadID: 11, Type: "note"}}, nil)

		service := NewActivityService(mockRepo, mockLeads, logger.NewLoggerWithLevel("disabled"))

		activities, err := service.ListActivities(ctx, 11, 0, 0)
		require.NoError(t, err)
		assert.Len(t, activities, 1)
	})

	t.Run("missing lead rejected", func(t *testing.T) {
		mockLeads := new(repository.MockLeadRepository)
		mockLeads.On("GetByID", ctx, int64(99)).
			Return(nil, &domain.ErrLeadNotFound{Message: "lead not found"})

		service := NewActivityService(new(repository.MockActivityRepository), mockLeads, logger.NewLoggerWithLevel("disabled"))

		_, err := service.ListActivities(ctx, 99, 0, 0)
		assert.IsType(t, &domain.ErrLeadNotFound{}, err)
	})
}
