package http

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/catertrack/catertrack/internal/domain"
)

// passthrough stands in for the auth middleware in handler tests.
func passthrough(next http.HandlerFunc) http.HandlerFunc {
	return next
}

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) CreateLead(ctx context.Context, req *domain.CreateLeadRequest) (*domain.Lead, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) GetLeadByID(ctx context.Context, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) ListLeads(ctx context.Context, skip, limit int) ([]*domain.Lead, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lead), args.Error(1)
}

func (m *MockLeadService) UpdateLead(ctx context.Context, id int64, req *domain.UpdateLeadRequest) (*domain.Lead, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadService) DeleteLead(ctx context.Context, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) CreateActivity(ctx context.Context, leadID int64, req *domain.CreateActivityRequest) (*domain.Activity, error) {
	args := m.Called(ctx, leadID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityService) ListActivities(ctx context.Context, leadID int64, skip, limit int) ([]*domain.Activity, error) {
	args := m.Called(ctx, leadID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

type MockFollowUpService struct {
	mock.Mock
}

func (m *MockFollowUpService) CreateFollowUp(ctx context.Context, leadID int64, req *domain.CreateFollowUpRequest) (*domain.FollowUp, error) {
	args := m.Called(ctx, leadID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FollowUp), args.Error(1)
}

func (m *MockFollowUpService) ListFollowUps(ctx context.Context, leadID int64, skip, limit int) ([]*domain.FollowUp, error) {
	args := m.Called(ctx, leadID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FollowUp), args.Error(1)
}

func (m *MockFollowUpService) UpdateFollowUp(ctx context.Context, id int64, req *domain.UpdateFollowUpRequest) (*domain.FollowUp, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FollowUp), args.Error(1)
}

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) UploadAttachment(ctx context.Context, leadID int64, filename string, content []byte) (*domain.Attachment, error) {
	args := m.Called(ctx, leadID, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentService) ListAttachments(ctx context.Context, leadID int64) ([]*domain.Attachment, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentService) DeleteAttachment(ctx context.Context, id int64) (*domain.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

type MockAuditLogService struct {
	mock.Mock
}

func (m *MockAuditLogService) ListAuditLogs(ctx context.Context, skip, limit int) ([]*domain.AuditLog, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditLog), args.Error(1)
}
