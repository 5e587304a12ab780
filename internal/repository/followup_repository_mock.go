package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/catertrack/catertrack/internal/domain"
)

type MockFollowUpRepository struct {
	mock.Mock
}

func (m *MockFollowUpRepository) Create(ctx context.Context, followUp *domain.FollowUp) (*domain.FollowUp, error) {
	args := m.Called(ctx, followUp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FollowUp), args.Error(1)
}

func (m *MockFollowUpRepository) GetByID(ctx context.Context, id int64) (*domain.FollowUp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FollowUp), args.Error(1)
}

func (m *MockFollowUpRepository) ListByLead(ctx context.Context, leadID int64, skip, limit int) ([]*domain.FollowUp, error) {
	args := m.Called(ctx, leadID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FollowUp), args.Error(1)
}

func (m *MockFollowUpRepository) Update(ctx context.Context, id int64, req *domain.UpdateFollowUpRequest) (*domain.FollowUp, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FollowUp), args.Error(1)
}
