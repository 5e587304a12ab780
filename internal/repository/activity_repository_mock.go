package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/catertrack/catertrack/internal/domain"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	args := m.Called(ctx, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListByLead(ctx context.Context, leadID int64, skip, limit int) ([]*domain.Activity, error) {
	args := m.Called(ctx, leadID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}
