package service

import (
	"context"
	"fmt"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/crypto"
	"github.com/catertrack/catertrack/pkg/logger"
)

type UserService struct {
	repo   domain.UserRepository
	logger logger.Logger
}

func NewUserService(repo domain.UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to hash password: %v", err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         req.Role,
	}

	// The unique index on username is the real guard; the repository maps
	// its violation to ErrUserExists.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if _, ok := err.(*domain.ErrUserExists); ok {
			return nil, err
		}
		s.logger.WithField("username", req.Username).Error(fmt.Sprintf("Failed to create user: %v", err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return nil, err
		}
		s.logger.WithField("user_id", id).Error(fmt.Sprintf("Failed to get user: %v", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	skip, limit = normalizePagination(skip, limit)

	users, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list users: %v", err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// normalizePagination clamps offset/limit to sane values. The default page
// size matches the original dashboard's expectations.
func normalizePagination(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return skip, limit
}
