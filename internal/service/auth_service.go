package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/crypto"
	"github.com/catertrack/catertrack/pkg/logger"
	"github.com/catertrack/catertrack/pkg/ratelimiter"
)

// ErrTooManyLoginAttempts is returned when the login rate limit is hit
var ErrTooManyLoginAttempts = errors.New("too many login attempts, please try again in a few minutes")

type AuthService struct {
	userRepo        domain.UserRepository
	logger          logger.Logger
	privateKey      paseto.V4AsymmetricSecretKey
	publicKey       paseto.V4AsymmetricPublicKey
	tokenExpiration time.Duration
	loginLimiter    *ratelimiter.RateLimiter
}

type AuthServiceConfig struct {
	UserRepository  domain.UserRepository
	PrivateKey      []byte
	PublicKey       []byte
	TokenExpiration time.Duration
	LoginLimiter    *ratelimiter.RateLimiter
	Logger          logger.Logger
}

func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	privateKey, err := paseto.NewV4AsymmetricSecretKeyFromBytes(cfg.PrivateKey)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.WithField("error", err.Error()).Error("Error creating PASETO private key")
		}
		return nil, err
	}

	publicKey, err := paseto.NewV4AsymmetricPublicKeyFromBytes(cfg.PublicKey)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.WithField("error", err.Error()).Error("Error creating PASETO public key")
		}
		return nil, err
	}

	expiration := cfg.TokenExpiration
	if expiration == 0 {
		expiration = 24 * time.Hour
	}

	return &AuthService{
		userRepo:        cfg.UserRepository,
		logger:          cfg.Logger,
		privateKey:      privateKey,
		publicKey:       publicKey,
		tokenExpiration: expiration,
		loginLimiter:    cfg.LoginLimiter,
	}, nil
}

// Login verifies the credentials and returns a signed bearer token. Bad
// username and bad password produce the same error so callers cannot
// probe for registered usernames.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.loginLimiter != nil && !s.loginLimiter.Allow(req.Username) {
		s.logger.WithField("username", req.Username).Warn("Login rate limit exceeded")
		return nil, ErrTooManyLoginAttempts
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if _, ok := err.(*domain.ErrUserNotFound); ok {
			return nil, &domain.ErrInvalidCredentials{Message: "incorrect username or password"}
		}
		s.logger.WithField("username", req.Username).Error(fmt.Sprintf("Failed to get user for login: %v", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !crypto.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.WithField("username", req.Username).Warn("Login with wrong password")
		return nil, &domain.ErrInvalidCredentials{Message: "incorrect username or password"}
	}

	if s.loginLimiter != nil {
		s.loginLimiter.Reset(req.Username)
	}

	expiresAt := time.Now().Add(s.tokenExpiration)
	token := s.GenerateToken(user, expiresAt)

	return &domain.AuthResponse{
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateToken creates a signed PASETO token carrying the user id.
func (s *AuthService) GenerateToken(user *domain.User, expiresAt time.Time) string {
	token := paseto.NewToken()
	token.SetIssuedAt(time.Now())
	token.SetNotBefore(time.Now())
	token.SetExpiration(expiresAt)
	token.Set("user_id", fmt.Sprintf("%d", user.ID))

	return token.V4Sign(s.privateKey, nil)
}

// VerifyToken parses and verifies a bearer token and returns the
// authenticated user.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.NotExpired())

	verified, err := parser.ParseV4Public(s.publicKey, token, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	userIDStr, err := verified.GetString("user_id")
	if err != nil {
		return nil, fmt.Errorf("user id not found in token: %w", err)
	}

	var userID int64
	if _, err := fmt.Sscanf(userIDStr, "%d", &userID); err != nil {
		return nil, fmt.Errorf("malformed user id in token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
