package domain

import (
	"context"
	"fmt"
	"time"
)

// Key for storing the authenticated user in request context
type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	AuthUserKey contextKey = "auth_user"
)

const (
	RoleStaff = "Staff"
	RoleAdmin = "Admin"
)

// User represents a staff account that can sign in to the CRM
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest is the input shape for creating a user
type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
	Role     string  `json:"role,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("invalid create user request: username is required")
	}
	if len(r.Username) > 50 {
		return fmt.Errorf("invalid create user request: username length must be between 1 and 50")
	}
	if r.Password == "" {
		return fmt.Errorf("invalid create user request: password is required")
	}
	if len(r.Password) < 6 {
		return fmt.Errorf("invalid create user request: password must be at least 6 characters")
	}
	if r.Role == "" {
		r.Role = RoleStaff
	}
	return nil
}

// LoginRequest is the credential payload for auth.login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("invalid login request: username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("invalid login request: password is required")
	}
	return nil
}

// AuthResponse is returned by a successful login
type AuthResponse struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserRepository interface {
	// Create inserts the user and returns the stored row
	Create(ctx context.Context, user *User) (*User, error)

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List returns users in insertion order with offset/limit pagination
	List(ctx context.Context, skip, limit int) ([]*User, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	VerifyToken(ctx context.Context, token string) (*User, error)
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*User, error)
}

// ErrUserNotFound is returned when a user is not found
type ErrUserNotFound struct {
	Message string
}

func (e *ErrUserNotFound) Error() string {
	return e.Message
}

// ErrUserExists is returned when the username is already registered
type ErrUserExists struct {
	Message string
}

func (e *ErrUserExists) Error() string {
	return e.Message
}

// ErrInvalidCredentials is returned on a failed login
type ErrInvalidCredentials struct {
	Message string
}

func (e *ErrInvalidCredentials) Error() string {
	return e.Message
}
