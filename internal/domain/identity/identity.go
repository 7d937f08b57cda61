// internal/domain/identity/identity.go

package identity

import (
	"context"
	"errors"
	"time"
)

// User represents an admin user of the system.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines persistence for users.
type Store interface {
	// GetByEmail returns a user and their password hash.
	GetByEmail(ctx context.Context, email string) (*User, string, error)

	// GetByID returns a user by ID.
	GetByID(ctx context.Context, id string) (*User, error)
}

// TokenManager handles authentication tokens.
type TokenManager interface {
	// GenerateToken generates a token for a user.
	GenerateToken(userID string, ttl time.Duration) (string, error)

	// ValidateToken validates a token and returns the user ID.
	ValidateToken(token string) (string, error)

	// RevokeToken revokes a token.
	RevokeToken(token string) error
}

// Service defines the authentication operations for the admin surface.
type Service interface {
	// SignIn verifies credentials and returns a bearer token.
	SignIn(ctx context.Context, email, password string) (string, *User, error)

	// SignOut revokes the given token.
	SignOut(ctx context.Context, token string) error

	// CurrentUser resolves a token to its user.
	CurrentUser(ctx context.Context, token string) (*User, error)
}

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)
