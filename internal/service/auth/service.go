// internal/service/auth/service.go

package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"campusnav/internal/domain/identity"
)

// Service implements admin authentication against the user store.
type Service struct {
	users  identity.Store
	tokens identity.TokenManager
	expiry time.Duration
	logger *zap.Logger
}

// NewService creates a new auth service
func NewService(users identity.Store, tokens identity.TokenManager, expiry time.Duration, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		expiry: expiry,
		logger: logger,
	}
}

// SignIn verifies credentials and returns a bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *identity.User, error) {
	user, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return "", nil, identity.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, identity.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, s.expiry)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("admin signed in", zap.String("user_id", user.ID))

	return token, user, nil
}

// SignOut revokes the given token
func (s *Service) SignOut(_ context.Context, token string) error {
	return s.tokens.RevokeToken(token)
}

// CurrentUser resolves a token to its user
func (s *Service) CurrentUser(ctx context.Context, token string) (*identity.User, error) {
	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}
