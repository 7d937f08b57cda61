package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"campusnav/internal/domain/identity"
)

type fakeUserStore struct {
	user *identity.User
	hash string
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*identity.User, string, error) {
	if s.user == nil || s.user.Email != email {
		return nil, "", identity.ErrUserNotFound
	}
	return s.user, s.hash, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*identity.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, identity.ErrUserNotFound
	}
	return s.user, nil
}

func newTestAuth(t *testing.T) (*Service, *fakeUserStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &fakeUserStore{
		user: &identity.User{ID: "user-1", Email: "admin@campus.edu", CreatedAt: time.Now()},
		hash: string(hash),
	}

	tokens := NewTokenManager("test-secret")
	return NewService(store, tokens, time.Hour, zap.NewNop()), store
}

func TestSignInAndCurrentUser(t *testing.T) {
	svc, store := newTestAuth(t)

	token, user, err := svc.SignIn(context.Background(), "admin@campus.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, store.user.ID, user.ID)

	got, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin@campus.edu", got.Email)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, _, err := svc.SignIn(context.Background(), "admin@campus.edu", "wrong")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password.
	_, _, err = svc.SignIn(context.Background(), "nobody@campus.edu", "hunter22")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestSignOutRevokesToken(t *testing.T) {
	svc, _ := newTestAuth(t)

	token, _, err := svc.SignIn(context.Background(), "admin@campus.edu", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), token))

	_, err = svc.CurrentUser(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}
