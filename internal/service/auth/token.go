// internal/service/auth/token.go

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"campusnav/internal/domain/identity"
)

// TokenManager issues and validates HMAC-SHA256 signed bearer tokens.
// Token format: base64(userID|expiryUnix|signature). Revocation is an
// in-memory set; restarting the process invalidates nothing but also
// forgets revocations before their expiry, which is acceptable for the
// admin surface's session lifetime.
type TokenManager struct {
	secret []byte

	mu      sync.Mutex
	revoked map[string]time.Time // token -> expiry, pruned lazily
}

// NewTokenManager creates a new token manager
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret:  []byte(secret),
		revoked: make(map[string]time.Time),
	}
}

// GenerateToken generates a token for a user
func (m *TokenManager) GenerateToken(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID is required")
	}

	expiry := time.Now().Add(ttl).Unix()
	payload := fmt.Sprintf("%s|%d", userID, expiry)
	raw := payload + "|" + m.sign(payload)

	return base64.RawURLEncoding.EncodeToString([]byte(raw)), nil
}

// ValidateToken validates a token and returns the user ID
func (m *TokenManager) ValidateToken(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", identity.ErrInvalidToken
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return "", identity.ErrInvalidToken
	}

	userID, expiryStr, signature := parts[0], parts[1], parts[2]

	payload := userID + "|" + expiryStr
	if !hmac.Equal([]byte(signature), []byte(m.sign(payload))) {
		return "", identity.ErrInvalidToken
	}

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil || time.Now().Unix() >= expiry {
		return "", identity.ErrInvalidToken
	}

	m.mu.Lock()
	_, isRevoked := m.revoked[token]
	m.mu.Unlock()

	if isRevoked {
		return "", identity.ErrInvalidToken
	}

	return userID, nil
}

// RevokeToken revokes a token
func (m *TokenManager) RevokeToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for t, expiry := range m.revoked {
		if expiry.Before(now) {
			delete(m.revoked, t)
		}
	}

	// Expiry for the pruning pass only; validation already rejects
	// expired tokens before consulting the set.
	m.revoked[token] = now.Add(48 * time.Hour)

	return nil
}

func (m *TokenManager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
