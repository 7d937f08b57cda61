// internal/server/handlers/auth.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"campusnav/internal/domain/identity"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service identity.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service identity.Service) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// Login verifies credentials and returns a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	token, user, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to sign in", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the caller's token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondWithError(w, http.StatusUnauthorized, "Missing bearer token", nil)
		return
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to sign out", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// RequireAuth gates a route subtree on a valid bearer token and puts
// the resolved user on the request context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		user, err := h.service.CurrentUser(r.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidToken) {
				respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			} else {
				respondWithError(w, http.StatusInternalServerError, "Failed to authenticate", err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user set by RequireAuth.
func UserFromContext(ctx context.Context) (*identity.User, bool) {
	user, ok := ctx.Value(userContextKey).(*identity.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	// WebSocket clients cannot set headers from the browser.
	return r.URL.Query().Get("token")
}
