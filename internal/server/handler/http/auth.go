// Package http provides HTTP handlers for user authentication,
// including registration and password-grant token exchange.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ovoloshko/task-manager/internal/password"
	"github.com/ovoloshko/task-manager/internal/service"
	"github.com/ovoloshko/task-manager/internal/token"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user from the given credentials and returns
	// the new user's id.
	Register(ctx context.Context, username, password string) (string, error)
	// Login verifies the given credentials and issues an access token grant.
	Login(ctx context.Context, username, password string) (*token.Grant, error)
}

// AuthHandler handles HTTP requests for user registration and token exchange.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// Register handles user registration requests.
// It expects non-empty "username" and "password" query parameters.
// On success the new user's id is returned as JSON with 201 Created.
// A username that is already registered yields 409 Conflict.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	pass := r.URL.Query().Get("password")
	if username == "" || pass == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	id, err := h.AuthService.Register(r.Context(), username, pass)
	if errors.Is(err, service.ErrUsernameTaken) {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}
	if errors.Is(err, password.ErrPasswordTooLong) {
		http.Error(w, "password is too long", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Respond with the id the user was stored under
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"id": id,
	})
}

// Token handles password-grant token exchange requests.
// It expects a form-encoded body with grant_type=password and non-empty
// "username" and "password" fields. On success it responds with the access
// token envelope and headers disabling caching; credentials that do not
// match a stored user yield 401 Unauthorized.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("grant_type") != "password" {
		http.Error(w, "unsupported grant type", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	pass := r.PostForm.Get("password")
	if username == "" || pass == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	grant, err := h.AuthService.Login(r.Context(), username, pass)
	if errors.Is(err, service.ErrInvalidCredentials) {
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Token responses must not be cached
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	_ = json.NewEncoder(w).Encode(grant)
}
