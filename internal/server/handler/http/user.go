// Package http provides HTTP handlers for the authenticated user resource.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/ovoloshko/task-manager/internal/middleware"
)

// UserHandler handles HTTP requests about the authenticated user.
type UserHandler struct{}

// CurrentUser handles GET /api/user requests.
// It reads the authenticated username placed in the request context by the
// bearer auth middleware and writes it back as JSON.
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUserFromContext(r.Context())
	if username == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"username": username,
	})
}
