// Package http provides HTTP routing and middleware configuration
// for the task-manager service.
package http

import (
	"net/http"

	"github.com/ovoloshko/task-manager/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the task-manager authentication API. It applies request logging,
// enforces the form content type on the token endpoint, guards the
// protected group with bearer token authentication, and mounts the
// registration, token exchange, and user endpoints under /api.
//
// Parameters:
//
//	authHandler  - handler for registration and token exchange endpoints
//	userHandler  - handler for the authenticated user endpoint
//	tokens       - validator for bearer tokens on protected routes
//	logger       - structured logger for request logging middleware
//
// Routes:
//
//	GET  /ping           → liveness probe
//	POST /api/register   → authHandler.Register
//	POST /api/token      → authHandler.Token
//	GET  /api/user       → userHandler.CurrentUser (protected by BearerAuth)
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs incoming requests
//  2. AllowContentType("application/x-www-form-urlencoded") — token endpoint only
//  3. BearerAuth(tokens)         — protected group only
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	tokens middleware.TokenValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.With(chiMiddleware.AllowContentType("application/x-www-form-urlencoded")).
			Post("/token", authHandler.Token)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(tokens))
			r.Get("/user", userHandler.CurrentUser)
		})
	})

	return r
}
