// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenValidator checks the raw Authorization header of a request and
// returns the authenticated username carried in the bearer token.
type TokenValidator interface {
	ValidateHeader(header string) (string, error)
}

// BearerAuth returns a middleware that enforces bearer token authentication.
//
// It reads the Authorization header of the incoming request and validates the
// bearer token carried in it. Requests without a well-formed, correctly
// signed, unexpired token are rejected with 401 Unauthorized and the
// validation failure as the response body.
//
// On successful validation, the username from the token is stored in the
// request context, so it can be used downstream as the authenticated user.
func BearerAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := tokens.ValidateHeader(r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated username
// from the request context. Returns an empty string if not found.
func GetUserFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
