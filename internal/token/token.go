// Package token issues and validates the signed bearer tokens that
// authenticate API requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenType is the scheme name carried in the grant envelope and expected in
// Authorization headers.
const tokenType = "Bearer"

// Claims is the typed payload embedded in every issued token.
type Claims struct {
	// Username identifies the authenticated user.
	Username string `json:"username"`
	// Authorized marks the token as the result of a completed credential check.
	Authorized bool `json:"authorized"`
	jwt.RegisteredClaims
}

// Grant is the response envelope returned by the token endpoint.
type Grant struct {
	// AccessToken is the signed bearer token.
	AccessToken string `json:"access_token"`
	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`
}

var (
	// ErrSecretNotSet is returned when an Issuer or Validator is constructed
	// without a signing secret.
	ErrSecretNotSet = errors.New("signing secret is not set")
	// ErrLifetimeInvalid is returned when the configured token lifetime is not
	// a positive number of hours.
	ErrLifetimeInvalid = errors.New("token lifetime must be a positive number of hours")
	// ErrEmptySubject is returned when a token is requested for an empty username.
	ErrEmptySubject = errors.New("empty token subject")
)

// Issuer creates signed, time-bounded tokens for authenticated users.
// It performs pure computation and holds no mutable state, so a single
// Issuer may be shared across concurrent requests.
type Issuer struct {
	// secret is the process-wide HMAC signing key.
	secret []byte
	// lifetime is the validity window of every issued token.
	lifetime time.Duration
	// now supplies the current time; replaced in tests.
	now func() time.Time
}

// NewIssuer constructs an Issuer from the signing secret and the token
// lifetime in whole hours. Both values come from configuration read at
// startup; an empty secret or a non-positive lifetime is rejected.
func NewIssuer(secret string, lifetimeHours int) (*Issuer, error) {
	if secret == "" {
		return nil, ErrSecretNotSet
	}
	if lifetimeHours <= 0 {
		return nil, ErrLifetimeInvalid
	}
	return &Issuer{
		secret:   []byte(secret),
		lifetime: time.Duration(lifetimeHours) * time.Hour,
		now:      time.Now,
	}, nil
}

// Issue signs a token for username and wraps it in the response envelope.
// Claims carry the username, an authorized flag, the issue time, and an
// expiry of issue time plus the configured lifetime, signed with HMAC-SHA-256.
func (i *Issuer) Issue(username string) (*Grant, error) {
	if username == "" {
		return nil, ErrEmptySubject
	}

	now := i.now()
	claims := Claims{
		Username:   username,
		Authorized: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Grant{
		AccessToken: signed,
		TokenType:   tokenType,
		ExpiresIn:   int64(i.lifetime.Seconds()),
	}, nil
}
