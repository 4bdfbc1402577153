package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenNotSet is returned when the Authorization header is absent or
	// does not carry a bearer token.
	ErrTokenNotSet = errors.New("token not set")
	// ErrInvalidToken is returned when a verified token does not carry the
	// expected claims.
	ErrInvalidToken = errors.New("invalid token")
)

// Validator parses and cryptographically verifies bearer tokens. Validation
// is stateless and side-effect free: validity is recomputed from the
// signature and the embedded expiry on every call.
type Validator struct {
	// secret is the HMAC key shared with the Issuer.
	secret []byte
	// now supplies the current time for expiry checks; replaced in tests.
	now func() time.Time
}

// NewValidator constructs a Validator sharing the issuer's signing secret.
func NewValidator(secret string) (*Validator, error) {
	if secret == "" {
		return nil, ErrSecretNotSet
	}
	return &Validator{secret: []byte(secret), now: time.Now}, nil
}

// ValidateHeader checks a raw Authorization header value and returns the
// authenticated username.
//
// The header must consist of exactly the literal scheme "Bearer" followed by
// one token. The token must be signed with HMAC-SHA-256 using the shared
// secret and must not be expired, and its username claim must be non-empty.
// Every failure is reported as an error; the caller decides the transport
// status.
func (v *Validator) ValidateHeader(header string) (string, error) {
	if header == "" {
		return "", ErrTokenNotSet
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != tokenType {
		return "", ErrTokenNotSet
	}
	return v.Validate(fields[1])
}

// Validate verifies a bare token string and returns its username claim.
func (v *Validator) Validate(tokenString string) (string, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return v.now() }),
	)

	parsed, err := parser.ParseWithClaims(tokenString, claims, v.keyFunc)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

// keyFunc hands the shared secret to the parser after confirming the token
// declares an HMAC signing method. Tokens asserting "none" or an asymmetric
// algorithm never reach signature verification.
func (v *Validator) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return v.secret, nil
}
