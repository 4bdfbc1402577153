// Package password implements the salting and hashing engine used to store
// and verify user credentials.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SaltLength is the number of random bytes generated for each new credential.
const SaltLength = 16

// maxHashInput is bcrypt's input limit; password plus salt must stay within it.
const maxHashInput = 72

var (
	// ErrEntropyUnavailable is returned when the system randomness source cannot be read.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
	// ErrPasswordTooLong is returned when password plus salt would exceed the bcrypt input limit.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")
)

// Hasher derives salted adaptive hashes from passwords and verifies candidate
// passwords against them. Construct it with NewHasher.
type Hasher struct {
	// cost is the bcrypt cost factor applied to every hash.
	cost int
}

// NewHasher returns a Hasher using the bcrypt default cost.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// GenerateSalt produces a fresh cryptographically random salt of SaltLength bytes.
// A new salt must be generated for every registration and never reused.
func (h *Hasher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return salt, nil
}

// Hash computes the bcrypt hash of the password with the salt appended to it.
// The salt is concatenated onto the raw password bytes before hashing, on top
// of the salt bcrypt embeds in its own output format.
func (h *Hasher) Hash(password string, salt []byte) ([]byte, error) {
	if len(password)+len(salt) > maxHashInput {
		return nil, ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword(salted(password, salt), h.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether password and salt reproduce the expected hash.
// It fails closed: wrong passwords, foreign salts, and malformed stored
// hashes all yield false.
func (h *Hasher) Verify(password string, salt, expectedHash []byte) bool {
	return bcrypt.CompareHashAndPassword(expectedHash, salted(password, salt)) == nil
}

// salted returns the password bytes with the salt bytes appended.
func salted(password string, salt []byte) []byte {
	return append([]byte(password), salt...)
}
