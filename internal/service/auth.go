// Package service provides authentication business logic,
// delegating persistence to an AuthRepository.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ovoloshko/task-manager/internal/models"
	"github.com/ovoloshko/task-manager/internal/repository"
	"github.com/ovoloshko/task-manager/internal/token"
)

var (
	// ErrUsernameTaken is returned by Register when the username is already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned by Login when the username or password
	// does not match a stored user. Callers cannot tell an unknown username
	// apart from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// CreateUser stores a new user record and returns the id it was stored under.
	// Returns repository.ErrUsernameTaken when the username is already registered.
	CreateUser(ctx context.Context, user *models.User) (string, error)
	// GetCredentials loads the stored credentials for the given username.
	// Returns repository.ErrUserNotFound when no such user exists.
	GetCredentials(ctx context.Context, username string) (*models.User, error)
}

// PasswordHasher produces and verifies salted password hashes.
type PasswordHasher interface {
	// GenerateSalt produces a fresh random salt.
	GenerateSalt() ([]byte, error)
	// Hash computes the salted hash of a password.
	Hash(password string, salt []byte) ([]byte, error)
	// Verify reports whether password and salt reproduce the expected hash.
	Verify(password string, salt, expectedHash []byte) bool
}

// TokenIssuer signs access token grants for authenticated users.
type TokenIssuer interface {
	// Issue creates a signed grant for the given username.
	Issue(username string) (*token.Grant, error)
}

// Service implements authentication operations by delegating
// to an AuthRepository, a PasswordHasher and a TokenIssuer.
type Service struct {
	// repo performs the data-layer operations.
	repo AuthRepository
	// hasher derives and checks the salted password hashes.
	hasher PasswordHasher
	// tokens issues access token grants.
	tokens TokenIssuer
}

// NewAuthService constructs a new Service using the provided dependencies.
func NewAuthService(repo AuthRepository, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates a new user with a freshly salted password hash and returns
// the new user's id. It returns ErrUsernameTaken when the username is already
// registered, and password.ErrPasswordTooLong when the password cannot be
// hashed because of its length.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash, err := s.hasher.Hash(password, salt)
	if err != nil {
		return "", err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Salt:         salt,
		PasswordHash: hash,
	}

	id, err := s.repo.CreateUser(ctx, user)
	if errors.Is(err, repository.ErrUsernameTaken) {
		return "", ErrUsernameTaken
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// Login verifies the given credentials and issues an access token grant.
// It returns ErrInvalidCredentials when the username is unknown or the
// password does not match.
func (s *Service) Login(ctx context.Context, username, password string) (*token.Grant, error) {
	user, err := s.repo.GetCredentials(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	if !s.hasher.Verify(password, user.Salt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	grant, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return grant, nil
}
