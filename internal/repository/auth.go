// Package repository provides persistence implementations for authentication services.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ovoloshko/task-manager/internal/models"
)

var (
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound is returned when no user with the given username exists.
	ErrUserNotFound = errors.New("user not found")
)

// PostgresAuthRepository implements credential storage using a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateUser inserts a new user row and returns the id it was stored under.
// The ON CONFLICT DO NOTHING clause makes the insert lose silently when the
// username is already registered, which surfaces here as ErrUsernameTaken.
// Any other error encountered while executing the insertion is returned as is.
func (s *PostgresAuthRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	var id string
	err := s.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (id, username, salt, password_hash) VALUES ($1, $2, $3, $4) ON CONFLICT (username) DO NOTHING RETURNING id`,
		user.ID,
		user.Username,
		user.Salt,
		user.PasswordHash,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUsernameTaken
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetCredentials loads the stored credentials for the specified username.
// It returns ErrUserNotFound when no such user exists.
// If an error occurs during the query, it is returned.
func (s *PostgresAuthRepository) GetCredentials(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, username, salt, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.Salt, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
