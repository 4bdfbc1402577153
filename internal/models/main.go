// Package models defines the core data structures for users and their credentials.
package models

import "time"

// User represents an application user with stored credential material.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Username is the login name chosen by the user.
	Username string
	// Salt is the random byte sequence generated for the user at registration.
	Salt []byte
	// PasswordHash is the adaptive hash computed over the password and salt.
	PasswordHash []byte
	// CreatedAt records when the user registered.
	CreatedAt time.Time
}
