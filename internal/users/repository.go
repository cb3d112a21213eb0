// Package users implements the credential store: account persistence,
// password verification, and email existence checks.
package users

import (
	"context"
	"errors"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords.
// Callers must not distinguish the two cases in user-visible output.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrStoreUnavailable is returned when the backing database fails.
var ErrStoreUnavailable = errors.New("credential store unavailable")

// Store is the credential store consulted by the authentication flows.
type Store interface {
	// Login verifies email/password and returns the account on success.
	// Unknown account and wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*User, error)

	// Register creates an account with a freshly hashed password.
	Register(ctx context.Context, name, email, password string) (*User, error)

	// EmailExists reports whether an account with this email already exists.
	EmailExists(ctx context.Context, email string) (bool, error)
}
