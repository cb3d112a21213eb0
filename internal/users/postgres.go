package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"authweb/internal/password"
)

// PostgresStore is the production credential store backed by Postgres
// (pgx stdlib driver) with argon2id password hashing.
type PostgresStore struct {
	db     *sql.DB
	hasher *password.Argon2
}

// NewPostgresStore wires a credential store over an open database handle.
func NewPostgresStore(db *sql.DB, hasher *password.Argon2) *PostgresStore {
	return &PostgresStore{db: db, hasher: hasher}
}

func (s *PostgresStore) Login(ctx context.Context, email, password string) (*User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE email = $1
		 `

	user := &User{}
	var hash string
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &hash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ok, err := s.hasher.Verify(password, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *PostgresStore) Register(ctx context.Context, name, email, plaintext string) (*User, error) {
	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	query :=
		`INSERT INTO users (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	user := &User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}
	var createdAt time.Time
	if err := s.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, hash).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	user.CreatedAt = createdAt

	return user, nil
}

func (s *PostgresStore) EmailExists(ctx context.Context, email string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return exists, nil
}
