package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authweb/internal/password"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hasher, err := password.NewArgon2(password.Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	require.NoError(t, err)

	return NewPostgresStore(db, hasher), mock
}

const selectByEmail = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

func TestLoginSuccess(t *testing.T) {
	store, mock := newStoreWithMock(t)

	hash, err := store.hasher.Hash("longenough")
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
		AddRow("u1", "Alice", "a@b.com", hash, time.Now())
	mock.ExpectQuery(selectByEmail).WithArgs("a@b.com").WillReturnRows(rows)

	user, err := store.Login(context.Background(), "a@b.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestLoginUnknownAccount(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectByEmail).WithArgs("nobody@b.com").WillReturnError(sql.ErrNoRows)

	_, err := store.Login(context.Background(), "nobody@b.com", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	store, mock := newStoreWithMock(t)

	hash, err := store.hasher.Hash("the-real-password")
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
		AddRow("u1", "Alice", "a@b.com", hash, time.Now())
	mock.ExpectQuery(selectByEmail).WithArgs("a@b.com").WillReturnRows(rows)

	_, err = store.Login(context.Background(), "a@b.com", "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials,
		"wrong password and unknown account must be the same error")
}

func TestLoginDatabaseDown(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(selectByEmail).WithArgs("a@b.com").WillReturnError(errors.New("db down"))

	_, err := store.Login(context.Background(), "a@b.com", "longenough")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterInsertsHashedPassword(t *testing.T) {
	store, mock := newStoreWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", sqlmock.AnyArg()).
		WillReturnRows(rows)

	user, err := store.Register(context.Background(), "alice", "alice@example.com", "longenough")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestEmailExists(t *testing.T) {
	store, mock := newStoreWithMock(t)

	q := `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\)\s*$`
	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery(q).WithArgs("taken@example.com").WillReturnRows(rows)

	exists, err := store.EmailExists(context.Background(), "taken@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
