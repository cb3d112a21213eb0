// Package db opens the Postgres connection for the credential store and
// applies embedded goose migrations on startup.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"authweb/internal/db/migrations"
)

// Open connects to Postgres via the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	conn.SetMaxOpenConns(maxOpenConns)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return conn, nil
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	return nil
}
