package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"regguard/pkg/platform/sentinel"
)

const (
	emailExistsQuery    = `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`
	usernameExistsQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE lower(username) = lower($1))`
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgxmock pools.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresDirectory reads the host's users table. It never writes: creating
// users belongs to the host.
type PostgresDirectory struct {
	db Querier
}

func NewPostgresDirectory(db Querier) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) EmailExists(ctx context.Context, email string) (bool, error) {
	return d.exists(ctx, emailExistsQuery, email)
}

func (d *PostgresDirectory) UsernameExists(ctx context.Context, username string) (bool, error) {
	return d.exists(ctx, usernameExistsQuery, username)
}

func (d *PostgresDirectory) exists(ctx context.Context, query, value string) (bool, error) {
	var exists bool
	if err := d.db.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("query user directory %w: %w", sentinel.ErrUnavailable, err)
	}
	return exists, nil
}
