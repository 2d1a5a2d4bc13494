// Package postgres persists kashf's customers, credit cards and payment
// reminders. Records are deduplicated on natural keys (phone number, card
// last-four) so re-importing a statement never creates duplicates.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the shared connection pool every persistence operation runs on.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens a pool against the reminder database and verifies it with a
// ping before handing it out.
func Connect(ctx context.Context, connString string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = "kashf"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close releases the connection pool.
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
