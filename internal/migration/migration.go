// Package migration owns the database schema. The schema is small and
// append-only, so migrations are plain idempotent DDL statements applied
// in order.
package migration

import (
	"context"

	"ecostat/internal/errors"

	"github.com/jmoiron/sqlx"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS datasets (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		seed        BIGINT NOT NULL,
		payload     JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_datasets_name ON datasets (name)`,
	`CREATE TABLE IF NOT EXISTS analyses (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		seed        BIGINT NOT NULL,
		payload     JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_kind ON analyses (kind, created_at DESC)`,
}

// Runner applies schema migrations
type Runner struct{}

// NewRunner creates a migration runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run applies all schema statements in order
func (r *Runner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migration statement failed")
		}
	}
	return nil
}
