// Package store persists run metadata and per-step reports in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    seed INTEGER NOT NULL,
    population INTEGER NOT NULL,
    steps_requested INTEGER NOT NULL,
    workers INTEGER NOT NULL,
    tracked_bacteria TEXT NOT NULL,
    clamp INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS step_reports (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    step INTEGER NOT NULL,
    tracked INTEGER NOT NULL,
    infected INTEGER NOT NULL,
    septic INTEGER NOT NULL,
    mean_level REAL NOT NULL,
    on_drugs INTEGER NOT NULL,
    sample TEXT NOT NULL,
    PRIMARY KEY (run_id, step)
);
`

func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
