package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT). The record body is a
// JSON document; created_at/updated_at are denormalized for ordering.
const baseSchema = `
CREATE TABLE IF NOT EXISTS summaries (
  id INTEGER PRIMARY KEY,
  doc TEXT NOT NULL,
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("apply base schema: %w", err)
	}

	// Migration 1: Add updated_at column for edited-summary stamping
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('summaries') WHERE name = 'updated_at'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check updated_at column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE summaries ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add updated_at column: %w", err)
		}
	}

	return nil
}
