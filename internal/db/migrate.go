package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ... ADD COLUMN fails once the column exists.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS initiatives (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		stage       TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_initiatives_short_id ON initiatives(short_id)`,

	`CREATE TABLE IF NOT EXISTS plans (
		initiative_id TEXT NOT NULL REFERENCES initiatives(id) ON DELETE CASCADE,
		variant       TEXT NOT NULL CHECK(variant IN ('plan','actuals')),
		document      TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		PRIMARY KEY (initiative_id, variant)
	)`,

	`ALTER TABLE plans ADD COLUMN repair_count INTEGER NOT NULL DEFAULT 0`,

	`CREATE INDEX IF NOT EXISTS idx_plans_variant ON plans(variant)`,
}
