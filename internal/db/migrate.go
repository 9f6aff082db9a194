package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Every statement is
// idempotent (CREATE ... IF NOT EXISTS) so the full list re-runs safely on
// every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id           TEXT PRIMARY KEY,
		code         TEXT NOT NULL UNIQUE,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'active'
		             CHECK(status IN ('active','inactive')),
		start_date   TEXT,
		end_date     TEXT,
		frequency    TEXT NOT NULL DEFAULT '',
		workshop     TEXT NOT NULL DEFAULT '',
		crew_size    INTEGER NOT NULL DEFAULT 0,
		person_hours REAL NOT NULL DEFAULT 0,
		condition    TEXT NOT NULL DEFAULT '',
		site_ref     TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		id             TEXT PRIMARY KEY,
		plan_id        TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		plan_code      TEXT NOT NULL DEFAULT '',
		seq            INTEGER NOT NULL,
		scheduled_date TEXT NOT NULL,
		frequency      TEXT NOT NULL DEFAULT '',
		description    TEXT NOT NULL DEFAULT '',
		workshop       TEXT NOT NULL DEFAULT '',
		crew_size      INTEGER NOT NULL DEFAULT 0,
		person_hours   REAL NOT NULL DEFAULT 0,
		condition      TEXT NOT NULL DEFAULT '',
		site_ref       TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'open'
		               CHECK(status IN ('open','done','canceled')),
		next_date      TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	// One work item per plan and occurrence date. This index is the
	// authoritative duplicate-prevention mechanism; the application-level
	// existence check is only an optimization on top of it.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_items_plan_date
		ON work_items(plan_id, scheduled_date)`,

	`CREATE INDEX IF NOT EXISTS idx_work_items_plan_seq
		ON work_items(plan_id, seq)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_status_start
		ON plans(status, start_date)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
