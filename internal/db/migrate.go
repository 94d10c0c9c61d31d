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

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS stages (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS exercises (
		id          TEXT PRIMARY KEY,
		stage_id    TEXT NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		duration    INTEGER NOT NULL CHECK(duration > 0),
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_exercises_stage ON exercises(stage_id)`,

	`CREATE TABLE IF NOT EXISTS lesson_plans (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		start_time     TEXT NOT NULL DEFAULT '09:00:00',
		stage_order    TEXT NOT NULL DEFAULT '[]',
		total_duration INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_lesson_plans_title ON lesson_plans(title COLLATE NOCASE)`,

	// Plan items keep snapshots of stage/exercise names, so there is no
	// foreign key into the catalog: deleting a catalog entry must not
	// rewrite historical plans.
	`CREATE TABLE IF NOT EXISTS lesson_plan_items (
		id            TEXT PRIMARY KEY,
		plan_id       TEXT NOT NULL REFERENCES lesson_plans(id) ON DELETE CASCADE,
		stage_id      TEXT NOT NULL,
		stage_name    TEXT NOT NULL,
		exercise_id   TEXT NOT NULL,
		exercise_name TEXT NOT NULL,
		duration      INTEGER NOT NULL CHECK(duration >= 0),
		order_index   INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lesson_plan_items_plan ON lesson_plan_items(plan_id, order_index)`,

	// Per-plan lesson length; older databases get the 90-minute default.
	`ALTER TABLE lesson_plans ADD COLUMN budget_seconds INTEGER NOT NULL DEFAULT 5400`,
}
