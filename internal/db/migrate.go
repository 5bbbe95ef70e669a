package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the
// whole list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ... ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		subject_id        TEXT REFERENCES subjects(id) ON DELETE SET NULL,
		due_date          TEXT,
		estimated_minutes INTEGER NOT NULL DEFAULT 50 CHECK(estimated_minutes > 0),
		priority          INTEGER NOT NULL DEFAULT 1 CHECK(priority BETWEEN 1 AND 3),
		status            TEXT NOT NULL DEFAULT 'PENDING'
		                  CHECK(status IN ('PENDING','IN_PROGRESS','DONE')),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_subject ON tasks(subject_id)`,

	`CREATE TABLE IF NOT EXISTS schedule_blocks (
		id         TEXT PRIMARY KEY,
		task_id    TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		start_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		created_at TEXT NOT NULL,
		CHECK(start_at < end_at)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_blocks_window ON schedule_blocks(start_at, end_at)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         TEXT PRIMARY KEY,
		role       TEXT NOT NULL CHECK(role IN ('user','assistant')),
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chat_created ON chat_messages(created_at)`,

	// Assistant replies produced by a plan rebuild record the day they planned.
	`ALTER TABLE chat_messages ADD COLUMN plan_day TEXT NOT NULL DEFAULT ''`,
}
