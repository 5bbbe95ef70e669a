package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// The ALTER TABLE statement must be tolerated on replay.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"subjects", "tasks", "schedule_blocks", "chat_messages"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_tasks_status", "idx_tasks_subject", "idx_blocks_window", "idx_chat_created"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_UpgradeAddsPlanDayColumn(t *testing.T) {
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	// Transcript table as created before plan_day existed.
	_, err = raw.Exec(`CREATE TABLE chat_messages (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL CHECK(role IN ('user','assistant')),
		content TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO chat_messages (id, role, content, created_at) VALUES ('m1', 'user', 'plan dao', '2025-01-01T09:00:00.000Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(raw))

	var content, planDay string
	require.NoError(t, raw.QueryRow(`SELECT content, plan_day FROM chat_messages WHERE id = 'm1'`).Scan(&content, &planDay))
	assert.Equal(t, "plan dao", content)
	assert.Equal(t, "", planDay)
}

func TestMigrate_BlockCheckRejectsInvertedInterval(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO schedule_blocks (id, start_at, end_at, created_at)
		VALUES ('b1', '2025-01-01T10:00:00.000Z', '2025-01-01T09:00:00.000Z', '2025-01-01T08:00:00.000Z')`)
	assert.Error(t, err)
}
