package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"plans", "work_items"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s must exist", table)
	}
}

func TestMigrate_Rerunnable(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, Migrate(database))
	assert.NoError(t, Migrate(database))
}

func TestMigrate_UniquePlanDateIndexEnforced(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	_, err = database.ExecContext(ctx,
		`INSERT INTO plans (id, code, created_at, updated_at) VALUES ('p1', 'PM-001', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO work_items (id, plan_id, seq, scheduled_date, created_at, updated_at)
		VALUES (?, 'p1', ?, '2025-01-01', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`
	_, err = database.ExecContext(ctx, insert, "w1", 1)
	require.NoError(t, err)

	_, err = database.ExecContext(ctx, insert, "w2", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}
