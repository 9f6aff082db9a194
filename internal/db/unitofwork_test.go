package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/andrelbraga/maintkit/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertPlanRow(ctx context.Context, tx db.DBTX, id, code string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO plans (id, code, description, status, frequency,
		workshop, crew_size, person_hours, condition, site_ref, created_at, updated_at)
		VALUES (?, ?, '', 'active', 'weekly', '', 0, 0, '', '', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		id, code)
	return err
}

func planExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var count int
	err := database.QueryRow(`SELECT COUNT(*) FROM plans WHERE id = ?`, id).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertPlanRow(ctx, tx, "p1", "PM-TX1")
	})
	require.NoError(t, err)
	assert.True(t, planExists(t, database, "p1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPlanRow(ctx, tx, "p2", "PM-TX2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, planExists(t, database, "p2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertPlanRow(ctx, tx, "p3", "PM-TX3")
			panic("boom")
		})
	})
	assert.False(t, planExists(t, database, "p3"), "row should not exist after panic rollback")
}
