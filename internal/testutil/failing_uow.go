package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andrelbraga/maintkit/internal/db"
)

// FailOnExecMatchUoW is a test UnitOfWork that injects an error on any
// ExecContext call whose query/args satisfy Match. This simulates a store
// write failing for one specific plan or occurrence while every other write
// commits, which is what the batch-isolation tests need.
//
// Reads (QueryContext / QueryRowContext) always pass through.
type FailOnExecMatchUoW struct {
	DB    *sql.DB
	Match func(query string, args []any) bool
	Err   error
}

func (u *FailOnExecMatchUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnExecMatch{DBTX: tx, match: u.Match, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnExecMatch struct {
	db.DBTX
	match func(query string, args []any) bool
	err   error
}

func (f *failOnExecMatch) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.match(query, args) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// ArgsContain reports whether any bound argument equals the given value.
// Useful as a Match predicate keyed on a plan or work-item ID.
func ArgsContain(args []any, value any) bool {
	for _, a := range args {
		if a == value {
			return true
		}
	}
	return false
}
