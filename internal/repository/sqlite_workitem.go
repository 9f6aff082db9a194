package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/andrelbraga/maintkit/internal/db"
	"github.com/andrelbraga/maintkit/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, plan_id, plan_code, seq, scheduled_date, frequency,
		description, workshop, crew_size, person_hours, condition, site_ref,
		status, next_date, created_at, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo over a db.DBTX, so the same
// type serves both plain connections and per-occurrence transactions.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

// NewSQLiteWorkItemRepo creates a new SQLiteWorkItemRepo.
func NewSQLiteWorkItemRepo(conn db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: conn}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (id, plan_id, plan_code, seq, scheduled_date, frequency,
		description, workshop, crew_size, person_hours, condition, site_ref,
		status, next_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.PlanID,
		w.PlanCode,
		w.Seq,
		w.ScheduledDate.Format(dateLayout),
		w.Frequency,
		w.Description,
		w.Workshop,
		w.CrewSize,
		w.PersonHours,
		w.Condition,
		w.SiteRef,
		string(w.Status),
		nullableDateToString(w.NextDate),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		// The unique index on (plan_id, scheduled_date) is the authoritative
		// duplicate guard; surface it as a typed error so the materializer
		// can treat a lost race as "already exists", not a failure.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("work item for plan %s on %s: %w",
				w.PlanID, w.ScheduledDate.Format(dateLayout), domain.ErrDuplicate)
		}
		return fmt.Errorf("inserting work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	return r.scanWorkItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkItemRepo) FindByPlanAndDate(ctx context.Context, planID string, date time.Time) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items
		WHERE plan_id = ? AND scheduled_date = ?`
	return r.scanWorkItem(r.db.QueryRowContext(ctx, query, planID, date.Format(dateLayout)))
}

func (r *SQLiteWorkItemRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE plan_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing work items by plan: %w", err)
	}
	defer rows.Close()
	return r.scanWorkItems(rows)
}

func (r *SQLiteWorkItemRepo) CountByPlan(ctx context.Context, planID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM work_items WHERE plan_id = ?`, planID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting work items for plan %s: %w", planID, err)
	}
	return count, nil
}

// NextSeq derives the next sequence number from persisted state so it stays
// monotonic across failed attempts, retries and concurrent runs. Call it
// inside the same transaction as the insert it feeds.
func (r *SQLiteWorkItemRepo) NextSeq(ctx context.Context, planID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM work_items WHERE plan_id = ?`, planID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("deriving next seq for plan %s: %w", planID, err)
	}
	return next, nil
}

func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	query := `UPDATE work_items SET status = ?, next_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(w.Status),
		nullableDateToString(w.NextDate),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) scanWorkItem(row *sql.Row) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var scheduledStr, statusStr string
	var nextDateStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&w.ID, &w.PlanID, &w.PlanCode, &w.Seq, &scheduledStr, &w.Frequency,
		&w.Description, &w.Workshop, &w.CrewSize, &w.PersonHours, &w.Condition, &w.SiteRef,
		&statusStr, &nextDateStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work item: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}
	return r.populateWorkItem(&w, scheduledStr, statusStr, nextDateStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteWorkItemRepo) scanWorkItems(rows *sql.Rows) ([]*domain.WorkItem, error) {
	var items []*domain.WorkItem
	for rows.Next() {
		var w domain.WorkItem
		var scheduledStr, statusStr string
		var nextDateStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&w.ID, &w.PlanID, &w.PlanCode, &w.Seq, &scheduledStr, &w.Frequency,
			&w.Description, &w.Workshop, &w.CrewSize, &w.PersonHours, &w.Condition, &w.SiteRef,
			&statusStr, &nextDateStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning work item row: %w", err)
		}
		item, err := r.populateWorkItem(&w, scheduledStr, statusStr, nextDateStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

func (r *SQLiteWorkItemRepo) populateWorkItem(
	w *domain.WorkItem,
	scheduledStr, statusStr string,
	nextDateStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.WorkItem, error) {
	var parseErr error
	w.ScheduledDate, parseErr = time.Parse(dateLayout, scheduledStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing scheduled_date: %w", parseErr)
	}
	w.ScheduledDate = w.ScheduledDate.UTC()
	w.Status = domain.WorkItemStatus(statusStr)
	w.NextDate = parseNullableDate(nextDateStr)

	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return w, nil
}
