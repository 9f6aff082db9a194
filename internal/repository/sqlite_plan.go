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

// planColumns is the canonical SELECT column list for plans.
const planColumns = `id, code, description, status, start_date, end_date, frequency,
		workshop, crew_size, person_hours, condition, site_ref, created_at, updated_at`

// SQLitePlanRepo implements PlanRepo over a db.DBTX, so the same type serves
// both plain connections and transactions.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (id, code, description, status, start_date, end_date, frequency,
		workshop, crew_size, person_hours, condition, site_ref, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Code,
		p.Description,
		string(p.Status),
		nullableDateToString(p.StartDate),
		nullableDateToString(p.EndDate),
		p.Frequency,
		p.Workshop,
		p.CrewSize,
		p.PersonHours,
		p.Condition,
		p.SiteRef,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("plan code %q: %w", p.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetByCode(ctx context.Context, code string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE code = ? COLLATE NOCASE`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, code))
}

func (r *SQLitePlanRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE status = 'active' ORDER BY code`
	if includeInactive {
		query = `SELECT ` + planColumns + ` FROM plans ORDER BY code`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()
	return r.scanPlans(rows)
}

func (r *SQLitePlanRepo) ListEligible(ctx context.Context, today time.Time) ([]*domain.Plan, error) {
	// Coarse pre-filter pushed to the store; date-window eligibility is the
	// validator's job so rejected plans can still be counted with a reason.
	query := `SELECT ` + planColumns + ` FROM plans
		WHERE status = 'active' AND start_date IS NOT NULL
		ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing eligible plans: %w", err)
	}
	defer rows.Close()
	return r.scanPlans(rows)
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	query := `UPDATE plans SET code = ?, description = ?, status = ?, start_date = ?, end_date = ?,
		frequency = ?, workshop = ?, crew_size = ?, person_hours = ?, condition = ?, site_ref = ?,
		updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Description,
		string(p.Status),
		nullableDateToString(p.StartDate),
		nullableDateToString(p.EndDate),
		p.Frequency,
		p.Workshop,
		p.CrewSize,
		p.PersonHours,
		p.Condition,
		p.SiteRef,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE plans SET status = 'inactive', updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("deactivating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var statusStr string
	var startDateStr, endDateStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID, &p.Code, &p.Description, &statusStr, &startDateStr, &endDateStr, &p.Frequency,
		&p.Workshop, &p.CrewSize, &p.PersonHours, &p.Condition, &p.SiteRef,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	return r.populatePlan(&p, statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr)
}

func (r *SQLitePlanRepo) scanPlans(rows *sql.Rows) ([]*domain.Plan, error) {
	var plans []*domain.Plan
	for rows.Next() {
		var p domain.Plan
		var statusStr string
		var startDateStr, endDateStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&p.ID, &p.Code, &p.Description, &statusStr, &startDateStr, &endDateStr, &p.Frequency,
			&p.Workshop, &p.CrewSize, &p.PersonHours, &p.Condition, &p.SiteRef,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		plan, err := r.populatePlan(&p, statusStr, startDateStr, endDateStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) populatePlan(
	p *domain.Plan,
	statusStr string,
	startDateStr, endDateStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Plan, error) {
	p.Status = domain.PlanStatus(statusStr)
	p.StartDate = parseNullableDate(startDateStr)
	p.EndDate = parseNullableDate(endDateStr)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
