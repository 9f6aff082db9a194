package service

import (
	"context"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
)

// GenerationService materializes work items from recurring maintenance
// plans. "today" is always an explicit parameter so runs are deterministic
// and testable; no core operation reads the wall clock to decide anything.
type GenerationService interface {
	// RunAll processes every store-eligible plan, materializing work items
	// for all due occurrences. One plan's failure never aborts the batch.
	RunAll(ctx context.Context, today time.Time) (*RunReport, error)
	// RunOne reuses the same per-plan logic for on-demand triggering of a
	// single plan, referenced by code or ID.
	RunOne(ctx context.Context, planRef string, today time.Time) (*PlanRunResult, error)
	// ProjectSchedule computes a plan's occurrence calendar up to
	// horizonDays past today (service default when <= 0). Pure what-if
	// projection, no side effects.
	ProjectSchedule(ctx context.Context, planRef string, today time.Time, horizonDays int) ([]time.Time, error)
}

// BacklogService reports occurrences that are due but never materialized.
// Strictly read-only: it must never create work items.
type BacklogService interface {
	Analyze(ctx context.Context, today time.Time) (*BacklogReport, error)
	AnalyzePlan(ctx context.Context, planRef string, today time.Time) (*PlanBacklog, error)
}

// ImportService creates plans in bulk from an import file. The file is
// applied atomically: a single bad plan aborts the whole import.
type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}

// PlanService is the administration surface for maintenance plans.
type PlanService interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByRef(ctx context.Context, ref string) (*domain.Plan, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Plan, error)
	// ListWorkItems returns the plan's generated work items in sequence
	// order.
	ListWorkItems(ctx context.Context, planID string) ([]*domain.WorkItem, error)
	Update(ctx context.Context, p *domain.Plan) error
	Deactivate(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
}
