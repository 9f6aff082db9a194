package repository

import (
	"context"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
)

// PlanRepo stores maintenance plans. Plans are read-only to the generation
// core; Create/Update/Deactivate exist for the administration surface.
type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByCode(ctx context.Context, code string) (*domain.Plan, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Plan, error)
	// ListEligible is the coarse store-side pre-filter for a generation run:
	// active plans with a non-null start date. Fine-grained eligibility
	// (start/end versus today) is decided by domain.CheckEligibility.
	ListEligible(ctx context.Context, today time.Time) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// WorkItemRepo stores materialized work items. FindByPlanAndDate and NextSeq
// back the idempotency and sequencing invariants, so both must be exact.
type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	// FindByPlanAndDate is the deduplication lookup, exact on both keys.
	// Returns domain.ErrNotFound when no item exists for the occurrence.
	FindByPlanAndDate(ctx context.Context, planID string, date time.Time) (*domain.WorkItem, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.WorkItem, error)
	CountByPlan(ctx context.Context, planID string) (int, error)
	// NextSeq derives the next sequence number for a plan from store state
	// (max + 1). It is queried fresh inside each materialization transaction
	// and never cached across occurrences or runs.
	NextSeq(ctx context.Context, planID string) (int, error)
	Update(ctx context.Context, w *domain.WorkItem) error
}
