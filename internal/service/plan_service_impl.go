package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/recurrence"
	"github.com/andrelbraga/maintkit/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans repository.PlanRepo
	items repository.WorkItemRepo
	log   *slog.Logger
}

// NewPlanService creates the plan administration service.
func NewPlanService(plans repository.PlanRepo, items repository.WorkItemRepo, logger *slog.Logger) PlanService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &planService{plans: plans, items: items, log: logger}
}

func (s *planService) Create(ctx context.Context, p *domain.Plan) error {
	if p.Code == "" {
		return fmt.Errorf("plan code is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.PlanActive
	}
	normalizePlanDates(p)

	if _, info := recurrence.NormalizeFrequency(p.Frequency); info.Fallback {
		// Accepted, but worth flagging at entry time rather than at the
		// first generation run.
		s.log.WarnContext(ctx, "plan frequency label is unrecognized and will generate weekly",
			slog.String("plan", p.Code),
			slog.String("label", p.Frequency),
		)
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.plans.Create(ctx, p)
}

func (s *planService) GetByRef(ctx context.Context, ref string) (*domain.Plan, error) {
	return resolvePlan(ctx, s.plans, ref)
}

func (s *planService) List(ctx context.Context, includeInactive bool) ([]*domain.Plan, error) {
	return s.plans.List(ctx, includeInactive)
}

func (s *planService) ListWorkItems(ctx context.Context, planID string) ([]*domain.WorkItem, error) {
	return s.items.ListByPlan(ctx, planID)
}

func (s *planService) Update(ctx context.Context, p *domain.Plan) error {
	normalizePlanDates(p)
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

func (s *planService) Deactivate(ctx context.Context, ref string) error {
	p, err := resolvePlan(ctx, s.plans, ref)
	if err != nil {
		return err
	}
	return s.plans.Deactivate(ctx, p.ID)
}

func (s *planService) Delete(ctx context.Context, ref string) error {
	p, err := resolvePlan(ctx, s.plans, ref)
	if err != nil {
		return err
	}
	return s.plans.Delete(ctx, p.ID)
}

// normalizePlanDates truncates the plan's calendar fields to date-only UTC
// so eligibility and projection never see a time component.
func normalizePlanDates(p *domain.Plan) {
	if p.StartDate != nil {
		d := recurrence.DateOnly(*p.StartDate)
		p.StartDate = &d
	}
	if p.EndDate != nil {
		d := recurrence.DateOnly(*p.EndDate)
		p.EndDate = &d
	}
}
