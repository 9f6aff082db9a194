package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andrelbraga/maintkit/internal/db"
	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/recurrence"
	"github.com/andrelbraga/maintkit/internal/repository"
	"github.com/google/uuid"
)

type generationService struct {
	plans        repository.PlanRepo
	items        repository.WorkItemRepo
	uow          db.UnitOfWork
	log          *slog.Logger
	horizonDays  int
	iterationCap int
}

// NewGenerationService creates the generation orchestrator. horizonDays and
// iterationCap fall back to the recurrence package defaults when <= 0.
func NewGenerationService(
	plans repository.PlanRepo,
	items repository.WorkItemRepo,
	uow db.UnitOfWork,
	logger *slog.Logger,
	horizonDays int,
	iterationCap int,
) GenerationService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if horizonDays <= 0 {
		horizonDays = recurrence.DefaultHorizonDays
	}
	if iterationCap <= 0 {
		iterationCap = recurrence.DefaultIterationCap
	}
	return &generationService{
		plans:        plans,
		items:        items,
		uow:          uow,
		log:          logger,
		horizonDays:  horizonDays,
		iterationCap: iterationCap,
	}
}

func (s *generationService) RunAll(ctx context.Context, today time.Time) (*RunReport, error) {
	today = recurrence.DateOnly(today)

	// A store failure here means no plan can be processed at all; it is the
	// one error that propagates as fatal for the whole run.
	plans, err := s.plans.ListEligible(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("fetching eligible plans: %w", err)
	}

	report := &RunReport{Today: today}
	for _, plan := range plans {
		// Cooperative cancellation between plans: each plan's writes are
		// transactionally isolated, so aborting here leaves no partial state.
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("generation run aborted: %w", err)
		}
		report.absorb(s.runPlan(ctx, plan, today))
	}

	s.log.InfoContext(ctx, "generation run complete",
		slog.String("today", today.Format("2006-01-02")),
		slog.Int("plans_processed", report.PlansProcessed),
		slog.Int("plans_ineligible", report.PlansIneligible),
		slog.Int("items_created", report.ItemsCreated),
		slog.Int("items_already_existing", report.ItemsAlreadyExisting),
		slog.Int("items_skipped_future", report.ItemsSkippedFuture),
		slog.Int("frequency_fallbacks", report.FrequencyFallbacks),
		slog.Int("errors", report.Errors),
	)
	return report, nil
}

func (s *generationService) RunOne(ctx context.Context, planRef string, today time.Time) (*PlanRunResult, error) {
	plan, err := resolvePlan(ctx, s.plans, planRef)
	if err != nil {
		return nil, err
	}
	result := s.runPlan(ctx, plan, recurrence.DateOnly(today))
	return &result, nil
}

func (s *generationService) ProjectSchedule(ctx context.Context, planRef string, today time.Time, horizonDays int) ([]time.Time, error) {
	plan, err := resolvePlan(ctx, s.plans, planRef)
	if err != nil {
		return nil, err
	}
	if plan.StartDate == nil {
		return nil, fmt.Errorf("plan %s has no start date to project from", plan.Code)
	}
	if horizonDays <= 0 {
		horizonDays = s.horizonDays
	}

	freq, info := recurrence.NormalizeFrequency(plan.Frequency)
	if info.Fallback {
		s.log.WarnContext(ctx, "unrecognized frequency label, projecting as weekly",
			slog.String("plan", plan.Code),
			slog.String("label", plan.Frequency),
		)
	}

	until := recurrence.DateOnly(today).AddDate(0, 0, horizonDays)
	proj := recurrence.Project(recurrence.DateOnly(*plan.StartDate), freq, plan.EndDate, until, s.iterationCap)
	if proj.Truncated {
		s.log.WarnContext(ctx, "projection hit iteration cap, returning partial calendar",
			slog.String("plan", plan.Code),
			slog.Int("dates", len(proj.Dates)),
		)
	}
	return proj.Dates, nil
}

// runPlan applies validator → projector → materializer for one plan. Any
// panic or occurrence failure is absorbed into the result so one plan can
// never abort its siblings.
func (s *generationService) runPlan(ctx context.Context, plan *domain.Plan, today time.Time) (result PlanRunResult) {
	result = PlanRunResult{PlanID: plan.ID, PlanCode: plan.Code}

	defer func() {
		if p := recover(); p != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("panic: %v", p))
			s.log.ErrorContext(ctx, "plan generation panicked",
				slog.String("plan", plan.Code),
				slog.Any("panic", p),
			)
		}
	}()

	eligible, reason := domain.CheckEligibility(plan, today)
	if !eligible {
		result.Reason = reason
		return result
	}
	result.Eligible = true

	freq, info := recurrence.NormalizeFrequency(plan.Frequency)
	result.Frequency = freq
	if info.Fallback {
		result.FrequencyFallback = true
		s.log.WarnContext(ctx, "unrecognized frequency label, defaulting to weekly",
			slog.String("plan", plan.Code),
			slog.String("label", plan.Frequency),
		)
	}

	// Generation only looks at past and current occurrences; the forward
	// horizon matters for projection/what-if, never for materialization.
	proj := recurrence.Project(recurrence.DateOnly(*plan.StartDate), freq, plan.EndDate, today, s.iterationCap)
	if proj.Truncated {
		result.ProjectionTruncated = true
		s.log.WarnContext(ctx, "projection hit iteration cap, processing partial calendar",
			slog.String("plan", plan.Code),
			slog.Int("dates", len(proj.Dates)),
		)
	}
	result.OccurrencesDue = len(proj.Dates)

	for _, date := range proj.Dates {
		outcome, err := s.materialize(ctx, plan, freq, date, today)
		if err != nil {
			// The occurrence's transaction already rolled back; record it
			// and keep going. The next attempt re-derives its sequence
			// number from the store, so numbering stays gap-free.
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", date.Format("2006-01-02"), err))
			s.log.ErrorContext(ctx, "materializing occurrence failed",
				slog.String("plan", plan.Code),
				slog.String("date", date.Format("2006-01-02")),
				slog.String("error", err.Error()),
			)
			continue
		}
		switch outcome {
		case OutcomeCreated:
			result.Created++
		case OutcomeAlreadyExists:
			result.AlreadyExisting++
		case OutcomeSkippedFuture:
			result.SkippedFuture++
		}
	}
	return result
}

// materialize creates the work item for one occurrence if it does not exist
// yet. At most one store write happens, inside its own transaction.
func (s *generationService) materialize(ctx context.Context, plan *domain.Plan, freq recurrence.Frequency, date, today time.Time) (Outcome, error) {
	if date.After(today) {
		return OutcomeSkippedFuture, nil
	}

	// Cheap existence probe outside the transaction. The unique index on
	// (plan_id, scheduled_date) remains the real guarantee below.
	if _, err := s.items.FindByPlanAndDate(ctx, plan.ID, date); err == nil {
		return OutcomeAlreadyExists, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("checking existing work item: %w", err)
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)

		seq, err := txItems.NextSeq(ctx, plan.ID)
		if err != nil {
			return err
		}
		return txItems.Create(ctx, newWorkItem(plan, freq, date, seq))
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost a race with a concurrent run; the occurrence is covered.
			return OutcomeAlreadyExists, nil
		}
		return "", err
	}
	return OutcomeCreated, nil
}

// newWorkItem builds the materialized item for an occurrence, copying the
// plan's attributes and denormalizing the canonical frequency label.
func newWorkItem(plan *domain.Plan, freq recurrence.Frequency, date time.Time, seq int) *domain.WorkItem {
	next := freq.Next(date)
	now := time.Now().UTC()
	return &domain.WorkItem{
		ID:            uuid.New().String(),
		PlanID:        plan.ID,
		PlanCode:      plan.Code,
		Seq:           seq,
		ScheduledDate: date,
		Frequency:     freq.String(),
		Description:   plan.Description,
		Workshop:      plan.Workshop,
		CrewSize:      plan.CrewSize,
		PersonHours:   plan.PersonHours,
		Condition:     plan.Condition,
		SiteRef:       plan.SiteRef,
		Status:        domain.WorkItemOpen,
		NextDate:      &next,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
