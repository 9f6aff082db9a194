package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/recurrence"
	"github.com/andrelbraga/maintkit/internal/repository"
)

type backlogService struct {
	plans        repository.PlanRepo
	items        repository.WorkItemRepo
	log          *slog.Logger
	iterationCap int
}

// NewBacklogService creates the read-only pendency analyzer. It shares the
// projector with the generator but never writes.
func NewBacklogService(
	plans repository.PlanRepo,
	items repository.WorkItemRepo,
	logger *slog.Logger,
	iterationCap int,
) BacklogService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if iterationCap <= 0 {
		iterationCap = recurrence.DefaultIterationCap
	}
	return &backlogService{
		plans:        plans,
		items:        items,
		log:          logger,
		iterationCap: iterationCap,
	}
}

func (s *backlogService) Analyze(ctx context.Context, today time.Time) (*BacklogReport, error) {
	today = recurrence.DateOnly(today)

	plans, err := s.plans.ListEligible(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("fetching eligible plans: %w", err)
	}

	report := &BacklogReport{Today: today}
	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("backlog analysis aborted: %w", err)
		}

		pb, err := s.analyzePlan(ctx, plan, today)
		if err != nil {
			// Reporting is best-effort per plan; one plan's store error
			// must not hide every other plan's backlog.
			s.log.ErrorContext(ctx, "backlog analysis failed for plan",
				slog.String("plan", plan.Code),
				slog.String("error", err.Error()),
			)
			continue
		}
		if pb == nil || len(pb.Entries) == 0 {
			continue
		}
		report.Plans = append(report.Plans, *pb)
		report.TotalOverdue += pb.TotalOverdue
		report.HighSeverity += pb.HighSeverity
	}
	return report, nil
}

func (s *backlogService) AnalyzePlan(ctx context.Context, planRef string, today time.Time) (*PlanBacklog, error) {
	plan, err := resolvePlan(ctx, s.plans, planRef)
	if err != nil {
		return nil, err
	}

	pb, err := s.analyzePlan(ctx, plan, recurrence.DateOnly(today))
	if err != nil {
		return nil, err
	}
	if pb == nil {
		// Ineligible plans have no backlog by definition.
		return &PlanBacklog{PlanID: plan.ID, PlanCode: plan.Code}, nil
	}
	return pb, nil
}

// analyzePlan projects a plan's calendar up to today and reports every date
// with no materialized work item. Returns nil for ineligible plans.
func (s *backlogService) analyzePlan(ctx context.Context, plan *domain.Plan, today time.Time) (*PlanBacklog, error) {
	if eligible, _ := domain.CheckEligibility(plan, today); !eligible {
		return nil, nil
	}

	freq, info := recurrence.NormalizeFrequency(plan.Frequency)
	if info.Fallback {
		s.log.WarnContext(ctx, "unrecognized frequency label, analyzing as weekly",
			slog.String("plan", plan.Code),
			slog.String("label", plan.Frequency),
		)
	}

	proj := recurrence.Project(recurrence.DateOnly(*plan.StartDate), freq, plan.EndDate, today, s.iterationCap)
	if proj.Truncated {
		s.log.WarnContext(ctx, "projection hit iteration cap, analyzing partial calendar",
			slog.String("plan", plan.Code),
			slog.Int("dates", len(proj.Dates)),
		)
	}

	pb := &PlanBacklog{PlanID: plan.ID, PlanCode: plan.Code}
	for _, date := range proj.Dates {
		_, err := s.items.FindByPlanAndDate(ctx, plan.ID, date)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("checking work item for %s: %w", date.Format("2006-01-02"), err)
		}

		entry := domain.NewBacklogEntry(plan, date, today)
		pb.Entries = append(pb.Entries, entry)
		pb.TotalOverdue++
		if entry.Severity == domain.SeverityHigh {
			pb.HighSeverity++
		}
	}
	return pb, nil
}
