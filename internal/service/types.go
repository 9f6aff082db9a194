package service

import (
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/recurrence"
)

// Outcome is the result of materializing one occurrence of one plan.
type Outcome string

const (
	// OutcomeCreated: a new work item was persisted for the occurrence.
	OutcomeCreated Outcome = "created"
	// OutcomeAlreadyExists: a work item for (plan, date) already existed;
	// nothing was written.
	OutcomeAlreadyExists Outcome = "already_exists"
	// OutcomeSkippedFuture: the occurrence date is after today; future
	// occurrences are never materialized ahead of time.
	OutcomeSkippedFuture Outcome = "skipped_future"
)

// PlanRunResult is the per-plan detail of a generation run.
type PlanRunResult struct {
	PlanID   string
	PlanCode string

	Eligible bool
	// Reason is set when the plan was rejected by the eligibility check.
	Reason domain.IneligibilityReason

	Frequency recurrence.Frequency
	// FrequencyFallback is true when the plan's label was unrecognized and
	// generation defaulted to weekly.
	FrequencyFallback bool
	// ProjectionTruncated is true when the iteration cap cut the occurrence
	// calendar short; the processed prefix is still valid.
	ProjectionTruncated bool

	OccurrencesDue   int
	Created          int
	AlreadyExisting  int
	SkippedFuture    int
	// Errors itemizes occurrence-level failures; each failed occurrence was
	// rolled back on its own without disturbing the others.
	Errors []string
}

// Failed reports whether any occurrence of this plan failed.
func (r *PlanRunResult) Failed() bool { return len(r.Errors) > 0 }

// RunReport aggregates a whole generation run.
type RunReport struct {
	Today time.Time

	PlansProcessed  int
	PlansIneligible int

	ItemsCreated         int
	ItemsAlreadyExisting int
	ItemsSkippedFuture   int

	FrequencyFallbacks int
	Errors             int

	PerPlan []PlanRunResult
}

func (r *RunReport) absorb(res PlanRunResult) {
	r.PlansProcessed++
	if !res.Eligible {
		r.PlansIneligible++
	}
	r.ItemsCreated += res.Created
	r.ItemsAlreadyExisting += res.AlreadyExisting
	r.ItemsSkippedFuture += res.SkippedFuture
	if res.FrequencyFallback {
		r.FrequencyFallbacks++
	}
	r.Errors += len(res.Errors)
	r.PerPlan = append(r.PerPlan, res)
}

// PlanBacklog groups a plan's missing-and-due occurrences.
type PlanBacklog struct {
	PlanID   string
	PlanCode string

	Entries      []domain.BacklogEntry
	TotalOverdue int
	HighSeverity int
}

// BacklogReport is the batch pendency report, grouped by plan.
type BacklogReport struct {
	Today time.Time

	Plans        []PlanBacklog
	TotalOverdue int
	HighSeverity int
}
