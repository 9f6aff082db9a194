package domain

import "time"

// WorkItem is the materialized, trackable unit of work for one occurrence of
// a plan. For a given plan there is at most one work item per scheduled date;
// the work_items(plan_id, scheduled_date) unique index is the authoritative
// guarantee.
type WorkItem struct {
	ID     string
	PlanID string
	// PlanCode is denormalized from the plan for display and logging.
	PlanCode string

	// Seq is the 1-based position of this item within its plan, derived from
	// store state (max seq + 1) at creation time, never from a cached counter.
	Seq           int
	ScheduledDate time.Time
	// Frequency holds the canonical frequency label at creation time; it is
	// not re-derived if the plan's label changes later.
	Frequency string

	Description string
	Workshop    string
	CrewSize    int
	PersonHours float64
	Condition   string
	SiteRef     string

	Status WorkItemStatus
	// NextDate is the informational next projected occurrence after this one.
	// It is not authoritative; the projector recomputes the real calendar.
	NextDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
