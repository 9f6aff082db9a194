package domain

import "time"

// BacklogEntry is a reporting-only record of one occurrence that is due on or
// before the reference date and has no materialized work item. It is never
// persisted.
type BacklogEntry struct {
	PlanID      string
	PlanCode    string
	Date        time.Time
	DaysOverdue int
	Severity    Severity
}

// NewBacklogEntry builds an entry for a missing occurrence, deriving the
// overdue-day count and severity from the reference date.
func NewBacklogEntry(plan *Plan, date, today time.Time) BacklogEntry {
	days := int(today.Sub(date).Hours() / 24)
	return BacklogEntry{
		PlanID:      plan.ID,
		PlanCode:    plan.Code,
		Date:        date,
		DaysOverdue: days,
		Severity:    SeverityForDaysOverdue(days),
	}
}
