package domain

import "time"

// Plan is a recurring maintenance definition: a start date, an optional end
// date and a frequency label that together imply a calendar of occurrences.
// The attribute fields (workshop, crew size, ...) are copied verbatim onto
// every work item generated from the plan.
type Plan struct {
	ID          string
	Code        string
	Description string
	Status      PlanStatus

	StartDate *time.Time
	EndDate   *time.Time
	// Frequency is the raw label as entered (possibly a language variant);
	// it is normalized by the recurrence package whenever it is consumed.
	Frequency string

	Workshop    string
	CrewSize    int
	PersonHours float64
	Condition   string
	SiteRef     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
