package recurrence

import "time"

// DefaultIterationCap bounds the number of projected occurrences per plan.
// A daily plan projected over a year stays well under it; hitting the cap
// means the window is pathological and partial results are still valid.
const DefaultIterationCap = 1000

// DefaultHorizonDays is the forward projection window used when a caller
// does not specify one.
const DefaultHorizonDays = 365

// Projection is the computed occurrence calendar of one plan over a window.
type Projection struct {
	// Dates is the ordered, strictly increasing occurrence sequence. The
	// start date is always occurrence #1 when it falls within the window.
	Dates []time.Time
	// Truncated is true when the iteration cap stopped the projection before
	// the window bound was reached. The partial result remains valid.
	Truncated bool
}

// Project computes the occurrence calendar for a plan: the start date
// followed by repeated applications of freq.Next, bounded by the earlier of
// end (when present) and until, and by the iteration cap (cap <= 0 selects
// DefaultIterationCap).
//
// The function is pure: the same arguments always produce the same sequence,
// which is what makes re-runs of the generator idempotent.
func Project(start time.Time, freq Frequency, end *time.Time, until time.Time, cap int) Projection {
	if cap <= 0 {
		cap = DefaultIterationCap
	}

	bound := until
	if end != nil && end.Before(bound) {
		bound = *end
	}

	var p Projection
	d := start
	for !d.After(bound) {
		if len(p.Dates) >= cap {
			p.Truncated = true
			return p
		}
		p.Dates = append(p.Dates, d)

		next := freq.Next(d)
		if !next.After(d) {
			// A non-advancing unit would loop forever; treat it like a
			// cap hit and return what we have.
			p.Truncated = true
			return p
		}
		d = next
	}
	return p
}
