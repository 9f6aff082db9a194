package recurrence

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProject_WeeklyCalendar(t *testing.T) {
	start := date(2025, 9, 8)
	today := date(2025, 10, 6)

	p := Project(start, Weekly, nil, today, 0)

	expected := []time.Time{
		date(2025, 9, 8),
		date(2025, 9, 15),
		date(2025, 9, 22),
		date(2025, 9, 29),
		date(2025, 10, 6),
	}
	assert.Equal(t, expected, p.Dates)
	assert.False(t, p.Truncated)
}

func TestProject_StartDateIsFirstOccurrence(t *testing.T) {
	start := date(2025, 5, 1)
	p := Project(start, Monthly, nil, date(2025, 5, 1), 0)
	assert.Equal(t, []time.Time{start}, p.Dates)
}

func TestProject_StartAfterWindowIsEmpty(t *testing.T) {
	p := Project(date(2025, 12, 1), Daily, nil, date(2025, 11, 1), 0)
	assert.Empty(t, p.Dates)
	assert.False(t, p.Truncated)
}

func TestProject_EndDateBoundsBeforeHorizon(t *testing.T) {
	start := date(2025, 1, 1)
	end := date(2025, 1, 15)

	p := Project(start, Weekly, &end, date(2025, 6, 1), 0)

	// Occurrences on the end date itself are included.
	expected := []time.Time{date(2025, 1, 1), date(2025, 1, 8), date(2025, 1, 15)}
	assert.Equal(t, expected, p.Dates)
}

func TestProject_IterationCapReturnsPartialResult(t *testing.T) {
	start := date(2020, 1, 1)

	p := Project(start, Daily, nil, date(2030, 1, 1), 100)

	assert.True(t, p.Truncated)
	assert.Len(t, p.Dates, 100)
	// The partial prefix is still the correct calendar.
	assert.Equal(t, start, p.Dates[0])
	assert.Equal(t, date(2020, 4, 9), p.Dates[99])
}

func TestProject_Deterministic(t *testing.T) {
	start := date(2024, 2, 29)
	end := date(2026, 1, 1)

	first := Project(start, Quarterly, &end, date(2027, 1, 1), 0)
	second := Project(start, Quarterly, &end, date(2027, 1, 1), 0)

	assert.Equal(t, first, second)
}

// TestProject_Invariants property-tests ordering: for any start, frequency
// and window, the projected dates are strictly increasing, start at the
// plan's start date and never exceed the window bound.
func TestProject_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	units := []Frequency{Daily, Weekly, Biweekly, Monthly, Bimonthly, Quarterly, Semiannual, Annual}

	for trial := 0; trial < 300; trial++ {
		start := date(2020, 1, 1).AddDate(0, 0, rng.Intn(2000))
		until := start.AddDate(0, 0, rng.Intn(800))
		freq := units[rng.Intn(len(units))]

		var end *time.Time
		if rng.Intn(2) == 1 {
			e := start.AddDate(0, 0, rng.Intn(400))
			end = &e
		}

		p := Project(start, freq, end, until, 0)

		if assert.NotEmpty(t, p.Dates, "trial %d: start within window must project", trial) {
			assert.Equal(t, start, p.Dates[0], "trial %d", trial)
		}
		bound := until
		if end != nil && end.Before(bound) {
			bound = *end
		}
		for i, d := range p.Dates {
			assert.False(t, d.After(bound), "trial %d: date %v beyond bound %v", trial, d, bound)
			if i > 0 {
				assert.True(t, d.After(p.Dates[i-1]),
					"trial %d: dates must be strictly increasing", trial)
			}
		}
	}
}
