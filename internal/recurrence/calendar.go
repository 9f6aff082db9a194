package recurrence

import "time"

// DateOnly truncates a time to its UTC calendar date. All occurrence
// arithmetic operates on values produced by this function.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Next returns the occurrence date immediately following the given base
// date. This is the single source of truth for recurrence date arithmetic;
// no other component advances dates independently.
//
// Day-based units add a fixed number of days. Month-based units keep the
// same day-of-month and clamp when the target month is shorter: Jan 31 +
// monthly is the last day of February, never a rollover into March. Annual
// behaves like +12 months, so Feb 29 bases clamp to Feb 28 in non-leap
// years.
func (f Frequency) Next(d time.Time) time.Time {
	switch f {
	case Daily:
		return d.AddDate(0, 0, 1)
	case Weekly:
		return d.AddDate(0, 0, 7)
	case Biweekly:
		return d.AddDate(0, 0, 14)
	case Monthly:
		return addMonthsClamped(d, 1)
	case Bimonthly:
		return addMonthsClamped(d, 2)
	case Quarterly:
		return addMonthsClamped(d, 3)
	case Semiannual:
		return addMonthsClamped(d, 6)
	case Annual:
		return addMonthsClamped(d, 12)
	default:
		// Unknown units cannot occur once labels pass NormalizeFrequency;
		// advance by the fallback unit so a zero value still terminates.
		return FallbackFrequency.Next(d)
	}
}

// addMonthsClamped advances by n months keeping the day-of-month, clamping
// to the target month's last day. time.AddDate is deliberately avoided for
// the month component because it normalizes Jan 31 + 1 month into March 2/3.
func addMonthsClamped(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	// Anchor on the first of the month so the month addition itself can
	// never overflow, then clamp the day.
	anchor := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	if last := daysInMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
