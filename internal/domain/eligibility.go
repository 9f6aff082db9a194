package domain

import "time"

// CheckEligibility decides whether a plan is admitted for generation at the
// given reference date. Checks are applied in priority order; the first
// failing check determines the reason. The reference date and the plan's
// dates are expected to be date-only (UTC midnight).
//
// An unparseable frequency never makes a plan ineligible: the frequency
// normalizer already defaults it, and the caller logs the fallback.
func CheckEligibility(p *Plan, today time.Time) (bool, IneligibilityReason) {
	if p.Status != PlanActive {
		return false, ReasonInactive
	}
	if p.StartDate == nil {
		return false, ReasonNoStartDate
	}
	if p.StartDate.After(today) {
		return false, ReasonNotStartedYet
	}
	// The plan is eligible only while today < endDate.
	if p.EndDate != nil && !today.Before(*p.EndDate) {
		return false, ReasonExpired
	}
	return true, ""
}
