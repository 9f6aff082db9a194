package domain

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanInactive PlanStatus = "inactive"
)

type WorkItemStatus string

const (
	WorkItemOpen     WorkItemStatus = "open"
	WorkItemDone     WorkItemStatus = "done"
	WorkItemCanceled WorkItemStatus = "canceled"
)

// IneligibilityReason explains why a plan was not admitted for generation.
// These are expected states, not errors.
type IneligibilityReason string

const (
	ReasonInactive      IneligibilityReason = "INACTIVE"
	ReasonNoStartDate   IneligibilityReason = "NO_START_DATE"
	ReasonNotStartedYet IneligibilityReason = "NOT_STARTED_YET"
	ReasonExpired       IneligibilityReason = "EXPIRED"
)

// Severity classifies how overdue a backlog occurrence is.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// highSeverityThresholdDays is the overdue-day count above which a backlog
// entry is classified high.
const highSeverityThresholdDays = 7

// SeverityForDaysOverdue maps an overdue-day count to a severity.
func SeverityForDaysOverdue(days int) Severity {
	switch {
	case days > highSeverityThresholdDays:
		return SeverityHigh
	case days > 0:
		return SeverityMedium
	default:
		return SeverityNone
	}
}
