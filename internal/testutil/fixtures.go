package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/google/uuid"
)

var testPlanCodeCounter atomic.Int64

// PlanOption mutates a test plan fixture.
type PlanOption func(*domain.Plan)

func WithStartDate(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = &d
	}
}

func WithNoStartDate() PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = nil
	}
}

func WithEndDate(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.EndDate = &d
	}
}

func WithFrequency(label string) PlanOption {
	return func(p *domain.Plan) {
		p.Frequency = label
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
	}
}

func WithCode(code string) PlanOption {
	return func(p *domain.Plan) {
		p.Code = code
	}
}

// NewTestPlan builds a weekly active plan started a month before now; use
// WithStartDate to pin dates in deterministic tests.
func NewTestPlan(description string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	p := &domain.Plan{
		ID:          uuid.New().String(),
		Code:        fmt.Sprintf("PM-%03d", testPlanCodeCounter.Add(1)),
		Description: description,
		Status:      domain.PlanActive,
		StartDate:   &start,
		Frequency:   "weekly",
		Workshop:    "mechanical",
		CrewSize:    2,
		PersonHours: 4,
		Condition:   "stopped",
		SiteRef:     "site-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
