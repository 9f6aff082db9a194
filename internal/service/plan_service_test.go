package service

import (
	"context"
	"testing"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/repository"
	"github.com/andrelbraga/maintkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanService(t *testing.T) (PlanService, *repository.SQLitePlanRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(database)
	items := repository.NewSQLiteWorkItemRepo(database)
	return NewPlanService(plans, items, nil), plans
}

func TestPlanCreate_FillsDefaults(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	p := &domain.Plan{
		Code:        "PM-DEFAULTS",
		Description: "bearing lubrication",
		Frequency:   "monthly",
	}
	require.NoError(t, svc.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.PlanActive, p.Status)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := svc.GetByRef(ctx, "PM-DEFAULTS")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestPlanCreate_RequiresCode(t *testing.T) {
	svc, _ := newPlanService(t)
	err := svc.Create(context.Background(), &domain.Plan{Description: "anonymous"})
	assert.Error(t, err)
}

func TestPlanCreate_RejectsDuplicateCode(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Plan{Code: "PM-DUP", Frequency: "weekly"}))
	err := svc.Create(ctx, &domain.Plan{Code: "PM-DUP", Frequency: "daily"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPlanCreate_TruncatesDatesToMidnightUTC(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	noisy := time.Date(2025, 6, 15, 14, 30, 45, 123, time.UTC)
	p := &domain.Plan{Code: "PM-DATES", Frequency: "weekly", StartDate: &noisy}
	require.NoError(t, svc.Create(ctx, p))

	got, err := svc.GetByRef(ctx, "PM-DATES")
	require.NoError(t, err)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *got.StartDate)
}

func TestPlanGetByRef_CodeThenID(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	p := &domain.Plan{Code: "PM-REF", Frequency: "weekly"}
	require.NoError(t, svc.Create(ctx, p))

	byCode, err := svc.GetByRef(ctx, "PM-REF")
	require.NoError(t, err)
	byID, err := svc.GetByRef(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, byCode.ID, byID.ID)

	_, err = svc.GetByRef(ctx, "no-such-plan")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanList_FiltersInactiveByDefault(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Plan{Code: "PM-A", Frequency: "weekly"}))
	require.NoError(t, svc.Create(ctx, &domain.Plan{Code: "PM-B", Frequency: "weekly"}))
	require.NoError(t, svc.Deactivate(ctx, "PM-B"))

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "PM-A", active[0].Code)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPlanDeactivate_MakesPlanIneligible(t *testing.T) {
	svc, plans := newPlanService(t)
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Create(ctx, &domain.Plan{
		Code: "PM-OFF", Frequency: "weekly", StartDate: &start,
	}))
	require.NoError(t, svc.Deactivate(ctx, "PM-OFF"))

	eligible, err := plans.ListEligible(ctx, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, eligible)

	got, err := svc.GetByRef(ctx, "PM-OFF")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanInactive, got.Status)
}

func TestPlanDelete_RemovesPlanAndCascadesItems(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	plans := repository.NewSQLitePlanRepo(database)
	items := repository.NewSQLiteWorkItemRepo(database)
	svc := NewPlanService(plans, items, nil)
	gen := NewGenerationService(plans, items, testutil.NewTestUoW(database), nil, 0, 0)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.Plan{Code: "PM-GONE", Frequency: "daily", StartDate: &start}
	require.NoError(t, svc.Create(ctx, p))

	_, err := gen.RunOne(ctx, "PM-GONE", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	count, err := items.CountByPlan(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.NoError(t, svc.Delete(ctx, "PM-GONE"))

	_, err = svc.GetByRef(ctx, "PM-GONE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	count, err = items.CountByPlan(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "deleting a plan removes its work items")
}
