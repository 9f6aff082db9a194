package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andrelbraga/maintkit/internal/repository"
	"github.com/andrelbraga/maintkit/internal/service"
	"github.com/andrelbraga/maintkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration
// tests. The clock is pinned so date-sensitive commands are deterministic.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	planRepo := repository.NewSQLitePlanRepo(database)
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Plans:      service.NewPlanService(planRepo, itemRepo, nil),
		Generation: service.NewGenerationService(planRepo, itemRepo, uow, nil, 0, 0),
		Backlog:    service.NewBacklogService(planRepo, itemRepo, nil, 0),
		Import:     service.NewImportService(uow, nil),
		Now: func() time.Time {
			return time.Date(2025, 10, 6, 9, 30, 0, 0, time.UTC)
		},
	}
}

// executeCmd runs a cobra command and captures cobra's own output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestPlanAddAndList(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app,
		"plan", "add",
		"--code", "pm-100",
		"--desc", "weekly pump inspection",
		"--freq", "weekly",
		"--start", "2025-09-08",
		"--workshop", "mechanical",
		"--crew", "2",
		"--hours", "1.5",
	)
	require.NoError(t, err)

	plans, err := app.Plans.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "PM-100", plans[0].Code, "codes are stored uppercase")
	assert.Equal(t, 2, plans[0].CrewSize)

	_, err = executeCmd(t, app, "plan", "list")
	require.NoError(t, err)
}

func TestPlanAdd_RejectsBadDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-101", "--desc", "x", "--start", "08/09/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start date")
}

func TestGenerateRun_WholeBatch(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-102", "--desc", "filters", "--freq", "weekly",
		"--start", "2025-09-08")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "generate", "run", "--date", "2025-10-06")
	require.NoError(t, err)

	p, err := app.Plans.GetByRef(context.Background(), "PM-102")
	require.NoError(t, err)
	items, err := app.Plans.ListWorkItems(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestGenerateRun_SinglePlanDefaultsToToday(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-103", "--desc", "belts", "--freq", "weekly",
		"--start", "2025-09-29")
	require.NoError(t, err)

	// No --date: the pinned clock says 2025-10-06.
	_, err = executeCmd(t, app, "generate", "run", "--plan", "PM-103")
	require.NoError(t, err)

	p, err := app.Plans.GetByRef(context.Background(), "PM-103")
	require.NoError(t, err)
	items, err := app.Plans.ListWorkItems(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2) // Sep 29 and Oct 6
}

func TestGenerateRun_UnknownPlan(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "generate", "run", "--plan", "PM-NOPE")
	assert.Error(t, err)
}

func TestBacklogCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-104", "--desc", "greasing", "--freq", "weekly",
		"--start", "2025-09-08")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "backlog", "--date", "2025-10-06")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "backlog", "--plan", "PM-104", "--date", "2025-10-06")
	require.NoError(t, err)
}

func TestScheduleCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-105", "--desc", "alignment", "--freq", "monthly",
		"--start", "2025-10-01")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "schedule", "PM-105", "--date", "2025-10-06", "--days", "90")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "schedule", "PM-MISSING")
	assert.Error(t, err)
}

func TestPlanDeactivateCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-106", "--desc", "to pause", "--start", "2025-01-01")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "deactivate", "PM-106")
	require.NoError(t, err)

	plans, err := app.Plans.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanRemoveCmd_RequiresYesWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-107", "--desc", "to delete")
	require.NoError(t, err)

	// Test processes have no TTY on stdin, so the prompt path must refuse.
	_, err = executeCmd(t, app, "plan", "remove", "PM-107")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	_, err = executeCmd(t, app, "plan", "remove", "PM-107", "--yes")
	require.NoError(t, err)

	_, err = app.Plans.GetByRef(context.Background(), "PM-107")
	assert.Error(t, err)
}

func TestPlanImportCmd(t *testing.T) {
	app := testApp(t)

	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - code: PM-201
    description: imported plan
    frequency: semanal
    start_date: 2025-09-08
`), 0644))

	_, err := executeCmd(t, app, "plan", "import", path)
	require.NoError(t, err)

	p, err := app.Plans.GetByRef(context.Background(), "PM-201")
	require.NoError(t, err)
	assert.Equal(t, "semanal", p.Frequency)

	_, err = executeCmd(t, app, "plan", "import", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPlanInspectCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app,
		"plan", "add", "--code", "PM-108", "--desc", "inspectable", "--freq", "daily",
		"--start", "2025-10-04")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "generate", "run", "--date", "2025-10-06")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "inspect", "PM-108")
	require.NoError(t, err)
}
