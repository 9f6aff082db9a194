package cli

import (
	"time"

	"github.com/andrelbraga/maintkit/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans      service.PlanService
	Generation service.GenerationService
	Backlog    service.BacklogService
	Import     service.ImportService

	// DaemonCron and DaemonTimezone configure the background trigger; see
	// the daemon command.
	DaemonCron     string
	DaemonTimezone string

	// Now returns the current time; commands derive their default "today"
	// from it. Overridable in tests.
	Now func() time.Time
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "maintkit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "maintkit",
		Short: "Recurring maintenance plan scheduler and work order generator",
	}

	root.AddCommand(
		newPlanCmd(app),
		newGenerateCmd(app),
		newBacklogCmd(app),
		newScheduleCmd(app),
		newDaemonCmd(app),
	)

	return root
}
