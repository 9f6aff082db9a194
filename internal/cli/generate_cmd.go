package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andrelbraga/maintkit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// resolveToday turns the optional --date flag into the run's reference date,
// defaulting to the current local date.
func resolveToday(app *App, dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		now := app.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, dateFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", dateFlag, err)
	}
	return d, nil
}

func newGenerateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate work items from maintenance plans",
	}
	cmd.AddCommand(newGenerateRunCmd(app))
	return cmd
}

func newGenerateRunCmd(app *App) *cobra.Command {
	var dateFlag, planRef string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Materialize all due occurrences as open work items",
		Long: `Materializes every due occurrence of every eligible plan as an open work
item. Safe to re-run: occurrences that already have a work item are left
untouched, and future occurrences are never created ahead of time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := resolveToday(app, dateFlag)
			if err != nil {
				return err
			}
			ctx := context.Background()

			if planRef != "" {
				result, err := app.Generation.RunOne(ctx, planRef, today)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n", formatter.FormatPlanRunResult(result))
				return nil
			}

			report, err := app.Generation.RunAll(ctx, today)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatRunReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date for the run (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&planRef, "plan", "", "Generate only this plan (code or ID)")
	return cmd
}
