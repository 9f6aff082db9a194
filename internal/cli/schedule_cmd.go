package cli

import (
	"context"
	"fmt"

	"github.com/andrelbraga/maintkit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var dateFlag string
	var days int

	cmd := &cobra.Command{
		Use:   "schedule <plan>",
		Short: "Preview a plan's occurrence calendar",
		Long: `Projects a plan's occurrence dates from its start date up to the horizon,
without creating anything. Useful to check what a frequency or end date
actually means before the generator runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := resolveToday(app, dateFlag)
			if err != nil {
				return err
			}

			ctx := context.Background()
			dates, err := app.Generation.ProjectSchedule(ctx, args[0], today, days)
			if err != nil {
				return err
			}

			p, err := app.Plans.GetByRef(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSchedule(p.Code, dates, today))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Horizon in days past the reference date (default from config)")
	return cmd
}
