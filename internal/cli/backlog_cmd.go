package cli

import (
	"context"
	"fmt"

	"github.com/andrelbraga/maintkit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBacklogCmd(app *App) *cobra.Command {
	var dateFlag, planRef string

	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "Report due occurrences that were never materialized",
		Long: `Reports every occurrence that is due on or before the reference date but
has no work item. Read-only: run "generate run" to materialize the backlog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := resolveToday(app, dateFlag)
			if err != nil {
				return err
			}
			ctx := context.Background()

			if planRef != "" {
				pb, err := app.Backlog.AnalyzePlan(ctx, planRef, today)
				if err != nil {
					return err
				}
				if len(pb.Entries) == 0 {
					fmt.Printf("Plan %s has no backlog.\n", pb.PlanCode)
					return nil
				}
				headers := []string{"DUE DATE", "DAYS OVERDUE", "SEVERITY"}
				rows := make([][]string, 0, len(pb.Entries))
				for _, e := range pb.Entries {
					rows = append(rows, []string{
						e.Date.Format(dateLayout),
						fmt.Sprintf("%d", e.DaysOverdue),
						formatter.SeverityIndicator(e.Severity),
					})
				}
				fmt.Printf("%s\n%s\n", formatter.Bold(pb.PlanCode), formatter.RenderTable(headers, rows))
				return nil
			}

			report, err := app.Backlog.Analyze(ctx, today)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatBacklogReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Reference date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&planRef, "plan", "", "Analyze only this plan (code or ID)")
	return cmd
}
