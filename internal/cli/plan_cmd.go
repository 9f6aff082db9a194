package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andrelbraga/maintkit/internal/cli/formatter"
	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q (want YYYY-MM-DD): %w", name, value, err)
	}
	return &d, nil
}

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage maintenance plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanInspectCmd(app),
		newPlanImportCmd(app),
		newPlanDeactivateCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var code, description, freq, start, end, workshop, condition, site string
	var crew int
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new maintenance plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}

			p := &domain.Plan{
				Code:        strings.ToUpper(code),
				Description: description,
				Frequency:   freq,
				StartDate:   startDate,
				EndDate:     endDate,
				Workshop:    workshop,
				CrewSize:    crew,
				PersonHours: hours,
				Condition:   condition,
				SiteRef:     site,
			}
			if err := app.Plans.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created plan %s (%s)\n", p.Code, formatter.FrequencyLabel(p.Frequency))
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Plan code (e.g. PM-1042)")
	cmd.Flags().StringVar(&description, "desc", "", "Plan description")
	cmd.Flags().StringVar(&freq, "freq", "weekly", "Frequency (daily, weekly, biweekly, monthly, bimonthly, quarterly, semiannual, annual)")
	cmd.Flags().StringVar(&start, "start", "", "First occurrence date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Expiry date, exclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&workshop, "workshop", "", "Executing workshop")
	cmd.Flags().IntVar(&crew, "crew", 0, "Crew size")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Person-hours per execution")
	cmd.Flags().StringVar(&condition, "condition", "", "Equipment condition required (e.g. stopped, running)")
	cmd.Flags().StringVar(&site, "site", "", "Site or equipment reference")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("desc")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maintenance plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatPlanList(plans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive plans")
	return cmd
}

func newPlanInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <plan>",
		Short: "Show one plan and its generated work items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.GetByRef(ctx, args[0])
			if err != nil {
				return err
			}
			items, err := app.Plans.ListWorkItems(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatPlanInspect(p, items))
			return nil
		},
	}
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create plans in bulk from a YAML file",
		Long: `Imports every plan in the file inside a single transaction: if any plan is
invalid or already exists, nothing is created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				fmt.Printf("%s\n", formatter.Dim("warning: "+w))
			}
			fmt.Printf("Imported %d plans from %s\n", result.Created, args[0])
			return nil
		},
	}
}

func newPlanDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <plan>",
		Short: "Deactivate a plan so it stops generating work items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.Deactivate(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deactivated plan %s\n", args[0])
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <plan>",
		Short: "Delete a plan and all its work items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.GetByRef(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
					return fmt.Errorf("refusing to delete %s without --yes in non-interactive mode", p.Code)
				}
				fmt.Printf("Delete plan %s and all its work items? [y/N] ", p.Code)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Plans.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted plan %s\n", p.Code)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
