package formatter

import (
	"fmt"
	"strings"

	"github.com/andrelbraga/maintkit/internal/service"
)

// FormatRunReport renders a generation run summary with per-plan detail.
func FormatRunReport(report *service.RunReport) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Generation run — %s", report.Today.Format(dateLayout))))
	b.WriteString("\n\n")

	headers := []string{"PLAN", "RESULT", "CREATED", "EXISTING", "ERRORS"}
	rows := make([][]string, 0, len(report.PerPlan))
	for i := range report.PerPlan {
		pr := &report.PerPlan[i]
		rows = append(rows, []string{
			Bold(pr.PlanCode),
			planRunLabel(pr),
			fmt.Sprintf("%d", pr.Created),
			Dim(fmt.Sprintf("%d", pr.AlreadyExisting)),
			errorCount(len(pr.Errors)),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %d plans, %s created, %s existing",
		Dim("Totals:"),
		report.PlansProcessed,
		StyleGreen.Render(fmt.Sprintf("%d", report.ItemsCreated)),
		Dim(fmt.Sprintf("%d", report.ItemsAlreadyExisting)),
	))
	if report.Errors > 0 {
		b.WriteString(", " + StyleRed.Render(fmt.Sprintf("%d errors", report.Errors)))
	}
	if report.FrequencyFallbacks > 0 {
		b.WriteString(", " + StyleYellow.Render(
			fmt.Sprintf("%d plans with unrecognized frequency", report.FrequencyFallbacks)))
	}
	return b.String()
}

func planRunLabel(pr *service.PlanRunResult) string {
	if !pr.Eligible {
		return StyleDim.Render(fmt.Sprintf("skipped (%s)", strings.ToLower(string(pr.Reason))))
	}
	if pr.Failed() {
		return StyleRed.Render("failed")
	}
	if pr.Created > 0 {
		return StyleGreen.Render("generated")
	}
	return Dim("up to date")
}

func errorCount(n int) string {
	if n == 0 {
		return Dim("0")
	}
	return StyleRed.Render(fmt.Sprintf("%d", n))
}

// FormatPlanRunResult renders the outcome of generating a single plan.
func FormatPlanRunResult(pr *service.PlanRunResult) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Plan %s", pr.PlanCode)))
	b.WriteString("\n\n")

	if !pr.Eligible {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("Not eligible: %s", pr.Reason)))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Occurrences due: %d\n", pr.OccurrencesDue))
	b.WriteString(fmt.Sprintf("Created:         %s\n", StyleGreen.Render(fmt.Sprintf("%d", pr.Created))))
	b.WriteString(fmt.Sprintf("Already present: %d", pr.AlreadyExisting))
	if pr.FrequencyFallback {
		b.WriteString("\n" + StyleYellow.Render("Frequency label unrecognized; generated weekly."))
	}
	for _, e := range pr.Errors {
		b.WriteString("\n" + StyleRed.Render("error: "+e))
	}
	return b.String()
}

// FormatBacklogReport renders the pendency report grouped by plan.
func FormatBacklogReport(report *service.BacklogReport) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Backlog — %s", report.Today.Format(dateLayout))))
	b.WriteString("\n\n")

	if report.TotalOverdue == 0 {
		b.WriteString(StyleGreen.Render("No overdue occurrences. All plans are up to date."))
		return b.String()
	}

	for pi := range report.Plans {
		pb := &report.Plans[pi]
		b.WriteString(Bold(pb.PlanCode))
		b.WriteString(Dim(fmt.Sprintf("  %d overdue\n", pb.TotalOverdue)))

		headers := []string{"DUE DATE", "DAYS OVERDUE", "SEVERITY"}
		rows := make([][]string, 0, len(pb.Entries))
		for _, e := range pb.Entries {
			rows = append(rows, []string{
				formatDate(e.Date),
				fmt.Sprintf("%d", e.DaysOverdue),
				SeverityIndicator(e.Severity),
			})
		}
		b.WriteString(RenderTable(headers, rows))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%s %d overdue across %d plans",
		Dim("Totals:"), report.TotalOverdue, len(report.Plans)))
	if report.HighSeverity > 0 {
		b.WriteString(", " + StyleRed.Render(fmt.Sprintf("%d high severity", report.HighSeverity)))
	}
	return b.String()
}
