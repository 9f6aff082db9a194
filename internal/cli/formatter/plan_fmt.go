package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/recurrence"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatNullableDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(dateLayout)
}

// FrequencyLabel shows the stored label, flagging unrecognized ones that will
// generate on the weekly fallback cadence.
func FrequencyLabel(label string) string {
	freq, info := recurrence.NormalizeFrequency(label)
	if info.Fallback {
		return StyleYellow.Render(fmt.Sprintf("%s (unrecognized, treated as weekly)", label))
	}
	if strings.EqualFold(label, string(freq)) {
		return string(freq)
	}
	return fmt.Sprintf("%s (%s)", string(freq), label)
}

// FormatPlanList renders the plan table.
func FormatPlanList(plans []*domain.Plan) string {
	headers := []string{"CODE", "DESCRIPTION", "FREQUENCY", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			Bold(p.Code),
			p.Description,
			FrequencyLabel(p.Frequency),
			StatusIndicator(p.Status),
			formatNullableDate(p.StartDate),
			formatNullableDate(p.EndDate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatPlanInspect renders one plan in full, with its most recent work items.
func FormatPlanInspect(p *domain.Plan, items []*domain.WorkItem) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s — %s", p.Code, p.Description)))
	b.WriteString("\n\n")

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-13s", name+":")), value))
	}
	field("Status", StatusIndicator(p.Status))
	field("Frequency", FrequencyLabel(p.Frequency))
	field("Start", formatNullableDate(p.StartDate))
	field("End", formatNullableDate(p.EndDate))
	if p.Workshop != "" {
		field("Workshop", p.Workshop)
	}
	if p.CrewSize > 0 {
		field("Crew", fmt.Sprintf("%d × %.1fh", p.CrewSize, p.PersonHours))
	}
	if p.Condition != "" {
		field("Condition", p.Condition)
	}
	if p.SiteRef != "" {
		field("Site", p.SiteRef)
	}

	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(Dim("No work items generated yet."))
		return b.String()
	}

	headers := []string{"SEQ", "DATE", "STATUS", "NEXT"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Seq),
			formatDate(item.ScheduledDate),
			workItemStatus(item.Status),
			formatNullableDate(item.NextDate),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func workItemStatus(s domain.WorkItemStatus) string {
	switch s {
	case domain.WorkItemOpen:
		return StyleBlue.Render("open")
	case domain.WorkItemDone:
		return StyleGreen.Render("done")
	case domain.WorkItemCanceled:
		return StyleDim.Render("canceled")
	default:
		return string(s)
	}
}

// FormatSchedule renders a projected occurrence calendar.
func FormatSchedule(planCode string, dates []time.Time, today time.Time) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Schedule for %s", planCode)))
	b.WriteString("\n\n")

	if len(dates) == 0 {
		b.WriteString(Dim("No occurrences in the requested window."))
		return b.String()
	}

	for i, d := range dates {
		line := fmt.Sprintf("%3d. %s", i+1, formatDate(d))
		if d.Before(today) {
			line += Dim("  (past due)")
		} else if d.Equal(today) {
			line += StyleYellow.Render("  (today)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
