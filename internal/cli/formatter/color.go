package formatter

import (
	"fmt"
	"strings"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColors swaps every style for an unstyled one. Called when stdout is
// not a terminal so piped output stays clean.
func DisableColors() {
	plain := lipgloss.NewStyle()
	StyleGreen = plain
	StyleYellow = plain
	StyleRed = plain
	StyleBlue = plain
	StyleDim = plain
	StyleFg = plain
	StyleHeader = plain
	StyleBold = plain
}

// SeverityIndicator returns a colored marker such as "● HIGH".
func SeverityIndicator(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return StyleRed.Render("● HIGH")
	case domain.SeverityMedium:
		return StyleYellow.Render("● MEDIUM")
	default:
		return StyleDim.Render("● NONE")
	}
}

// StatusIndicator colors a plan status.
func StatusIndicator(s domain.PlanStatus) string {
	switch s {
	case domain.PlanActive:
		return StyleGreen.Render("active")
	case domain.PlanInactive:
		return StyleDim.Render("inactive")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
