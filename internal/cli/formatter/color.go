package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StandingPill renders an academic standing with its severity color.
func StandingPill(s domain.Standing) string {
	label := humanize(string(s))
	switch s {
	case domain.StandingGood, domain.StandingReinstated:
		return StyleGreen.Render("● " + label)
	case domain.StandingWarning:
		return StyleYellow.Render("● " + label)
	case domain.StandingProbation:
		return StyleYellowBold.Render("▲ " + label)
	case domain.StandingSuspension, domain.StandingDismissal:
		return StyleRed.Render("✖ " + label)
	default:
		return StyleDim.Render(label)
	}
}

// SapPill renders a SAP status with its severity color.
func SapPill(s domain.SapStatus) string {
	label := humanize(string(s))
	switch s {
	case domain.SapSatisfactory:
		return StyleGreen.Render("● " + label)
	case domain.SapWarning, domain.SapProbation, domain.SapAcademicPlan:
		return StyleYellow.Render("▲ " + label)
	case domain.SapSuspension, domain.SapIneligible:
		return StyleRed.Render("✖ " + label)
	default:
		return StyleDim.Render(label)
	}
}

// RequirementPill renders a requirement or audit status.
func RequirementPill(status string) string {
	label := humanize(status)
	switch status {
	case string(domain.RequirementComplete):
		return StyleGreen.Render("✔ " + label)
	case string(domain.RequirementInProgress):
		return StyleYellow.Render("▶ " + label)
	case string(domain.RequirementNotStarted):
		return StyleDim.Render("○ " + label)
	default:
		return StyleRed.Render("○ " + label)
	}
}

// HonorsBadge renders a Latin honors designation, dim when there is none.
func HonorsBadge(h domain.HonorsDesignation) string {
	if h == "" || h == domain.HonorsNone {
		return StyleDim.Render("no honors")
	}
	return StylePurple.Render(strings.ReplaceAll(string(h), "_", " "))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// humanize turns a snake_case enum value into "Title case".
func humanize(s string) string {
	if s == "" {
		return "--"
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
