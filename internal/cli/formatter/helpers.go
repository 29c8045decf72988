package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Check renders a met/unmet marker.
func Check(met bool) string {
	if met {
		return StyleGreen.Render("✔")
	}
	return StyleRed.Render("✖")
}

// GPA formats an optional GPA to two decimals.
func GPA(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%.2f", *v)
}

// Credits formats a credit count, dropping a zero fraction.
func Credits(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// CreditsOf renders "earned/required", or just earned when nothing is required.
func CreditsOf(earned, required float64) string {
	if required <= 0 {
		return Credits(earned)
	}
	return Credits(earned) + "/" + Credits(required)
}

// Ratio formats a 0..1 ratio as a percentage.
func Ratio(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// HumanDate renders a recorded timestamp as a calendar date.
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	return t.Format("Jan 2, 2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Bullets renders each line as an indented bullet in the given style.
func Bullets(lines []string, style lipgloss.Style) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("  " + style.Render("•") + " " + l + "\n")
	}
	return b.String()
}
