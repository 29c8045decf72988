package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/sap"
	"github.com/alexanderramin/provost/internal/standing"
)

// FormatStanding renders a term's academic standing decision.
func FormatStanding(r *standing.AcademicStandingResult) string {
	var b strings.Builder

	change := Dim("unchanged")
	if r.Changed {
		from := "none"
		if r.PreviousStanding != nil {
			from = humanize(string(*r.PreviousStanding))
		}
		change = StyleYellow.Render("changed from " + from)
	}

	pairs := []KV{
		{"Student", Bold(r.StudentID)},
		{"Term", r.TermID},
		{"Standing", StandingPill(r.Standing) + "  " + change},
		{"Reason", r.Reason},
		{"Thresholds", fmt.Sprintf("good %.2f, warning %.2f, probation %.2f", r.Thresholds.Good, r.Thresholds.Warning, r.Thresholds.Probation)},
		{"Probation terms", fmt.Sprintf("%d consecutive, %d total", r.ConsecutiveProbationTerms, r.TotalProbationTerms)},
		{"Suspensions", fmt.Sprintf("%d", r.TotalSuspensions)},
	}
	if r.SuspensionTerms > 0 {
		pairs = append(pairs, KV{"Suspended for", fmt.Sprintf("%d term(s)", r.SuspensionTerms)})
	}
	b.WriteString(RenderBox("Academic standing", strings.TrimRight(RenderKV(pairs), "\n")))
	b.WriteString("\n")

	if len(r.ActionItems) > 0 {
		b.WriteString("\n" + Header("Action items") + "\n")
		b.WriteString(Bullets(r.ActionItems, StyleBlue))
	}
	return b.String()
}

// FormatSap renders a satisfactory academic progress evaluation.
func FormatSap(r *sap.SapResult) string {
	var b strings.Builder

	aid := StyleRed.Render("not eligible")
	if r.EligibleForAid {
		aid = StyleGreen.Render("eligible")
	}

	timeframe := Dim("program length unknown")
	if r.Timeframe.MaxCredits > 0 {
		timeframe = fmt.Sprintf("%s of %s attempted (%s) %s",
			Credits(r.Timeframe.AttemptedCredits), Credits(r.Timeframe.MaxCredits),
			Ratio(r.Timeframe.UsageRatio), Check(r.Timeframe.Met))
	}

	pairs := []KV{
		{"Student", Bold(r.StudentID)},
		{"Term", r.TermID},
		{"Status", SapPill(r.Status)},
		{"Financial aid", aid},
		{"GPA", fmt.Sprintf("%s %s %s", GPA(r.GPA.Actual), Dim(fmt.Sprintf("(min %.2f)", r.GPA.Required)), Check(r.GPA.Met))},
		{"Pace", fmt.Sprintf("%s %s %s", Ratio(r.Pace.Actual), Dim("(min "+Ratio(r.Pace.Required)+")"), Check(r.Pace.Met))},
		{"Timeframe", timeframe},
		{"Reason", r.Reason},
	}
	b.WriteString(RenderBox("Satisfactory academic progress", strings.TrimRight(RenderKV(pairs), "\n")))
	b.WriteString("\n")

	if len(r.Recommendations) > 0 {
		b.WriteString("\n" + Header("Recommendations") + "\n")
		b.WriteString(Bullets(r.Recommendations, StyleBlue))
	}
	if len(r.Messages) > 0 {
		b.WriteString("\n" + Header("Notes") + "\n")
		b.WriteString(Bullets(r.Messages, StyleYellow))
	}
	return b.String()
}
