package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/graduation"
)

// FormatGraduation renders an eligibility check with its blockers grouped
// by category.
func FormatGraduation(r *app.GraduationReport) string {
	var b strings.Builder
	b.WriteString(RenderBox("Graduation eligibility", strings.TrimRight(RenderKV(graduationPairs(r)), "\n")))
	b.WriteString("\n")
	b.WriteString(formatIssues(r.Result))
	return b.String()
}

// FormatConferral renders a conferral check, the honors it would carry and
// the recorded degree when there is one.
func FormatConferral(r *app.ConferralReport) string {
	var b strings.Builder
	pairs := graduationPairs(&r.GraduationReport)
	pairs = append(pairs, KV{"Honors", HonorsBadge(r.Honors.Designation)})
	if r.Conferral != nil {
		pairs = append(pairs, KV{"Conferred", StyleGreen.Render(HumanDate(r.Conferral.ConferredAt)) + " " + TruncID(r.Conferral.ID)})
	}
	b.WriteString(RenderBox("Degree conferral", strings.TrimRight(RenderKV(pairs), "\n")))
	b.WriteString("\n")
	b.WriteString(formatIssues(r.Result))
	return b.String()
}

// FormatHonors renders a Latin honors determination.
func FormatHonors(r *graduation.LatinHonorsResult) string {
	pairs := []KV{
		{"Student", Bold(r.StudentID)},
		{"Designation", HonorsBadge(r.Designation)},
		{"GPA", GPA(r.GPA) + " " + Dim("("+string(r.GPABasis)+")")},
	}
	if r.Reason != "" {
		pairs = append(pairs, KV{"Reason", r.Reason})
	}
	return RenderBox("Latin honors", strings.TrimRight(RenderKV(pairs), "\n")) + "\n"
}

func graduationPairs(r *app.GraduationReport) []KV {
	verdict := StyleRed.Render("✖ Not eligible")
	if r.Result.IsEligible {
		verdict = StyleGreen.Render("✔ Eligible")
	}
	return []KV{
		{"Student", Bold(r.StudentID)},
		{"Program", r.ProgramCode},
		{"Result", verdict},
		{"Audit", fmt.Sprintf("%.2f%% (%d/%d requirements)", r.Audit.CompletionPercentage, r.Audit.RequirementsComplete, r.Audit.RequirementsTotal)},
		{"Credits", fmt.Sprintf("%s earned, %s institutional", Credits(r.Summary.EarnedCredits), Credits(r.Summary.InstitutionalCredits))},
		{"GPA", GPA(r.Summary.CumulativeGPA)},
		{"Checks", fmt.Sprintf("academic %s  administrative %s  data %s",
			Check(r.Result.AcademicMet), Check(r.Result.AdministrativeMet), Check(r.Result.DataValid))},
	}
}

func formatIssues(r graduation.GraduationValidationResult) string {
	var b strings.Builder
	if len(r.Blockers) > 0 {
		b.WriteString("\n" + Header("Blockers") + "\n")
		b.WriteString(Bullets(issueLines(r.Blockers), StyleRed))
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n" + Header("Warnings") + "\n")
		b.WriteString(Bullets(issueLines(r.Warnings), StyleYellow))
	}
	return b.String()
}

func issueLines(issues []graduation.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = fmt.Sprintf("%s %s %s", Dim(string(issue.Category)), Bold(string(issue.Code)), issue.Message)
	}
	return out
}
