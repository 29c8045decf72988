package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/audit"
	"github.com/alexanderramin/provost/internal/domain"
)

const auditProgressBarWidth = 20

// FormatAudit renders a degree audit: overall progress, a requirement tree
// with its groups, then what is still missing.
func FormatAudit(r *app.AuditReport) string {
	a := r.Audit
	var b strings.Builder

	title := a.ProgramID
	if r.Program != nil {
		title = r.Program.Code + " " + r.Program.Name
	}
	name := a.StudentID
	if r.Student != nil {
		name = r.Student.Name
	}

	summary := RenderKV([]KV{
		{"Student", Bold(name)},
		{"Status", RequirementPill(string(a.Status))},
		{"Completion", RenderProgress(a.CompletionPercentage, auditProgressBarWidth)},
		{"Credits", CreditsOf(a.TotalCreditsEarned, a.TotalCreditsRequired) + inProgressNote(a.TotalCreditsInProgress)},
		{"Requirements", fmt.Sprintf("%d/%d complete", a.RequirementsComplete, a.RequirementsTotal)},
		{"Overall GPA", gpaAgainst(a.OverallGPA, a.OverallGPARequired, a.OverallGPAMet)},
		{"Major GPA", gpaAgainst(a.MajorGPA, a.MajorGPARequired, a.MajorGPAMet)},
	})
	b.WriteString(RenderBox(title, strings.TrimRight(summary, "\n")))
	b.WriteString("\n\n")

	b.WriteString(Header("Requirements") + "\n")
	b.WriteString(RenderTree(requirementTree(a.Requirements)))

	if missing := missingLines(a.Requirements); len(missing) > 0 {
		b.WriteString("\n" + Header("Still needed") + "\n")
		b.WriteString(Bullets(missing, StyleRed))
	}
	if len(a.Messages) > 0 {
		b.WriteString("\n" + Header("Notes") + "\n")
		b.WriteString(FormatMessages(a.Messages))
	}
	return b.String()
}

func requirementTree(reqs []audit.RequirementAuditResult) []TreeItem {
	var items []TreeItem
	for _, req := range reqs {
		items = append(items, TreeItem{
			Title:  req.RequirementName,
			Status: string(req.Status),
			Detail: CreditsOf(req.CreditsEarned, req.CreditsRequired) + " cr",
		})
		for i, g := range req.Groups {
			status := string(domain.RequirementIncomplete)
			if g.Satisfied {
				status = string(domain.RequirementComplete)
			} else if g.CoursesInProgress > 0 {
				status = string(domain.RequirementInProgress)
			}
			items = append(items, TreeItem{
				Title:  g.Name,
				Level:  1,
				IsLast: i == len(req.Groups)-1,
				Status: status,
				Detail: CreditsOf(g.CreditsEarned, g.CreditsRequired) + " cr",
			})
		}
	}
	return items
}

func missingLines(reqs []audit.RequirementAuditResult) []string {
	var out []string
	for _, req := range reqs {
		for _, m := range req.MissingCourses {
			label := m.CourseCode
			if label == "" {
				label = m.CourseID
			}
			if label == "" {
				label = m.GroupID
			}
			line := fmt.Sprintf("%s: %s", req.RequirementName, m.Reason)
			if label != "" {
				line = fmt.Sprintf("%s: %s %s", req.RequirementName, Bold(label), Dim(m.Reason))
			}
			out = append(out, line)
		}
	}
	return out
}

// FormatMessages renders audit messages colored by level.
func FormatMessages(msgs []audit.AuditMessage) string {
	var b strings.Builder
	for _, m := range msgs {
		style := StyleBlue
		switch m.Level {
		case domain.MessageWarning:
			style = StyleYellow
		case domain.MessageError:
			style = StyleRed
		}
		b.WriteString("  " + style.Render(strings.ToUpper(string(m.Level))) + " " + m.Message + "\n")
	}
	return b.String()
}

func gpaAgainst(actual, required *float64, met bool) string {
	if required == nil {
		return GPA(actual)
	}
	return fmt.Sprintf("%s %s %s", GPA(actual), Dim(fmt.Sprintf("(min %.2f)", *required)), Check(met))
}

func inProgressNote(credits float64) string {
	if credits <= 0 {
		return ""
	}
	return Dim(fmt.Sprintf(" (+%s in progress)", Credits(credits)))
}
