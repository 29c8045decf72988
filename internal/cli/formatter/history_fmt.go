package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/domain"
)

// FormatHistory renders a student's enrollments, recorded standing and SAP
// terms, and conferred degrees.
func FormatHistory(h *app.StudentHistory) string {
	var b strings.Builder
	b.WriteString(Header(h.Student.Name) + "  " + TruncID(h.Student.ID) + "\n\n")

	if len(h.Programs) > 0 {
		rows := make([][]string, 0, len(h.Programs))
		for _, p := range h.Programs {
			rows = append(rows, []string{TruncID(p.ID), p.ProgramID, humanize(string(p.Status))})
		}
		b.WriteString(RenderTable([]string{"ENROLLMENT", "PROGRAM", "STATUS"}, rows) + "\n")
	}

	if len(h.Standing) == 0 {
		b.WriteString(Dim("No standing evaluations recorded.") + "\n")
	} else {
		rows := make([][]string, 0, len(h.Standing))
		for _, e := range h.Standing {
			rows = append(rows, []string{
				e.TermID,
				StandingPill(e.Standing),
				fmt.Sprintf("%.2f", e.CumulativeGPA),
				fmt.Sprintf("%d/%d", e.ConsecutiveProbationTerms, e.TotalProbationTerms),
				fmt.Sprintf("%d", e.TotalSuspensions),
			})
		}
		b.WriteString(RenderTable([]string{"TERM", "STANDING", "GPA", "PROBATION", "SUSPENSIONS"}, rows))
	}
	b.WriteString("\n")

	if len(h.Sap) == 0 {
		b.WriteString(Dim("No SAP evaluations recorded.") + "\n")
	} else {
		rows := make([][]string, 0, len(h.Sap))
		for _, e := range h.Sap {
			rows = append(rows, []string{
				e.TermID,
				SapPill(e.Status),
				Check(e.EligibleForAid),
				fmt.Sprintf("%s/%s", Credits(e.EarnedCredits), Credits(e.AttemptedCredits)),
			})
		}
		b.WriteString(RenderTable([]string{"TERM", "SAP", "AID", "EARNED"}, rows))
	}

	for _, c := range h.Conferrals {
		b.WriteString("\n" + StyleGreen.Render("✔ Degree conferred ") + HumanDate(c.ConferredAt) + "  " + HonorsBadge(c.Honors) + "\n")
	}
	return b.String()
}

// FormatStudents lists stored students.
func FormatStudents(students []*domain.Student) string {
	if len(students) == 0 {
		return Dim("No students imported.") + "\n"
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{s.ID, Bold(s.Name), s.Email})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL"}, rows)
}

// FormatImportStudent summarizes a student record import.
func FormatImportStudent(r *app.ImportStudentResult) string {
	verb := "Updated"
	if r.Created {
		verb = "Imported"
	}
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ "+verb) + " " + Bold(r.Student.Name) + " " + Dim("("+r.Student.ID+")") + "\n")
	b.WriteString(RenderKV([]KV{
		{"Courses", fmt.Sprintf("%d", r.CourseCount)},
		{"Holds", fmt.Sprintf("%d", r.HoldCount)},
		{"Milestones", fmt.Sprintf("%d", r.MilestoneCount)},
		{"History terms", fmt.Sprintf("%d", r.HistoryCount)},
	}))
	for _, sp := range r.Enrollments {
		b.WriteString(Dim("enrollment ") + sp.ID + " " + humanize(string(sp.Status)) + "\n")
	}
	return b.String()
}

// FormatImportProgram summarizes a program definition import.
func FormatImportProgram(r *app.ImportProgramResult) string {
	verb := "Updated"
	if r.Created {
		verb = "Imported"
	}
	return fmt.Sprintf("%s %s %s\n%s",
		StyleGreen.Render("✔ "+verb),
		Bold(r.Program.Code),
		r.Program.Name,
		RenderKV([]KV{
			{"Total credits", Credits(r.Program.TotalCreditsRequired)},
			{"Requirements", fmt.Sprintf("%d", r.RequirementCount)},
			{"Course groups", fmt.Sprintf("%d", r.GroupCount)},
		}))
}
