package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/app"
)

// FormatBatch renders a batch run as one row per student. outcome renders a
// successful result's cell; failures show their error.
func FormatBatch[T any](title string, r *app.BatchResult[T], outcome func(*T) string) string {
	var b strings.Builder
	b.WriteString(Header(title) + "  " + TruncID(r.RunID) + "\n\n")

	rows := make([][]string, 0, len(r.Items))
	for _, item := range r.Items {
		cell := StyleRed.Render("✖ " + item.Error)
		if item.Result != nil {
			cell = outcome(item.Result)
		}
		rows = append(rows, []string{Dim(fmt.Sprintf("%d", item.Index+1)), item.StudentID, cell})
	}
	b.WriteString(RenderTable([]string{"#", "STUDENT", "RESULT"}, rows))

	b.WriteString("\n")
	b.WriteString(StyleGreen.Render(fmt.Sprintf("%d succeeded", r.Succeeded)))
	b.WriteString(Dim("  ·  "))
	failed := fmt.Sprintf("%d failed", r.Failed)
	if r.Failed > 0 {
		b.WriteString(StyleRed.Render(failed))
	} else {
		b.WriteString(Dim(failed))
	}
	b.WriteString("\n")

	if statuses := r.Statuses(); len(statuses) > 0 {
		parts := make([]string, len(statuses))
		for i, s := range statuses {
			parts[i] = fmt.Sprintf("%s %d", humanize(s), r.StatusCounts[s])
		}
		b.WriteString(Dim(strings.Join(parts, ", ")) + "\n")
	}
	return b.String()
}
