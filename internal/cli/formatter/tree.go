package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Status is a requirement status; complete lines are dimmed with a check
	// and in-progress lines are highlighted.
	Status string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors
// and right-aligned detail badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type line struct {
		content string
		badge   string
	}
	lines := make([]line, len(items))
	widest := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		marker := ""
		switch strings.ToLower(item.Status) {
		case "complete", "completed":
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case "in_progress":
			marker = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case "incomplete", "not_started":
			marker = StyleRed.Render("○ ")
		}

		lines[idx].content = prefix + marker + title
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		widest = max(widest, lipgloss.Width(lines[idx].content))
	}

	var b strings.Builder
	for _, l := range lines {
		if l.badge == "" {
			b.WriteString(l.content + "\n")
			continue
		}
		pad := widest - lipgloss.Width(l.content)
		b.WriteString(l.content + strings.Repeat(" ", pad) + "  " + l.badge + "\n")
	}
	return b.String()
}
