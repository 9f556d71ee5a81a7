package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of the timeline tree.
type TreeItem struct {
	Title    string
	Level    int
	IsLast   bool
	Progress int
	// Milestone items render with a diamond instead of a bar.
	Milestone bool
	Detail    string
	Warning   string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Completed items get a green ✔ prefix and details are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	width := 0
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix.WriteString(treePipe)
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		marker := ""
		switch {
		case item.Milestone:
			marker = StylePurple.Render("◆ ")
		case item.Progress >= 100:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case item.Progress > 0:
			marker = StyleYellowBold.Render("▶ ")
		}
		contents[idx] = StyleDim.Render(prefix.String()) + marker + title
		width = max(width, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, item := range items {
		line := contents[idx]
		if item.Detail != "" || item.Warning != "" {
			line += strings.Repeat(" ", width-lipgloss.Width(line)) + "  " + item.Detail
			if item.Warning != "" {
				line += " " + StyleRed.Render(item.Warning)
			}
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}
