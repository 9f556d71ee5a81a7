package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/domain"
)

const timelineBarWidth = 10

// FormatImportResult summarizes an import and lists every repair made.
func FormatImportResult(r *app.ImportResult, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %s: %d tasks", r.Variant, r.TaskCount)
	if len(r.Repairs) == 0 {
		b.WriteString(", no repairs\n")
		return b.String()
	}
	fmt.Fprintf(&b, ", %s\n", StyleYellow.Render(fmt.Sprintf("%d repairs", len(r.Repairs))))
	if verbose {
		for _, repair := range r.Repairs {
			b.WriteString(Dim("  - "+repair) + "\n")
		}
	}
	return b.String()
}

// FormatTimeline renders the task tree with dates, owners and progress.
// Actuals rows carry their baseline variance.
func FormatTimeline(resp *app.TimelineResponse) string {
	if len(resp.Rows) == 0 {
		return Dim("Plan has no tasks.") + "\n"
	}

	items := make([]TreeItem, len(resp.Rows))
	for i, row := range resp.Rows {
		t := row.Task
		detail := []string{
			fmt.Sprintf("%s → %s", DateOrDash(t.StartDate), DateOrDash(t.EndDate)),
			RenderProgress(row.Progress, timelineBarWidth),
		}
		if row.AutoProgress {
			detail[1] += Dim(" auto")
		}
		if t.Responsible != "" {
			detail = append(detail, StyleBlue.Render(t.Responsible))
		}
		if row.Variance != nil {
			detail = append(detail, varianceBadge(row.Variance.NewlyAdded, len(row.Variance.Changed)))
		}

		item := TreeItem{
			Title:     t.Name,
			Level:     row.Depth,
			IsLast:    lastSibling(resp.Rows, i),
			Progress:  row.Progress,
			Milestone: t.MilestoneType != domain.MilestoneTask && t.MilestoneType != "",
			Detail:    strings.Join(detail, "  "),
		}
		if item.Title == "" {
			item.Title = Dim(t.ID)
		}
		if row.InCycle {
			item.Warning = "⟲ cycle"
		}
		items[i] = item
	}

	var b strings.Builder
	title := "Timeline"
	if resp.Variant == domain.VariantActuals {
		title = "Actuals"
	}
	b.WriteString(Header(title) + "\n")
	if resp.Start != nil && resp.End != nil {
		b.WriteString(Dim(fmt.Sprintf("%s → %s", resp.Start.Format(domain.DateLayout), resp.End.Format(domain.DateLayout))) + "\n")
	}
	b.WriteString(RenderTree(items))
	if len(resp.Cycles) > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d dependency cycle group(s):", len(resp.Cycles))) + "\n")
		for _, c := range resp.Cycles {
			b.WriteString("  " + strings.Join(c, ", ") + "\n")
		}
	}
	return b.String()
}

// lastSibling reports whether no later row shares row i's parent.
func lastSibling(rows []app.TimelineRow, i int) bool {
	depth := rows[i].Depth
	for j := i + 1; j < len(rows); j++ {
		switch {
		case rows[j].Depth < depth:
			return true
		case rows[j].Depth == depth:
			return false
		}
	}
	return true
}

func varianceBadge(newlyAdded bool, changed int) string {
	switch {
	case newlyAdded:
		return StylePurple.Render("[new]")
	case changed > 0:
		return StyleYellow.Render(fmt.Sprintf("[Δ%d]", changed))
	default:
		return Dim("[=]")
	}
}
