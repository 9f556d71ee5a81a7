package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/baseline"
)

// FormatReseedResult confirms a reseed.
func FormatReseedResult(r *app.ReseedResult) string {
	verb := "Seeded"
	if r.Replaced {
		verb = "Reseeded"
	}
	return fmt.Sprintf("%s actuals from plan: %d tasks\n", verb, r.TaskCount)
}

// FormatVariance lists each actuals task with the fields that moved away
// from its baseline, followed by per-field totals.
func FormatVariance(resp *app.VarianceResponse) string {
	if len(resp.Rows) == 0 {
		return Dim("Actuals have no tasks.") + "\n"
	}

	headers := []string{"TASK", "STATUS", "CHANGED"}
	rows := make([][]string, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		name := r.Name
		if name == "" {
			name = Dim(r.TaskID)
		}
		status, changed := Dim("unchanged"), Dim("--")
		switch {
		case r.NewlyAdded:
			status = StylePurple.Render("new")
		case len(r.Changed) > 0:
			status = StyleYellow.Render("changed")
			changed = joinFields(r.Changed)
		}
		rows = append(rows, []string{name, status, changed})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	s := resp.Summary
	fmt.Fprintf(&b, "%d tasks: %d unchanged, %d new, %d changed\n",
		s.Tasks, s.Unchanged, s.NewlyAdded, s.Tasks-s.Unchanged-s.NewlyAdded)
	for _, f := range baseline.Fields {
		if n := s.ByField[f]; n > 0 {
			b.WriteString(Dim(fmt.Sprintf("  %-17s %d", f, n)) + "\n")
		}
	}
	return RenderBox("Variance", strings.TrimRight(b.String(), "\n"))
}

func joinFields(fs []baseline.Field) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
