package formatter

import (
	"strings"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// FormatInitiativeList renders initiatives inside a bordered box.
func FormatInitiativeList(initiatives []*domain.Initiative) string {
	headers := []string{"ID", "NAME", "STAGE", "STATUS", "CREATED"}
	rows := make([][]string, 0, len(initiatives))
	for _, i := range initiatives {
		id := i.DisplayID()
		if strings.TrimSpace(id) == "" {
			id = "--"
		}
		stage := Dim("--")
		if i.Stage != "" {
			stage = StylePurple.Render(i.Stage)
		}
		rows = append(rows, []string{
			id,
			Bold(i.Name),
			stage,
			StatusPill(i.Status),
			i.CreatedAt.Format(domain.DateLayout),
		})
	}
	return RenderBox("Initiatives", RenderTable(headers, rows))
}
