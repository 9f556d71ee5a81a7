package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// StatusPill returns a colored status indicator for an initiative.
func StatusPill(status domain.InitiativeStatus) string {
	switch status {
	case domain.InitiativeActive:
		return StyleGreen.Render("● Active")
	case domain.InitiativePaused:
		return StyleYellow.Render("○ Paused")
	case domain.InitiativeDone:
		return StyleDim.Render("✔ Done")
	case domain.InitiativeArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateOrDash formats an optional calendar day.
func DateOrDash(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// FormatLoad renders a capacity value with at most one decimal.
func FormatLoad(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// BucketLabel names a bucket by its first day in a unit-appropriate way.
func BucketLabel(start time.Time, unit domain.GroupUnit) string {
	switch unit {
	case domain.GroupMonth:
		return start.Format("Jan 2006")
	case domain.GroupQuarter:
		return "Q" + strconv.Itoa((int(start.Month())-1)/3+1) + " " + strconv.Itoa(start.Year())
	default:
		return start.Format("Jan 02")
	}
}
