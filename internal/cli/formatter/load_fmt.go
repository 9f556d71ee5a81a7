package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/domain"
)

// FormatOwnerLoad renders one owner's load per bucket, split between the
// selected initiative and all others.
func FormatOwnerLoad(resp *app.LoadResponse) string {
	if len(resp.Buckets) == 0 {
		return Dim(fmt.Sprintf("No scheduled work for %s.", resp.Owner)) + "\n"
	}

	headers := []string{"BUCKET", "DAYS", "THIS", "OTHER", "TOTAL", ""}
	rows := make([][]string, 0, len(resp.Buckets))
	for _, b := range resp.Buckets {
		rows = append(rows, []string{
			BucketLabel(b.Bucket.Start, resp.Unit),
			fmt.Sprint(b.Bucket.DayCount),
			FormatLoad(b.Own),
			FormatLoad(b.Other),
			LoadStyle(b.Total, resp.Threshold).Render(FormatLoad(b.Total)),
			OverloadIndicator(b.Overloaded),
		})
	}

	var b strings.Builder
	b.WriteString(RenderAlignedTable(headers, rows, []int{1, 2, 3, 4}))
	b.WriteString("\n")
	summary := fmt.Sprintf("%d of %d %s buckets over %s%% (%d other initiatives)",
		resp.OverloadedCount, len(resp.Buckets), resp.Unit, FormatLoad(resp.Threshold), resp.OtherInitiatives)
	if resp.OverloadedCount > 0 {
		b.WriteString(StyleRed.Render(summary))
	} else {
		b.WriteString(StyleGreen.Render(summary))
	}
	return RenderBox("Load · "+resp.Owner, b.String())
}

const heatCellWidth = 7

// FormatHeatmap renders one row per owner with a colored cell per bucket.
func FormatHeatmap(resp *app.HeatmapResponse) string {
	if len(resp.Rows) == 0 || len(resp.Buckets) == 0 {
		return Dim("No assigned work in active initiatives.") + "\n"
	}

	ownerWidth := len("OWNER")
	for _, r := range resp.Rows {
		ownerWidth = max(ownerWidth, lipgloss.Width(r.Owner))
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(pad("OWNER", ownerWidth)))
	for _, bucket := range resp.Buckets {
		b.WriteString(" " + StyleHeader.Render(padLeft(BucketLabel(bucket.Start, resp.Unit), heatCellWidth)))
	}
	b.WriteString(" " + StyleHeader.Render(padLeft("PEAK", heatCellWidth)) + "\n")

	for _, r := range resp.Rows {
		b.WriteString(pad(r.Owner, ownerWidth))
		for _, v := range r.Load {
			b.WriteString(" " + HeatCell(v, resp.Threshold))
		}
		b.WriteString(" " + LoadStyle(r.Peak, resp.Threshold).Render(padLeft(FormatLoad(r.Peak), heatCellWidth)) + "\n")
	}
	b.WriteString(Dim(fmt.Sprintf("%d owners across %d initiatives, %s buckets", len(resp.Rows), resp.Initiatives, unitName(resp.Unit))))
	return RenderBox("Capacity heatmap", b.String())
}

// HeatCell renders a single load value at the fixed heatmap cell width.
func HeatCell(v, threshold float64) string {
	text := FormatLoad(v)
	if v <= 0 {
		text = "·"
	}
	return LoadStyle(v, threshold).Render(padLeft(text, heatCellWidth))
}

func unitName(u domain.GroupUnit) string {
	if u == "" {
		return string(domain.GroupWeek)
	}
	return string(u)
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(width-lipgloss.Width(s), 0)) + s
}
