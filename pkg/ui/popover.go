package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// RenderDataPointDetails draws the detail popover for p at the given outer
// width. The "All Values" section lists p.Values(), which never repeats the
// time or variable header fields.
func RenderDataPointDetails(p model.DataPoint, width int, t Theme) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	row := func(label, value string) string {
		return t.SubtleText.Render(padRight(label, 15)) + value
	}

	title := t.Title.Render("Data Point Details")
	closeHint := t.MutedText.Render("esc ✕")
	gap := inner - lipgloss.Width(title) - lipgloss.Width(closeHint)
	if gap < 1 {
		gap = 1
	}

	lines := []string{
		title + strings.Repeat(" ", gap) + closeHint,
		RenderSubtleDivider(inner),
		row("Time", t.Base.Render(p.Time)),
		row("Variable", t.Base.Render(p.Variable)),
		row("Current Value", t.PrimaryBold.Render(formatNumber(p.Value))+" "+RenderStatusBadge(true)),
		"",
		t.Title.Render("All Values at " + p.Time),
	}
	for _, nv := range p.Values() {
		lines = append(lines, "  "+row(truncate(nv.Key, 13), formatNumber(nv.Value)))
	}
	lines = append(lines,
		"",
		RenderSubtleDivider(inner),
		RenderKeyHint("esc", "Close")+"   "+RenderKeyHint("x", "Export Data")+"   "+RenderKeyHint("y", "Copy"),
	)

	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Background(ThemeBg("#18181A")).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}
