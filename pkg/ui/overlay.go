package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vanderheijden86/fleetdash/pkg/tooltip"
)

// placeOverlay draws fg over bg with fg's top-left cell at (x, y). Parts of
// fg that fall outside bg (including negative offsets) are cut, never moved.
func placeOverlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	bgW := 0
	for _, l := range bgLines {
		if w := ansi.StringWidth(l); w > bgW {
			bgW = w
		}
	}
	fgW := lipgloss.Width(fg)

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		}

		// Clip fg to the visible columns.
		left, right := 0, fgW
		if x < 0 {
			left = -x
		}
		if x+fgW > bgW {
			right = bgW - x
		}
		if left >= right {
			continue
		}
		visible := ansi.Cut(fgLine, left, right)
		start := x + left

		bgLine := bgLines[row]
		if n := ansi.StringWidth(bgLine); n < bgW {
			bgLine += strings.Repeat(" ", bgW-n)
		}
		bgLines[row] = ansi.Cut(bgLine, 0, start) + visible + ansi.Cut(bgLine, start+(right-left), bgW)
	}
	return strings.Join(bgLines, "\n")
}

// renderTooltip draws the chart tooltip card exactly g.Width x g.Height
// cells, border included.
func renderTooltip(c tooltip.Content, g tooltip.Geometry, t Theme) string {
	w, h := int(g.Width), int(g.Height)
	if w < 4 || h < 3 {
		return ""
	}
	inner := w - 4
	value := t.Title.Render(truncate(c.Value, inner-2)) + " " + t.MutedText.Render("?")
	delta := t.DeltaStyle(c.DeltaPercent).Render(truncate(c.Arrow()+" "+c.DeltaLabel(), inner))

	lines := []string{value, delta}
	for len(lines) < h-2 {
		lines = append(lines, "")
	}
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Background(ThemeBg("#232323")).
		Padding(0, 1).
		Width(w - 2).
		Height(h - 2).
		MaxHeight(h).
		Render(strings.Join(lines[:h-2], "\n"))
}
