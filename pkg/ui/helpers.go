package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// truncateRunesHelper truncates a string to max visual width (cells), adding suffix if needed.
// Uses go-runewidth to handle wide characters correctly.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	targetWidth := maxWidth - suffixWidth
	return runewidth.Truncate(s, targetWidth, "") + suffix
}

// padRight pads string s with spaces on the right to visual width
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate truncates string s to maxWidth cells
func truncate(s string, maxWidth int) string {
	return truncateRunesHelper(s, maxWidth, "…")
}

// formatNumber renders a raw value the way it was entered: 42, 2.5, 0.64.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatVariableValue renders a variable value with its unit.
func formatVariableValue(v model.Variable) string {
	if v.Unit == "" {
		return formatNumber(v.Value)
	}
	return formatNumber(v.Value) + " " + v.Unit
}

// formatRange renders "min – max unit".
func formatRange(v model.Variable) string {
	r := fmt.Sprintf("%s – %s", formatNumber(v.Min), formatNumber(v.Max))
	if v.Unit != "" {
		r += " " + v.Unit
	}
	return r
}

// axisLabel renders a y-axis tick as $NK.
func axisLabel(v float64) string {
	return fmt.Sprintf("$%.0fK", v/1000)
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
