// Package tooltip places the floating chart tooltip relative to the anchor
// coordinate of a rendered data point.
//
// The tooltip is always centered horizontally on the anchor and placed above
// it, separated by a fixed margin. Placement is never flipped below the point
// and never clamped to the viewport; whatever falls outside is cut by the
// renderer.
package tooltip

import (
	"fmt"
	"math"
)

// Point is an anchor coordinate supplied by the chart.
type Point struct {
	X, Y float64
}

// Rect is the computed tooltip box.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Geometry is the fixed tooltip size and the gap kept above the anchor.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultGeometry is the pixel geometry of the dashboard tooltip card.
var DefaultGeometry = Geometry{Width: 193, Height: 93, Margin: 12}

// CellGeometry is the terminal-cell geometry used when the tooltip is drawn
// over the braille chart.
var CellGeometry = Geometry{Width: 22, Height: 4, Margin: 1}

// Position computes the tooltip box for anchor:
//
//	left = x - W/2
//	top  = y - H - margin
func Position(anchor Point, g Geometry) Rect {
	return Rect{
		Left:   anchor.X - g.Width/2,
		Top:    anchor.Y - (g.Height + g.Margin),
		Width:  g.Width,
		Height: g.Height,
	}
}

// Cell rounds the box origin to terminal cells. Floor keeps half-cell offsets
// on the left/top side so the box never drifts right of center.
func (r Rect) Cell() (x, y int) {
	return int(math.Floor(r.Left)), int(math.Floor(r.Top))
}

// FormatValue renders a chart value as thousands of dollars, e.g. $47.00k.
func FormatValue(v float64) string {
	return fmt.Sprintf("$%.2fk", v/1000)
}

// Content is the text shown inside the tooltip card.
type Content struct {
	Value        string
	DeltaPercent float64
}

// NewContent builds tooltip text for value against target.
func NewContent(value, target float64) Content {
	c := Content{Value: FormatValue(value)}
	if target != 0 {
		c.DeltaPercent = (value - target) / math.Abs(target) * 100
	}
	return c
}

// DeltaLabel renders the comparison line, e.g. "4.6% above target".
func (c Content) DeltaLabel() string {
	switch {
	case c.DeltaPercent > 0:
		return fmt.Sprintf("%.1f%% above target", c.DeltaPercent)
	case c.DeltaPercent < 0:
		return fmt.Sprintf("%.1f%% below target", -c.DeltaPercent)
	default:
		return "on target"
	}
}

// Arrow returns the trend glyph for the delta.
func (c Content) Arrow() string {
	switch {
	case c.DeltaPercent > 0:
		return "↑"
	case c.DeltaPercent < 0:
		return "↓"
	default:
		return "→"
	}
}
