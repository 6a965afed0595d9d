package ui

import (
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fleetdash/pkg/analysis"
	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/tooltip"
)

const (
	chartTickStep = 20000.0
	// yAxisWidth holds "$100K", a space and the axis glyph.
	yAxisWidth = 7
	// chartFooterRows are the month labels and the "Now" caption.
	chartFooterRows = 2
)

// Chart lays out the scenario series as a braille line chart. All
// coordinates it reports are cells relative to the chart's top-left corner,
// which is where the y-axis labels start.
type Chart struct {
	Series   []model.SeriesPoint
	NowLabel string
	AxisMax  float64
	Width    int
	Height   int
}

// NewChart sizes a chart for sc.
func NewChart(sc model.Scenario, width, height int) Chart {
	sum := analysis.Summarize(sc)
	return Chart{
		Series:   sc.Series,
		NowLabel: sc.NowLabel,
		AxisMax:  analysis.AxisMax(sum.Max, sc.YMax, chartTickStep),
		Width:    width,
		Height:   height,
	}
}

func (c Chart) plotWidth() int {
	if w := c.Width - yAxisWidth; w > 2 {
		return w
	}
	return 2
}

func (c Chart) plotHeight() int {
	if h := c.Height - chartFooterRows; h > 1 {
		return h
	}
	return 1
}

// axisTop is the value drawn on the top dot row.
func (c Chart) axisTop() float64 {
	if c.AxisMax > 0 {
		return c.AxisMax
	}
	return 1
}

// grid returns an empty braille grid over the plot area. X runs over the
// sample indexes, Y from zero to the axis maximum; a single sample is
// centered.
func (c Chart) grid() *graph.BrailleGrid {
	maxX := float64(len(c.Series) - 1)
	if maxX <= 0 {
		maxX = 2
	}
	return graph.NewBrailleGrid(c.plotWidth(), c.plotHeight(), 0, maxX, 0, c.axisTop())
}

// dot returns the braille dot of value v at sample position x on g.
func (c Chart) dot(g *graph.BrailleGrid, x, v float64) canvas.Point {
	if len(c.Series) == 1 {
		x = 1
	}
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(c.axisTop(), v))
	return g.GridPoint(canvas.Float64Point{X: x, Y: v})
}

// pixel returns the braille dot of series point i.
func (c Chart) pixel(i int) (px, py int) {
	return c.pixelOn(c.grid(), i)
}

func (c Chart) pixelOn(g *graph.BrailleGrid, i int) (px, py int) {
	p := c.dot(g, float64(i), c.Series[i].Value)
	return p.X, p.Y
}

// row returns the plot row of value v.
func (c Chart) row(v float64) int {
	return c.dot(c.grid(), 0, v).Y / 4
}

// plot draws the series line and returns the braille glyphs per cell,
// indexed [row][column].
func (c Chart) plot() [][]rune {
	g := c.grid()
	prev := c.dot(g, 0, c.Series[0].Value)
	g.Set(prev)
	for i := 1; i < len(c.Series); i++ {
		p := c.dot(g, float64(i), c.Series[i].Value)
		for _, lp := range graph.GetLinePoints(prev, p) {
			g.Set(lp)
		}
		prev = p
	}
	return g.BraillePatterns()
}

// glyphAt returns the braille glyph at a cell, or 0 when the cell is blank.
func glyphAt(patterns [][]rune, cx, cy int) rune {
	if cy < 0 || cy >= len(patterns) || cx < 0 || cx >= len(patterns[cy]) {
		return 0
	}
	r := patterns[cy][cx]
	if r == brailleBlank || r == ' ' {
		return 0
	}
	return r
}

// brailleBlank is the empty braille pattern.
const brailleBlank = '\u2800'

// Anchor returns the cell of point i, used to place the tooltip.
func (c Chart) Anchor(i int) tooltip.Point {
	return c.anchorOn(c.grid(), i)
}

func (c Chart) anchorOn(g *graph.BrailleGrid, i int) tooltip.Point {
	px, py := c.pixelOn(g, i)
	return tooltip.Point{X: float64(yAxisWidth + px/2), Y: float64(py / 4)}
}

// HitTest maps a cell to the nearest point by column. It returns -1 outside
// the plot columns.
func (c Chart) HitTest(x, y int) int {
	if len(c.Series) == 0 || y < 0 || y >= c.Height || x < yAxisWidth || x >= c.Width {
		return -1
	}
	g := c.grid()
	best, bestD := -1, math.MaxInt
	for i := range c.Series {
		ax := int(c.anchorOn(g, i).X)
		d := x - ax
		if d < 0 {
			d = -d
		}
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// NowIndex returns the index of the "Now" sample, or -1.
func (c Chart) NowIndex() int {
	for i, sp := range c.Series {
		if c.NowLabel != "" && sp.Label == c.NowLabel {
			return i
		}
	}
	return -1
}

// ticks returns the grid values from one step up to the axis maximum,
// thinned so there is at least one empty row between labels.
func (c Chart) ticks() []float64 {
	if c.AxisMax <= 0 {
		return nil
	}
	step := chartTickStep
	for c.AxisMax/step > float64(c.plotHeight())/2 && c.plotHeight() > 1 {
		step *= 2
	}
	var out []float64
	for v := step; v <= c.AxisMax+1e-9; v += step {
		out = append(out, v)
	}
	return out
}

type chartCell int

const (
	cellEmpty chartCell = iota
	cellLine
	cellGrid
	cellNow
	cellHover
)

// Render draws the chart. hover is the highlighted point index or -1.
// dimmed draws everything faint, used while the slide-over is up.
func (c Chart) Render(hover int, t Theme, dimmed bool) string {
	if len(c.Series) == 0 {
		return t.MutedText.Render("No series data")
	}
	pw, ph := c.plotWidth(), c.plotHeight()
	patterns := c.plot()

	labels := make(map[int]string)
	for _, v := range c.ticks() {
		labels[c.row(v)] = axisLabel(v)
	}
	nowCol := -1
	if i := c.NowIndex(); i >= 0 {
		px, _ := c.pixel(i)
		nowCol = px / 2
	}
	hoverCol, hoverRow := -1, -1
	if hover >= 0 && hover < len(c.Series) {
		px, py := c.pixel(hover)
		hoverCol, hoverRow = px/2, py/4
	}

	styles := map[chartCell]lipgloss.Style{
		cellEmpty: t.Renderer.NewStyle(),
		cellLine:  t.ChartLine,
		cellGrid:  t.ChartGrid,
		cellNow:   t.ChartNow,
		cellHover: t.ChartHover,
	}
	axis := t.ChartGrid
	labelStyle := t.SubtleText
	if dimmed {
		for k, s := range styles {
			styles[k] = t.Faded(s)
		}
		axis = t.Faded(axis)
		labelStyle = t.Faded(labelStyle)
	}

	var sb strings.Builder
	for cy := 0; cy < ph; cy++ {
		label, isGrid := labels[cy]
		sb.WriteString(labelStyle.Render(padLeft(label, yAxisWidth-2)))
		sb.WriteString(" ")
		if isGrid {
			sb.WriteString(axis.Render("┤"))
		} else {
			sb.WriteString(axis.Render("│"))
		}

		// Batch runs of equally styled cells into one Render call.
		var run strings.Builder
		runKind := cellEmpty
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(styles[runKind].Render(run.String()))
				run.Reset()
			}
		}
		for cx := 0; cx < pw; cx++ {
			kind, glyph := cellEmpty, " "
			switch r := glyphAt(patterns, cx, cy); {
			case cx == hoverCol && cy == hoverRow:
				kind, glyph = cellHover, "●"
			case r != 0:
				kind, glyph = cellLine, string(r)
			case cx == nowCol:
				kind, glyph = cellNow, "┊"
			case isGrid && cx%2 == 0:
				kind, glyph = cellGrid, "─"
			}
			if kind != runKind {
				flush()
				runKind = kind
			}
			run.WriteString(glyph)
		}
		flush()
		sb.WriteString("\n")
	}

	xLabels := make([]rune, c.Width)
	nowLine := make([]rune, c.Width)
	for i := range xLabels {
		xLabels[i], nowLine[i] = ' ', ' '
	}
	lastEnd := -1
	for i, sp := range c.Series {
		center := int(c.Anchor(i).X)
		if placeLabel(xLabels, sp.Label, center, lastEnd) {
			lastEnd = center + len([]rune(sp.Label))/2
		}
	}
	if i := c.NowIndex(); i >= 0 {
		placeLabel(nowLine, "Now", int(c.Anchor(i).X), -1)
	}
	sb.WriteString(labelStyle.Render(string(xLabels)))
	sb.WriteString("\n")
	sb.WriteString(styles[cellNow].Render(string(nowLine)))
	return sb.String()
}

// placeLabel centers label on col if it fits after minStart. It reports
// whether the label was placed.
func placeLabel(line []rune, label string, col, minStart int) bool {
	rs := []rune(label)
	start := col - len(rs)/2
	if start <= minStart {
		return false
	}
	if start < 0 || start+len(rs) > len(line) {
		return false
	}
	copy(line[start:], rs)
	return true
}

func padLeft(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
