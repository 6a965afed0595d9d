package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/fleetdash/pkg/analysis"
	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/tooltip"
)

// ChartSnapshotOptions controls chart snapshot export.
type ChartSnapshotOptions struct {
	Path     string // format inferred from extension when Format is empty
	Format   string // "svg" or "png"
	Scenario model.Scenario
	Point    *model.DataPoint // highlighted with a tooltip card when set
}

// SaveChartSnapshot renders the series chart as SVG or PNG.
func SaveChartSnapshot(opts ChartSnapshotOptions) error {
	if len(opts.Scenario.Series) == 0 {
		return model.ErrEmptySeries
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(opts.Path), "."))
	}

	layout := layoutChart(opts.Scenario, opts.Point)
	switch format {
	case "png":
		return renderPNG(opts.Path, layout)
	case "svg":
		f, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		if err := renderSVG(f, layout); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%w: %q (want svg or png)", ErrUnknownFormat, format)
	}
}

const (
	chartWidth    = 800
	chartHeight   = 420
	chartLeft     = 72.0
	chartRight    = 24.0
	chartTop      = 56.0
	chartBottom   = 48.0
	chartTickStep = 20000.0
)

type chartPoint struct {
	X, Y  float64
	Label string
	Value float64
}

type chartLayout struct {
	Title     string
	Series    string
	Points    []chartPoint
	AxisMax   float64
	Ticks     []float64
	NowIndex  int
	Highlight int
	Target    float64
}

func (l chartLayout) plotBottom() float64 { return chartHeight - chartBottom }

func (l chartLayout) yFor(v float64) float64 {
	plotH := chartHeight - chartTop - chartBottom
	if l.AxisMax == 0 {
		return l.plotBottom()
	}
	return chartTop + plotH*(1-v/l.AxisMax)
}

func layoutChart(sc model.Scenario, hovered *model.DataPoint) chartLayout {
	sum := analysis.Summarize(sc)
	l := chartLayout{
		Title:     sc.Title,
		Series:    sc.SeriesName,
		AxisMax:   analysis.AxisMax(sum.Max, sc.YMax, chartTickStep),
		NowIndex:  -1,
		Highlight: -1,
		Target:    sum.Target,
	}
	for v := 0.0; v <= l.AxisMax; v += chartTickStep {
		l.Ticks = append(l.Ticks, v)
	}

	plotW := chartWidth - chartLeft - chartRight
	n := len(sc.Series)
	for i, sp := range sc.Series {
		x := chartLeft + plotW/2
		if n > 1 {
			x = chartLeft + plotW*float64(i)/float64(n-1)
		}
		l.Points = append(l.Points, chartPoint{X: x, Y: l.yFor(sp.Value), Label: sp.Label, Value: sp.Value})
		if sp.Label == sc.NowLabel {
			l.NowIndex = i
		}
		if hovered != nil && hovered.Time == sp.Label {
			l.Highlight = i
		}
	}
	return l
}

var (
	colorBackdrop = color.RGBA{0x18, 0x18, 0x1a, 0xff}
	colorGrid     = color.RGBA{0x52, 0x52, 0x52, 0xff}
	colorLine     = color.RGBA{0xb6, 0xff, 0x6c, 0xff}
	colorAccent   = color.RGBA{0xd4, 0xff, 0x3f, 0xff}
	colorText     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorSubtle   = color.RGBA{0xbb, 0xbb, 0xbb, 0xff}
	colorCard     = color.RGBA{0x23, 0x23, 0x23, 0xff}
)

// tooltipCard places the highlight card with the same rule as the terminal
// tooltip, in pixel geometry.
func (l chartLayout) tooltipCard() (tooltip.Rect, tooltip.Content, bool) {
	if l.Highlight < 0 {
		return tooltip.Rect{}, tooltip.Content{}, false
	}
	p := l.Points[l.Highlight]
	r := tooltip.Position(tooltip.Point{X: p.X, Y: p.Y}, tooltip.DefaultGeometry)
	return r, tooltip.NewContent(p.Value, l.Target), true
}

func renderPNG(path string, l chartLayout) error {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(l.Title, chartLeft, 24, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(l.Series, chartLeft, 40, 0, 0.5)

	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	for _, v := range l.Ticks {
		y := l.yFor(v)
		dc.SetColor(colorGrid)
		dc.DrawLine(chartLeft, y, chartWidth-chartRight, y)
		dc.Stroke()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(axisLabel(v), chartLeft-8, y, 1, 0.5)
	}
	dc.SetDash()

	if l.NowIndex >= 0 {
		p := l.Points[l.NowIndex]
		dc.SetColor(colorAccent)
		dc.DrawLine(p.X, chartTop, p.X, l.plotBottom())
		dc.Stroke()
		dc.DrawStringAnchored("Now", p.X, chartTop-8, 0.5, 0.5)
	}

	dc.SetColor(colorLine)
	dc.SetLineWidth(2.5)
	for i, p := range l.Points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.Stroke()

	for i, p := range l.Points {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(p.Label, p.X, l.plotBottom()+18, 0.5, 0.5)
		if i == l.Highlight {
			dc.SetColor(colorAccent)
			dc.DrawCircle(p.X, p.Y, 5)
			dc.Fill()
		}
	}

	if r, c, ok := l.tooltipCard(); ok {
		dc.SetColor(colorCard)
		dc.DrawRoundedRectangle(r.Left, r.Top, r.Width, r.Height, 5)
		dc.Fill()
		dc.SetColor(colorGrid)
		dc.DrawRoundedRectangle(r.Left, r.Top, r.Width, r.Height, 5)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(c.Value, r.Left+16, r.Top+28, 0, 0.5)
		dc.SetColor(colorLine)
		dc.DrawStringAnchored(c.Arrow()+" "+c.DeltaLabel(), r.Left+16, r.Top+60, 0, 0.5)
	}

	return dc.SavePNG(path)
}

func renderSVG(w io.Writer, l chartLayout) error {
	canvas := svg.New(w)
	canvas.Start(chartWidth, chartHeight)
	canvas.Rect(0, 0, chartWidth, chartHeight, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	canvas.Text(int(chartLeft), 28, l.Title, fmt.Sprintf("fill:%s;font-size:15px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(int(chartLeft), 44, l.Series, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))

	for _, v := range l.Ticks {
		y := int(l.yFor(v))
		canvas.Line(int(chartLeft), y, chartWidth-int(chartRight), y,
			fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:4,4", css(colorGrid)))
		canvas.Text(int(chartLeft)-8, y+4, axisLabel(v),
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:end", css(colorSubtle)))
	}

	if l.NowIndex >= 0 {
		p := l.Points[l.NowIndex]
		canvas.Line(int(p.X), int(chartTop), int(p.X), int(l.plotBottom()),
			fmt.Sprintf("stroke:%s;stroke-width:1", css(colorAccent)))
		canvas.Text(int(p.X), int(chartTop)-6, "Now",
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:middle", css(colorAccent)))
	}

	xs := make([]int, len(l.Points))
	ys := make([]int, len(l.Points))
	for i, p := range l.Points {
		xs[i], ys[i] = int(p.X), int(p.Y)
	}
	canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2.5", css(colorLine)))

	for i, p := range l.Points {
		canvas.Text(int(p.X), int(l.plotBottom())+22, p.Label,
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;text-anchor:middle", css(colorSubtle)))
		if i == l.Highlight {
			canvas.Circle(int(p.X), int(p.Y), 5, fmt.Sprintf("fill:%s", css(colorAccent)))
		}
	}

	if r, c, ok := l.tooltipCard(); ok {
		x, y := int(r.Left), int(r.Top)
		canvas.Roundrect(x, y, int(r.Width), int(r.Height), 5, 5,
			fmt.Sprintf("fill:%s;stroke:%s", css(colorCard), css(colorGrid)))
		canvas.Text(x+16, y+32, c.Value,
			fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
		canvas.Text(x+16, y+64, c.Arrow()+" "+c.DeltaLabel(),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorLine)))
	}

	canvas.End()
	return nil
}

// axisLabel renders a tick as $NK.
func axisLabel(v float64) string {
	return fmt.Sprintf("$%.0fK", v/1000)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
