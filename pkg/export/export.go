// Package export writes the "Export Data" artifacts for the dashboard: a JSON
// report, SVG and PNG chart snapshots and a SQLite database.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/fleetdash/pkg/analysis"
	"github.com/vanderheijden86/fleetdash/pkg/debug"
	"github.com/vanderheijden86/fleetdash/pkg/metrics"
	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// Format is an export file type.
type Format string

const (
	FormatJSON   Format = "json"
	FormatSVG    Format = "svg"
	FormatPNG    Format = "png"
	FormatSQLite Format = "sqlite"
)

// AllFormats lists every supported format.
var AllFormats = []Format{FormatJSON, FormatSVG, FormatPNG, FormatSQLite}

// ErrUnknownFormat is returned for format names outside AllFormats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormats validates format names. Empty input selects JSON only.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return []Format{FormatJSON}, nil
	}
	seen := make(map[Format]bool, len(names))
	var out []Format
	for _, n := range names {
		f := Format(strings.ToLower(strings.TrimSpace(n)))
		if f == "all" {
			return append([]Format(nil), AllFormats...), nil
		}
		if !f.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, n)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (f Format) valid() bool {
	for _, known := range AllFormats {
		if f == known {
			return true
		}
	}
	return false
}

func (f Format) ext() string {
	if f == FormatSQLite {
		return "sqlite3"
	}
	return string(f)
}

// Options describes one export run.
type Options struct {
	Dir       string
	Formats   []Format
	Scenario  model.Scenario
	Variables []model.Variable // current values; defaults to Scenario.Variables
	Point     *model.DataPoint // hovered point, highlighted when set
	Now       time.Time
}

// Report is the JSON export document.
type Report struct {
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generated_at"`
	SeriesName  string              `json:"series_name"`
	Series      []model.SeriesPoint `json:"series"`
	Summary     analysis.Summary    `json:"summary"`
	Variables   []model.Variable    `json:"variables"`
	Point       *PointReport        `json:"point,omitempty"`
}

// PointReport is the exported view of the hovered data point.
type PointReport struct {
	Time     string             `json:"time"`
	Variable string             `json:"variable"`
	Value    float64            `json:"value"`
	Values   map[string]float64 `json:"values"`
}

// NewReport assembles the report for opts.
func NewReport(opts Options) Report {
	vars := opts.Variables
	if vars == nil {
		vars = opts.Scenario.Variables
	}
	r := Report{
		Title:       opts.Scenario.Title,
		GeneratedAt: opts.Now.UTC(),
		SeriesName:  opts.Scenario.SeriesName,
		Series:      opts.Scenario.Series,
		Summary:     analysis.Summarize(opts.Scenario),
		Variables:   vars,
	}
	if p := opts.Point; p != nil {
		pr := &PointReport{Time: p.Time, Variable: p.Variable, Value: p.Value, Values: map[string]float64{}}
		for _, nv := range p.Values() {
			pr.Values[nv.Key] = nv.Value
		}
		r.Point = pr
	}
	return r
}

// FileName returns the output name for format at now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("fleetdash-%s.%s", now.UTC().Format("20060102-150405"), f.ext())
}

// ExportAll writes every requested format into opts.Dir concurrently and
// returns the written paths sorted. The first failure cancels the rest.
func ExportAll(ctx context.Context, opts Options) ([]string, error) {
	defer debug.LogEnterExit("export.ExportAll")()
	defer metrics.Timer(metrics.ExportRun)()

	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON}
	}
	for _, f := range formats {
		if !f.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	report := NewReport(opts)
	paths := make([]string, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		path := filepath.Join(opts.Dir, FileName(f, opts.Now))
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			switch f {
			case FormatJSON:
				err = SaveJSON(path, report)
			case FormatSVG, FormatPNG:
				err = SaveChartSnapshot(ChartSnapshotOptions{
					Path:     path,
					Format:   string(f),
					Scenario: opts.Scenario,
					Point:    opts.Point,
				})
			case FormatSQLite:
				err = SaveSQLite(ctx, path, report)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}
			debug.Log("export: wrote %s", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
