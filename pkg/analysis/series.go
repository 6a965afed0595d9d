// Package analysis computes summary statistics over the chart series. The
// numbers feed the tooltip delta, the chart axis and the exported reports.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// Summary describes one series.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	PeakIndex   int `json:"peak_index"`
	TroughIndex int `json:"trough_index"`

	// Slope is the least-squares change per sample.
	Slope float64 `json:"slope"`

	// Target is the comparison value for deltas: the scenario target when
	// set, otherwise the series mean.
	Target float64 `json:"target"`
}

// Summarize computes a Summary for sc's series. An empty series yields the
// zero Summary with PeakIndex and TroughIndex set to -1.
func Summarize(sc model.Scenario) Summary {
	return SummarizeValues(sc.SeriesValues(), sc.Target)
}

// SummarizeValues is Summarize over raw values.
func SummarizeValues(values []float64, target float64) Summary {
	s := Summary{Count: len(values), PeakIndex: -1, TroughIndex: -1, Target: target}
	if len(values) == 0 {
		return s
	}

	s.PeakIndex = floats.MaxIdx(values)
	s.TroughIndex = floats.MinIdx(values)
	s.Max = values[s.PeakIndex]
	s.Min = values[s.TroughIndex]

	if len(values) == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
		xs := make([]float64, len(values))
		floats.Span(xs, 0, float64(len(values)-1))
		_, s.Slope = stat.LinearRegression(xs, values, nil, false)
	}
	if s.Target == 0 {
		s.Target = s.Mean
	}
	return s
}

// DeltaPercent is the signed percentage by which value differs from target.
// It returns 0 when target is 0.
func DeltaPercent(value, target float64) float64 {
	if target == 0 {
		return 0
	}
	return (value - target) / math.Abs(target) * 100
}

// AxisMax returns the top of the value axis. A configured yMax wins when it
// covers max; otherwise max is rounded up to the next multiple of step.
func AxisMax(max, yMax, step float64) float64 {
	if yMax > 0 && yMax >= max {
		return yMax
	}
	if step <= 0 {
		return max
	}
	return math.Ceil(max/step) * step
}
