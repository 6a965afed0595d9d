// Package model holds the scenario data rendered by the dashboard.
package model

import (
	"errors"
	"fmt"
	"sort"
)

// Variable is a tunable simulation input shown in the variables panel and the
// slide-over editor.
type Variable struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Unit        string  `json:"unit" yaml:"unit"`
	Min         float64 `json:"min" yaml:"min"`
	Max         float64 `json:"max" yaml:"max"`
	Value       float64 `json:"value" yaml:"value"`
	IsActive    bool    `json:"is_active" yaml:"is_active"`
	// Group places the variable under the primary or secondary accordion.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
}

// Variable groups used by the slide-over accordions.
const (
	GroupPrimary   = "primary"
	GroupSecondary = "secondary"
)

// InRange reports whether Min <= Value <= Max.
// Updates are not clamped, so this can be false after user input.
func (v Variable) InRange() bool {
	return v.Min <= v.Value && v.Value <= v.Max
}

// Step returns the slider increment, one hundredth of the range.
func (v Variable) Step() float64 {
	return (v.Max - v.Min) / 100
}

// DataPoint is the payload of a hovered chart point. Time, Variable and Value
// form a fixed header; Extra carries any auxiliary numeric fields.
type DataPoint struct {
	Time     string             `json:"time" yaml:"time"`
	Variable string             `json:"variable" yaml:"variable"`
	Value    float64            `json:"value" yaml:"value"`
	Extra    map[string]float64 `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// NamedValue is one row of the "all values" listing.
type NamedValue struct {
	Key   string
	Value float64
}

// Values lists the numeric fields of the point: value first, then the
// auxiliary fields sorted by key. Time and Variable are never included.
func (p DataPoint) Values() []NamedValue {
	out := make([]NamedValue, 0, 1+len(p.Extra))
	out = append(out, NamedValue{Key: "value", Value: p.Value})

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		switch k {
		case "time", "variable", "value":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, NamedValue{Key: k, Value: p.Extra[k]})
	}
	return out
}

// Clone returns a deep copy so snapshots never share the Extra map.
func (p *DataPoint) Clone() *DataPoint {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Extra != nil {
		cp.Extra = make(map[string]float64, len(p.Extra))
		for k, v := range p.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}

// SeriesPoint is one sample of the chart series.
type SeriesPoint struct {
	Label string             `json:"label" yaml:"label"`
	Value float64            `json:"value" yaml:"value"`
	Extra map[string]float64 `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// KPI is a static summary metric card.
type KPI struct {
	Title       string `json:"title" yaml:"title"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// Pill is a selectable tag inside a variable category.
type Pill struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Marker      string `json:"marker,omitempty" yaml:"marker,omitempty"` // "alert" renders a red dot
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Category groups pills; selections are tracked per category.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Pills []Pill `json:"pills" yaml:"pills"`
}

// FindPill returns the pill with the given id, or nil.
func (c Category) FindPill(id string) *Pill {
	for i := range c.Pills {
		if c.Pills[i].ID == id {
			return &c.Pills[i]
		}
	}
	return nil
}

// ScenarioResult is one "best scenario" banner line.
type ScenarioResult struct {
	Metric string `json:"metric" yaml:"metric"`
	Text   string `json:"text" yaml:"text"`
}

// Scenario is the full mock data set behind one dashboard page.
type Scenario struct {
	Title             string              `json:"title" yaml:"title"`
	Tabs              []string            `json:"tabs" yaml:"tabs"`
	KPIs              []KPI               `json:"kpis" yaml:"kpis"`
	SeriesName        string              `json:"series_name" yaml:"series_name"`
	Series            []SeriesPoint       `json:"series" yaml:"series"`
	Target            float64             `json:"target,omitempty" yaml:"target,omitempty"`
	NowLabel          string              `json:"now_label,omitempty" yaml:"now_label,omitempty"`
	YMax              float64             `json:"y_max,omitempty" yaml:"y_max,omitempty"`
	Variables         []Variable          `json:"variables" yaml:"variables"`
	Categories        []Category          `json:"categories" yaml:"categories"`
	Results           []ScenarioResult    `json:"results" yaml:"results"`
	DefaultSelections map[string][]string `json:"default_selections,omitempty" yaml:"default_selections,omitempty"`
}

// ErrEmptySeries is returned by Validate when the chart has no samples.
var ErrEmptySeries = errors.New("scenario has no series points")

// Validate checks the structural invariants the dashboard relies on.
func (s Scenario) Validate() error {
	if len(s.Series) == 0 {
		return ErrEmptySeries
	}
	seen := make(map[string]bool, len(s.Variables))
	for _, v := range s.Variables {
		if v.ID == "" {
			return fmt.Errorf("variable %q has no id", v.Name)
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate variable id %q", v.ID)
		}
		if v.Min > v.Max {
			return fmt.Errorf("variable %q: min %g exceeds max %g", v.ID, v.Min, v.Max)
		}
		if !v.InRange() {
			return fmt.Errorf("variable %q: value %g outside %g..%g", v.ID, v.Value, v.Min, v.Max)
		}
		seen[v.ID] = true
	}
	cats := make(map[string]Category, len(s.Categories))
	for _, c := range s.Categories {
		if _, dup := cats[c.ID]; dup {
			return fmt.Errorf("duplicate category id %q", c.ID)
		}
		pills := make(map[string]bool, len(c.Pills))
		for _, p := range c.Pills {
			if pills[p.ID] {
				return fmt.Errorf("category %q: duplicate pill id %q", c.ID, p.ID)
			}
			pills[p.ID] = true
		}
		cats[c.ID] = c
	}
	for cat, ids := range s.DefaultSelections {
		c, ok := cats[cat]
		if !ok {
			return fmt.Errorf("default selection for unknown category %q", cat)
		}
		for _, id := range ids {
			if c.FindPill(id) == nil {
				return fmt.Errorf("default selection %q not in category %q", id, cat)
			}
		}
	}
	return nil
}

// InGroup returns the variables of vs whose Group is group. Variables with no
// group count as primary.
func InGroup(vs []Variable, group string) []Variable {
	var out []Variable
	for _, v := range vs {
		g := v.Group
		if g == "" {
			g = GroupPrimary
		}
		if g == group {
			out = append(out, v)
		}
	}
	return out
}

// FindVariable returns the variable with the given id, or nil.
func (s Scenario) FindVariable(id string) *Variable {
	for i := range s.Variables {
		if s.Variables[i].ID == id {
			return &s.Variables[i]
		}
	}
	return nil
}

// PointAt builds the DataPoint for the i-th series sample.
// It returns nil when i is out of range.
func (s Scenario) PointAt(i int) *DataPoint {
	if i < 0 || i >= len(s.Series) {
		return nil
	}
	sp := s.Series[i]
	p := &DataPoint{
		Time:     sp.Label,
		Variable: s.SeriesName,
		Value:    sp.Value,
	}
	if len(sp.Extra) > 0 {
		p.Extra = make(map[string]float64, len(sp.Extra))
		for k, v := range sp.Extra {
			p.Extra[k] = v
		}
	}
	return p
}

// SeriesValues returns the raw sample values in order.
func (s Scenario) SeriesValues() []float64 {
	out := make([]float64, len(s.Series))
	for i, p := range s.Series {
		out[i] = p.Value
	}
	return out
}
