// Package testutil provides scenario fixtures and assertions for tests.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// GeneratorConfig controls scenario generation.
type GeneratorConfig struct {
	Seed       int64   // Random seed for determinism (0 = use current time)
	Points     int     // Series length (default: 7)
	Variables  int     // Number of variables (default: 4)
	Categories int     // Number of pill categories (default: 2)
	PillsPer   int     // Pills per category (default: 3)
	Base       float64 // Series baseline value (default: 45000)
	Spread     float64 // Max random deviation from Base (default: 10000)
	WithExtra  bool    // Attach auxiliary fields to every sample
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42, // Deterministic
		Points:     7,
		Variables:  4,
		Categories: 2,
		PillsPer:   3,
		Base:       45000,
		Spread:     10000,
		WithExtra:  true,
	}
}

// Generator creates scenario fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	def := DefaultConfig()
	if cfg.Points <= 0 {
		cfg.Points = def.Points
	}
	if cfg.Variables < 0 {
		cfg.Variables = 0
	}
	if cfg.Base == 0 {
		cfg.Base = def.Base
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Series generates n samples labelled by month, wrapping after December.
func (g *Generator) Series(n int) []model.SeriesPoint {
	out := make([]model.SeriesPoint, n)
	for i := range out {
		v := g.cfg.Base + (g.rng.Float64()*2-1)*g.cfg.Spread
		v = math.Round(v/100) * 100
		if v < 0 {
			v = 0
		}
		sp := model.SeriesPoint{Label: monthLabels[i%len(monthLabels)], Value: v}
		if n > len(monthLabels) {
			sp.Label = fmt.Sprintf("%s%d", sp.Label, i/len(monthLabels)+1)
		}
		if g.cfg.WithExtra {
			sp.Extra = map[string]float64{
				"utilization":      math.Round(g.rng.Float64()*100) / 100,
				"satisfied_demand": math.Round(700+g.rng.Float64()*200) / 10,
			}
		}
		out[i] = sp
	}
	return out
}

// Variables generates n in-range variables alternating between groups.
func (g *Generator) Variables(n int) []model.Variable {
	out := make([]model.Variable, n)
	for i := range out {
		max := float64(10 * (1 + g.rng.Intn(100)))
		group := model.GroupPrimary
		if i%2 == 1 {
			group = model.GroupSecondary
		}
		out[i] = model.Variable{
			ID:          fmt.Sprintf("var_%d", i),
			Name:        fmt.Sprintf("Variable %d", i),
			Description: fmt.Sprintf("Generated variable number %d.", i),
			Unit:        "u",
			Min:         0,
			Max:         max,
			Value:       math.Round(g.rng.Float64() * max),
			IsActive:    i%3 == 0,
			Group:       group,
		}
	}
	return out
}

// Categories generates n pill categories with per pills each. The first pill
// of the first category carries the alert marker.
func (g *Generator) Categories(n, per int) []model.Category {
	out := make([]model.Category, n)
	for i := range out {
		c := model.Category{ID: fmt.Sprintf("cat_%d", i), Name: fmt.Sprintf("Category %d", i)}
		for j := 0; j < per; j++ {
			p := model.Pill{
				ID:          fmt.Sprintf("pill_%d_%d", i, j),
				Label:       fmt.Sprintf("Pill %d.%d", i, j),
				Description: fmt.Sprintf("Pill **%d.%d** adjusts the simulation.", i, j),
			}
			if i == 0 && j == 0 {
				p.Marker = "alert"
			}
			c.Pills = append(c.Pills, p)
		}
		out[i] = c
	}
	return out
}

// Scenario generates a complete, valid scenario.
func (g *Generator) Scenario() model.Scenario {
	series := g.Series(g.cfg.Points)
	sc := model.Scenario{
		Title:      "Generated Scenario",
		Tabs:       []string{"Charging Stations", "Fleet Sizing", "Parking"},
		SeriesName: "Unsatisfied Demand %",
		Series:     series,
		Target:     g.cfg.Base,
		NowLabel:   series[len(series)/2].Label,
		KPIs: []model.KPI{
			{Title: "Infrastructure Units", Value: "€421.07", Description: "Infrastructure units."},
			{Title: "Charging Growth", Value: "33.07", Description: "Charging growth."},
			{Title: "Localization change", Value: "21.9%", Description: "Localization change."},
			{Title: "Fleet growth", Value: "7.03%", Description: "Fleet growth."},
		},
		Variables:  g.Variables(g.cfg.Variables),
		Categories: g.Categories(g.cfg.Categories, g.cfg.PillsPer),
		Results: []model.ScenarioResult{
			{Metric: "profit", Text: "Best configuration by profit."},
		},
	}
	if len(sc.Categories) > 0 && len(sc.Categories[0].Pills) > 1 {
		sc.DefaultSelections = map[string][]string{
			sc.Categories[0].ID: {sc.Categories[0].Pills[1].ID},
		}
	}
	return sc
}

// QuickScenario returns the default generated scenario.
func QuickScenario() model.Scenario {
	return NewDefault().Scenario()
}

// Fixed returns a small hand-written scenario whose values tests can rely on.
func Fixed() model.Scenario {
	return model.Scenario{
		Title:      "Fixture",
		Tabs:       []string{"Charging Stations", "Fleet Sizing"},
		SeriesName: "load",
		Target:     40,
		NowLabel:   "11:00",
		YMax:       100,
		Series: []model.SeriesPoint{
			{Label: "09:00", Value: 30, Extra: map[string]float64{"utilization": 0.5}},
			{Label: "10:00", Value: 42, Extra: map[string]float64{"utilization": 0.64, "queue": 3}},
			{Label: "11:00", Value: 55},
			{Label: "12:00", Value: 48},
		},
		KPIs: []model.KPI{
			{Title: "Units", Value: "12", Description: "Units deployed."},
			{Title: "Growth", Value: "3%", Description: "Growth rate."},
		},
		Variables: []model.Variable{
			{ID: "fleet", Name: "Fleet Size", Unit: "vehicles", Min: 0, Max: 100, Value: 40, IsActive: true, Description: "Vehicles in service."},
			{ID: "rate", Name: "Parking Rate", Unit: "€/h", Min: 0, Max: 10, Value: 2.5, Group: model.GroupSecondary},
			{ID: "zones", Name: "Zones", Min: 1, Max: 11, Value: 5},
		},
		Categories: []model.Category{
			{ID: "vehicle", Name: "Vehicle", Pills: []model.Pill{
				{ID: "ev", Label: "Electric", Description: "Battery **electric** vehicles."},
				{ID: "hybrid", Label: "Hybrid", Marker: "alert"},
			}},
			{ID: "region", Name: "Region", Pills: []model.Pill{
				{ID: "north", Label: "North"},
				{ID: "south", Label: "South"},
			}},
		},
		Results: []model.ScenarioResult{
			{Metric: "profit", Text: "11 zones with 48 poles."},
		},
		DefaultSelections: map[string][]string{"vehicle": {"ev"}},
	}
}
