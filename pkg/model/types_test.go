package model

import (
	"errors"
	"testing"
)

func TestDataPointValues_ExcludesHeaderFields(t *testing.T) {
	p := DataPoint{Time: "10:00", Variable: "load", Value: 42}

	got := p.Values()
	if len(got) != 1 {
		t.Fatalf("expected exactly one value row, got %d: %+v", len(got), got)
	}
	if got[0].Key != "value" || got[0].Value != 42 {
		t.Errorf("expected value=42, got %s=%g", got[0].Key, got[0].Value)
	}
}

func TestDataPointValues_SortsExtras(t *testing.T) {
	p := DataPoint{
		Time:     "Aug",
		Variable: "demand",
		Value:    69000,
		Extra: map[string]float64{
			"poles":    48,
			"zones":    11,
			"variable": 3, // stray header keys never leak into the listing
			"time":     1,
		},
	}

	got := p.Values()
	want := []string{"value", "poles", "zones"}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d: %+v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i].Key != k {
			t.Errorf("row %d: expected key %q, got %q", i, k, got[i].Key)
		}
	}
}

func TestDataPointClone_IsDeep(t *testing.T) {
	p := &DataPoint{Time: "Apr", Value: 1, Extra: map[string]float64{"a": 1}}
	cp := p.Clone()
	cp.Extra["a"] = 99
	if p.Extra["a"] != 1 {
		t.Errorf("clone shares Extra map with original")
	}

	var nilPoint *DataPoint
	if nilPoint.Clone() != nil {
		t.Errorf("clone of nil should be nil")
	}
}

func TestVariableInRangeAndStep(t *testing.T) {
	v := Variable{ID: "a", Min: 0, Max: 10, Value: 5}
	if !v.InRange() {
		t.Error("expected 5 in [0,10]")
	}
	if v.Step() != 0.1 {
		t.Errorf("expected step 0.1, got %g", v.Step())
	}
	v.Value = 15
	if v.InRange() {
		t.Error("expected 15 out of [0,10]")
	}
}

func TestScenarioValidate(t *testing.T) {
	base := Scenario{
		Series:    []SeriesPoint{{Label: "Apr", Value: 1}},
		Variables: []Variable{{ID: "a", Min: 0, Max: 1}},
	}

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr bool
	}{
		{"valid", func(*Scenario) {}, false},
		{"empty series", func(s *Scenario) { s.Series = nil }, true},
		{"duplicate variable", func(s *Scenario) { s.Variables = append(s.Variables, Variable{ID: "a"}) }, true},
		{"missing id", func(s *Scenario) { s.Variables = append(s.Variables, Variable{Name: "x"}) }, true},
		{"inverted range", func(s *Scenario) { s.Variables[0].Min = 5 }, true},
		{"duplicate category", func(s *Scenario) {
			s.Categories = []Category{{ID: "c"}, {ID: "c"}}
		}, true},
		{"value above max", func(s *Scenario) { s.Variables[0].Value = 2 }, true},
		{"value below min", func(s *Scenario) { s.Variables[0].Value = -0.5 }, true},
		{"value on bound", func(s *Scenario) { s.Variables[0].Value = 1 }, false},
		{"duplicate pill", func(s *Scenario) {
			s.Categories = []Category{{ID: "c", Pills: []Pill{{ID: "p"}, {ID: "p"}}}}
		}, true},
		{"same pill id in two categories", func(s *Scenario) {
			s.Categories = []Category{{ID: "c", Pills: []Pill{{ID: "p"}}}, {ID: "d", Pills: []Pill{{ID: "p"}}}}
		}, false},
		{"default selection", func(s *Scenario) {
			s.Categories = []Category{{ID: "c", Pills: []Pill{{ID: "p"}}}}
			s.DefaultSelections = map[string][]string{"c": {"p"}}
		}, false},
		{"default selection unknown category", func(s *Scenario) {
			s.Categories = []Category{{ID: "c", Pills: []Pill{{ID: "p"}}}}
			s.DefaultSelections = map[string][]string{"x": {"p"}}
		}, true},
		{"default selection unknown pill", func(s *Scenario) {
			s.Categories = []Category{{ID: "c", Pills: []Pill{{ID: "p"}}}}
			s.DefaultSelections = map[string][]string{"c": {"q"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.Variables = append([]Variable(nil), base.Variables...)
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	s := base
	s.Series = nil
	if !errors.Is(s.Validate(), ErrEmptySeries) {
		t.Error("expected ErrEmptySeries sentinel")
	}
}

func TestScenarioPointAt(t *testing.T) {
	s := Scenario{
		SeriesName: "Unsatisfied Demand %",
		Series: []SeriesPoint{
			{Label: "Apr", Value: 42000},
			{Label: "May", Value: 39000, Extra: map[string]float64{"poles": 48}},
		},
	}

	p := s.PointAt(1)
	if p == nil {
		t.Fatal("expected a point")
	}
	if p.Time != "May" || p.Variable != "Unsatisfied Demand %" || p.Value != 39000 {
		t.Errorf("unexpected point %+v", p)
	}
	p.Extra["poles"] = 0
	if s.Series[1].Extra["poles"] != 48 {
		t.Error("PointAt must copy extras")
	}

	if s.PointAt(-1) != nil || s.PointAt(2) != nil {
		t.Error("out of range index should yield nil")
	}
}

func TestInGroup(t *testing.T) {
	vs := []Variable{
		{ID: "a"},
		{ID: "b", Group: GroupSecondary},
		{ID: "c", Group: GroupPrimary},
	}
	primary := InGroup(vs, GroupPrimary)
	if len(primary) != 2 || primary[0].ID != "a" || primary[1].ID != "c" {
		t.Errorf("primary = %+v", primary)
	}
	secondary := InGroup(vs, GroupSecondary)
	if len(secondary) != 1 || secondary[0].ID != "b" {
		t.Errorf("secondary = %+v", secondary)
	}
}
