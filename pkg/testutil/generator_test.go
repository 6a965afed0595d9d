package testutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

func TestScenario(t *testing.T) {
	sc := QuickScenario()
	AssertValid(t, sc)

	if len(sc.Series) != 7 {
		t.Errorf("expected 7 points, got %d", len(sc.Series))
	}
	if len(sc.Variables) != 4 {
		t.Errorf("expected 4 variables, got %d", len(sc.Variables))
	}
	for _, v := range sc.Variables {
		if !v.InRange() {
			t.Errorf("variable %s out of range: %v not in [%v, %v]", v.ID, v.Value, v.Min, v.Max)
		}
	}
	if len(sc.Categories) != 2 || len(sc.Categories[0].Pills) != 3 {
		t.Errorf("unexpected categories: %+v", sc.Categories)
	}
	if sc.Categories[0].Pills[0].Marker != "alert" {
		t.Error("expected first pill to carry the alert marker")
	}
}

func TestSeriesLabelsWrap(t *testing.T) {
	g := New(GeneratorConfig{Seed: 1, Points: 14})
	series := g.Series(14)
	if series[0].Label != "Jan1" || series[12].Label != "Jan2" {
		t.Errorf("expected wrapped labels, got %q and %q", series[0].Label, series[12].Label)
	}
	seen := make(map[string]bool)
	for _, sp := range series {
		if seen[sp.Label] {
			t.Errorf("duplicate label %q", sp.Label)
		}
		seen[sp.Label] = true
	}
}

func TestVariablesAlternateGroups(t *testing.T) {
	vars := NewDefault().Variables(4)
	if got := len(model.InGroup(vars, model.GroupPrimary)); got != 2 {
		t.Errorf("expected 2 primary variables, got %d", got)
	}
	if got := len(model.InGroup(vars, model.GroupSecondary)); got != 2 {
		t.Errorf("expected 2 secondary variables, got %d", got)
	}
}

func TestFixed(t *testing.T) {
	sc := Fixed()
	AssertValid(t, sc)
	p := sc.PointAt(1)
	if p == nil || p.Time != "10:00" || p.Value != 42 || p.Variable != "load" {
		t.Fatalf("unexpected point: %+v", p)
	}
}

func TestDeterminism(t *testing.T) {
	a := New(DefaultConfig()).Scenario()
	b := New(DefaultConfig()).Scenario()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different scenarios")
	}
}

func TestWriteScenarioFile(t *testing.T) {
	dir := t.TempDir()
	sc := Fixed()

	yamlPath := WriteScenarioFile(t, dir, "s.yaml", sc)
	if filepath.Base(yamlPath) != "s.yaml" {
		t.Errorf("unexpected path %s", yamlPath)
	}
	var fromYAML model.Scenario
	readFile(t, yamlPath, func(b []byte) error { return yaml.Unmarshal(b, &fromYAML) })
	AssertJSONEqual(t, sc, fromYAML)

	jsonPath := WriteScenarioFile(t, dir, "s.json", sc)
	var fromJSON model.Scenario
	readFile(t, jsonPath, func(b []byte) error { return json.Unmarshal(b, &fromJSON) })
	AssertJSONEqual(t, sc, fromJSON)
}

func TestVariableHelpers(t *testing.T) {
	vars := Fixed().Variables
	if got := VariableIDs(vars); !reflect.DeepEqual(got, []string{"fleet", "rate", "zones"}) {
		t.Errorf("unexpected ids %v", got)
	}
	AssertVariableValue(t, vars, "rate", 2.5)
	AssertActive(t, vars, "fleet", true)
	if FindVariable(vars, "missing") != nil {
		t.Error("expected nil for unknown id")
	}
}

func BenchmarkScenario(b *testing.B) {
	g := New(GeneratorConfig{Seed: 7, Points: 365, Variables: 50, Categories: 5, PillsPer: 10})
	for i := 0; i < b.N; i++ {
		_ = g.Scenario()
	}
}

func readFile(t *testing.T, path string, decode func([]byte) error) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := decode(data); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}
