package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

func TestDefault(t *testing.T) {
	sc := Default()

	if len(sc.Series) != 7 || sc.Series[0].Label != "Apr" || sc.Series[4].Value != 69000 {
		t.Errorf("unexpected series: %+v", sc.Series)
	}
	if len(sc.KPIs) != 4 || sc.KPIs[0].Value != "€421.07" {
		t.Errorf("unexpected KPIs: %+v", sc.KPIs)
	}
	if len(sc.Tabs) != 3 || sc.Tabs[0] != "Charging Stations" {
		t.Errorf("unexpected tabs: %v", sc.Tabs)
	}
	if len(sc.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(sc.Categories))
	}
	if p := sc.Categories[0].FindPill("carbon-1"); p == nil || p.Marker != "alert" {
		t.Errorf("expected Carbon 1 with alert marker, got %+v", p)
	}
	if got := sc.DefaultSelections["category-1"]; len(got) != 2 {
		t.Errorf("unexpected default selections: %v", got)
	}
	for _, r := range sc.Results {
		if !strings.Contains(r.Text, "48 total number of poles") {
			t.Errorf("result text lost in folding: %q", r.Text)
		}
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	sc, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Title != Default().Title {
		t.Errorf("expected default scenario, got %q", sc.Title)
	}
}

func TestLoad_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	want := model.Scenario{
		Title:      "small",
		SeriesName: "load",
		Series:     []model.SeriesPoint{{Label: "10:00", Value: 42}},
		Variables:  []model.Variable{{ID: "a", Min: 0, Max: 10, Value: 5}},
	}

	for _, name := range []string{"s.yaml", "s.yml", "s.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Title != "small" || len(got.Series) != 1 || got.Series[0].Value != 42 {
				t.Errorf("unexpected scenario: %+v", got)
			}
			if v := got.FindVariable("a"); v == nil || v.Max != 10 {
				t.Errorf("variable lost: %+v", v)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "s.toml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("title: nothing\n"), 0o644)
	if _, err := Load(empty); !errors.Is(err, model.ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestParse_RejectsMistypedScenario(t *testing.T) {
	base := "series: [{label: Apr, value: 1}]\n" +
		"variables: [{id: fleet, min: 0, max: 100, value: 40}]\n" +
		"categories: [{id: vehicle, pills: [{id: ev}, {id: hybrid}]}]\n"

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"value outside range", strings.Replace(base, "value: 40", "value: 400", 1), "outside"},
		{"duplicate pill", strings.Replace(base, "{id: hybrid}", "{id: ev}", 1), "duplicate pill"},
		{"unknown selection category", base + "default_selections: {region: [north]}\n", "unknown category"},
		{"unknown selection pill", base + "default_selections: {vehicle: [diesel]}\n", "diesel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml), FormatYAML)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want %q", err, tt.want)
			}
		})
	}

	if _, err := Parse(strings.NewReader(base+"default_selections: {vehicle: [hybrid]}\n"), FormatYAML); err != nil {
		t.Errorf("valid scenario rejected: %v", err)
	}
}

func TestParse_StripsBOM(t *testing.T) {
	data := "\xef\xbb\xbf{\"series\":[{\"label\":\"Apr\",\"value\":1}]}"
	sc, err := Parse(strings.NewReader(data), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sc.Series) != 1 {
		t.Errorf("expected one point, got %d", len(sc.Series))
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(ScenarioEnvVar, "/tmp/from-env.yaml")
	if got := ResolvePath("explicit.yaml"); got != "explicit.yaml" {
		t.Errorf("explicit path should win, got %q", got)
	}
	if got := ResolvePath(""); got != "/tmp/from-env.yaml" {
		t.Errorf("expected env fallback, got %q", got)
	}
}
