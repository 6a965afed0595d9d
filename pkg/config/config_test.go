package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout() != LayoutPills {
		t.Errorf("expected pills layout, got %q", cfg.Layout())
	}
	if cfg.OpenDelay() != 10*time.Millisecond || cfg.CloseDelay() != 200*time.Millisecond {
		t.Errorf("unexpected delays: %v / %v", cfg.OpenDelay(), cfg.CloseDelay())
	}
	if cfg.Tooltip.Width != 22 || cfg.Tooltip.Height != 4 || cfg.Tooltip.Margin != 1 {
		t.Errorf("unexpected tooltip geometry: %+v", cfg.Tooltip)
	}
	if !cfg.UI.Mouse || !cfg.Data.Watch {
		t.Error("mouse and watch should default on")
	}
	if len(cfg.Export.Formats) != 1 || cfg.Export.Formats[0] != "json" {
		t.Errorf("unexpected export formats: %v", cfg.Export.Formats)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Layout() != LayoutPills {
		t.Errorf("expected default config, got layout %q", cfg.Layout())
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	home, _ := os.UserHomeDir()
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
ui:
  layout: Sliders
  default_tab: Parking
  mouse: false
animation:
  close_delay_ms: 350
data:
  scenario_path: ~/fleet/scenario.yaml
  watch: false
export:
  dir: /tmp/out
  formats: [json, svg, png, sqlite]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Layout() != LayoutSliders {
		t.Errorf("expected sliders, got %q", cfg.Layout())
	}
	if cfg.UI.DefaultTab != "Parking" || cfg.UI.Mouse {
		t.Errorf("unexpected UI: %+v", cfg.UI)
	}
	if cfg.CloseDelay() != 350*time.Millisecond {
		t.Errorf("close delay = %v", cfg.CloseDelay())
	}
	if cfg.OpenDelay() != 10*time.Millisecond {
		t.Errorf("unset open delay should keep its default, got %v", cfg.OpenDelay())
	}
	if home != "" && cfg.Data.ScenarioPath != filepath.Join(home, "fleet/scenario.yaml") {
		t.Errorf("expected ~ expansion, got %q", cfg.Data.ScenarioPath)
	}
	if cfg.Data.Watch {
		t.Error("watch should be disabled")
	}
	if len(cfg.Export.Formats) != 4 {
		t.Errorf("formats = %v", cfg.Export.Formats)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("ui: [not a map"), 0o644)
	if _, err := LoadFrom(bad); err == nil {
		t.Error("expected parse error")
	}

	layout := filepath.Join(dir, "layout.yaml")
	os.WriteFile(layout, []byte("ui:\n  layout: carousel\n"), 0o644)
	_, err := LoadFrom(layout)
	if err == nil || !strings.Contains(err.Error(), "carousel") {
		t.Errorf("expected unknown layout error, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.Layout = string(LayoutSliders)
	cfg.Tooltip.Width = 30
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Layout() != LayoutSliders || got.Tooltip.Width != 30 {
		t.Errorf("round trip lost settings: %+v", got)
	}
}

func TestXDGDirs(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	if got := ConfigPath(); got != filepath.Join(base, "cfg", "fleetdash", "config.yaml") {
		t.Errorf("ConfigPath = %q", got)
	}
	if got := DataDir(); got != filepath.Join(base, "data", "fleetdash") {
		t.Errorf("DataDir = %q", got)
	}
	if got := StateDir(); got != filepath.Join(base, "state", "fleetdash") {
		t.Errorf("StateDir = %q", got)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Dir != filepath.Join(base, "data", "fleetdash", "exports") {
		t.Errorf("export dir should follow XDG_DATA_HOME, got %q", cfg.Export.Dir)
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in      string
		want    Layout
		wantErr bool
	}{
		{"pills", LayoutPills, false},
		{" SLIDERS ", LayoutSliders, false},
		{"", "", true},
		{"grid", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLayout(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLayout(%q) = %q, %v", tt.in, got, err)
		}
	}
}
