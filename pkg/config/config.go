// Package config handles loading and saving fleetdash configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/fleetdash/config.yaml
//   - Data:    ~/.local/share/fleetdash/ (exports)
//   - State:   ~/.local/state/fleetdash/ (debug logs)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "fleetdash"

// Layout selects how the variables slide-over edits variables.
type Layout string

const (
	// LayoutPills edits through category pills, a description card and
	// primary/secondary accordions.
	LayoutPills Layout = "pills"
	// LayoutSliders edits each variable with a value slider and shows the
	// variables panel on the main page.
	LayoutSliders Layout = "sliders"
)

// ParseLayout accepts "pills" or "sliders", case-insensitively.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutPills:
		return LayoutPills, nil
	case LayoutSliders:
		return LayoutSliders, nil
	default:
		return "", fmt.Errorf("unknown layout %q (want pills or sliders)", s)
	}
}

// UIConfig holds view preferences.
type UIConfig struct {
	Layout     string `yaml:"layout,omitempty"`
	DefaultTab string `yaml:"default_tab,omitempty"`
	Mouse      bool   `yaml:"mouse"`
}

// AnimationConfig holds the panel transition delays in milliseconds.
type AnimationConfig struct {
	OpenDelayMS  int `yaml:"open_delay_ms,omitempty"`
	CloseDelayMS int `yaml:"close_delay_ms,omitempty"`
}

// TooltipConfig is the chart tooltip size in terminal cells.
type TooltipConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
	Margin int `yaml:"margin,omitempty"`
}

// DataConfig points at the scenario file.
type DataConfig struct {
	ScenarioPath string `yaml:"scenario_path,omitempty"`
	Watch        bool   `yaml:"watch"`
}

// ExportConfig controls the Export Data action.
type ExportConfig struct {
	Dir     string   `yaml:"dir,omitempty"`
	Formats []string `yaml:"formats,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	UI        UIConfig        `yaml:"ui,omitempty"`
	Animation AnimationConfig `yaml:"animation,omitempty"`
	Tooltip   TooltipConfig   `yaml:"tooltip,omitempty"`
	Data      DataConfig      `yaml:"data,omitempty"`
	Export    ExportConfig    `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Layout:     string(LayoutPills),
			DefaultTab: "Charging Stations",
			Mouse:      true,
		},
		Animation: AnimationConfig{
			OpenDelayMS:  10,
			CloseDelayMS: 200,
		},
		Tooltip: TooltipConfig{Width: 22, Height: 4, Margin: 1},
		Data:    DataConfig{Watch: true},
		Export: ExportConfig{
			Dir:     filepath.Join(DataDir(), "exports"),
			Formats: []string{"json"},
		},
	}
}

// Layout returns the configured layout, falling back to pills.
func (c Config) Layout() Layout {
	l, err := ParseLayout(c.UI.Layout)
	if err != nil {
		return LayoutPills
	}
	return l
}

// OpenDelay is the panel open delay.
func (c Config) OpenDelay() time.Duration {
	return time.Duration(c.Animation.OpenDelayMS) * time.Millisecond
}

// CloseDelay is the panel close delay.
func (c Config) CloseDelay() time.Duration {
	return time.Duration(c.Animation.CloseDelayMS) * time.Millisecond
}

// ConfigDir returns the XDG config directory.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns the XDG state directory.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.UI.Layout != "" {
		if _, err := ParseLayout(cfg.UI.Layout); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.Data.ScenarioPath = expandHome(cfg.Data.ScenarioPath)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
