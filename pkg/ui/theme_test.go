package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	for name, c := range map[string]lipgloss.AdaptiveColor{
		"Primary": theme.Primary,
		"Accent":  theme.Accent,
		"Alert":   theme.Alert,
		"Border":  theme.Border,
	} {
		if isColorEmpty(c) {
			t.Errorf("DefaultTheme %s color is empty", name)
		}
	}
	if theme.Primary.Dark != "#B6FF6C" {
		t.Errorf("unexpected primary %q", theme.Primary.Dark)
	}
}

func isColorEmpty(c lipgloss.AdaptiveColor) bool {
	return c.Light == "" && c.Dark == ""
}

func TestDeltaStyle(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))

	tests := []struct {
		delta float64
		want  lipgloss.TerminalColor
	}{
		{4.6, theme.Accent},
		{-13.3, theme.Alert},
		{0, theme.Subtext},
	}
	for _, tt := range tests {
		got := theme.DeltaStyle(tt.delta).GetForeground()
		if got != tt.want {
			t.Errorf("DeltaStyle(%v) foreground = %v, want %v", tt.delta, got, tt.want)
		}
	}
}

func TestFaded(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))
	if !theme.Faded(theme.Title).GetFaint() {
		t.Error("Faded should set faint")
	}
	if theme.Title.GetFaint() {
		t.Error("Faded must not modify the original style")
	}
}

// ── Color profile detection ─────────────────────────────────────────────

func TestColorProfile_Detection(t *testing.T) {
	// TermProfile is set at init(); just verify it's a valid value
	valid := map[colorprofile.Profile]bool{
		colorprofile.Unknown:   true,
		colorprofile.NoTTY:     true,
		colorprofile.ASCII:     true,
		colorprofile.ANSI:      true,
		colorprofile.ANSI256:   true,
		colorprofile.TrueColor: true,
	}
	if !valid[TermProfile] {
		t.Errorf("TermProfile has unexpected value: %d", TermProfile)
	}
}

func TestThemeBg(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	tests := []struct {
		profile colorprofile.Profile
		noColor bool
	}{
		{colorprofile.TrueColor, false},
		{colorprofile.ANSI256, true},
		{colorprofile.ANSI, true},
	}
	for _, tt := range tests {
		TermProfile = tt.profile
		_, isNoColor := ThemeBg("#18181A").(lipgloss.NoColor)
		if isNoColor != tt.noColor {
			t.Errorf("ThemeBg in profile %d: NoColor = %v, want %v", tt.profile, isNoColor, tt.noColor)
		}
	}
}

func TestThemeFg(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.TrueColor
	if _, ok := ThemeFg("#B6FF6C").(lipgloss.ANSIColor); ok {
		t.Error("ThemeFg should return hex color in TrueColor mode, got ANSIColor")
	}

	TermProfile = colorprofile.ANSI256
	if _, ok := ThemeFg("#B6FF6C").(lipgloss.ANSIColor); ok {
		t.Error("ThemeFg should return hex color in ANSI256 mode, got ANSIColor")
	}

	TermProfile = colorprofile.ANSI
	got := ThemeFg("#B6FF6C")
	ansiColor, ok := got.(lipgloss.ANSIColor)
	if !ok {
		t.Errorf("ThemeFg should return ANSIColor in ANSI mode, got %T", got)
	} else if ansiColor != 7 {
		t.Errorf("ThemeFg should return ANSI white (7) in ANSI mode, got %d", ansiColor)
	}
}
