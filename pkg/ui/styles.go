package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
	SpaceXL = 6
)

// Layout constants (in cells)
const (
	SidebarWidth    = 5
	HeaderHeight    = 2
	FooterHeight    = 1
	SlideOverWidth  = 46
	PopoverWidth    = 44
	KPIColumnMin    = 34
	ChartHeightMin  = 8
	ChartHeightMax  = 16
	MinContentWidth = 60
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#18181A"}
	ColorBgPanel  = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#222324"}
	ColorBgSubtle = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#232323"}
	ColorText     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}
	ColorSubtext  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	ColorMuted    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}
	ColorBorder   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#525252"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#3F7A00", Dark: "#B6FF6C"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#5C7300", Dark: "#D4FF3F"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF4747"}

	ColorSuccessBg = lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#1A3D2A"}
	ColorDangerBg  = lipgloss.AdaptiveColor{Light: "#F8D7DA", Dark: "#3D1A1A"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - Cards, slide-over and popover frames
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// FocusedPanelStyle is the style for the panel that receives keys
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	// OverlayStyle frames the slide-over and the popover
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(ColorBorder).
			Background(ThemeBg("#18181A")).
			Padding(0, 1)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGES AND PILLS
// ══════════════════════════════════════════════════════════════════════════════

// RenderPill renders a category pill. Selected pills use the primary color;
// the focused pill is underlined so keyboard focus stays visible.
func RenderPill(p model.Pill, selected, focused bool, t Theme) string {
	style := t.Renderer.NewStyle().
		Foreground(ColorText).
		Background(ThemeBg("#232323")).
		Padding(0, 1)
	if selected {
		style = style.Foreground(ColorPrimary).Bold(true)
	}
	if focused {
		style = style.Underline(true)
	}

	label := p.Label
	if selected {
		label = "● " + label
	} else {
		label = "○ " + label
	}
	out := style.Render(label)
	if p.Marker == "alert" {
		out += t.AlertDot.Render("•")
	}
	return out
}

// RenderStatusBadge returns the popover status badge
func RenderStatusBadge(inRange bool) string {
	if inRange {
		return lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Background(ColorSuccessBg).
			Bold(true).
			Padding(0, 1).
			Render("Normal")
	}
	return lipgloss.NewStyle().
		Foreground(ColorDanger).
		Background(ColorDangerBg).
		Bold(true).
		Padding(0, 1).
		Render("Out of range")
}

// RenderKeyHint renders "key label" in the footer register.
func RenderKeyHint(key, label string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(key) + " " +
		lipgloss.NewStyle().Foreground(ColorText).Render(label)
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION - Sliders and KPI cards
// ══════════════════════════════════════════════════════════════════════════════

// RenderSlider renders a value slider track. Values outside [min, max] pin
// the knob to the end of the track and switch it to the danger color.
func RenderSlider(v model.Variable, width int, focused bool, t Theme) string {
	if width <= 2 {
		return ""
	}
	track := width - 1
	frac := 0.0
	if v.Max > v.Min {
		frac = (v.Value - v.Min) / (v.Max - v.Min)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	knob := int(frac*float64(track) + 0.5)

	fill := t.Renderer.NewStyle().Foreground(ColorPrimary)
	rest := t.Renderer.NewStyle().Foreground(ColorBorder)
	knobStyle := t.Renderer.NewStyle().Foreground(ColorAccent).Bold(true)
	if !v.InRange() {
		knobStyle = knobStyle.Foreground(ColorDanger)
	}
	glyph := "●"
	if focused {
		glyph = "◉"
	}
	return fill.Render(strings.Repeat("━", knob)) +
		knobStyle.Render(glyph) +
		rest.Render(strings.Repeat("─", track-knob))
}

// RenderKPICard renders one KPI card at the given outer width.
func RenderKPICard(k model.KPI, width int, t Theme) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}
	title := t.SubtleText.Render(truncate(k.Title, inner-2) + " ?")
	value := t.Title.Render(k.Value)
	desc := t.MutedText.Width(inner).Render(k.Description)
	return t.Card.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, value, desc))
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBorder).
		Render(strings.Repeat("─", width))
}

// RenderSubtleDivider renders a more subtle divider using dots
func RenderSubtleDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("·", width))
}
