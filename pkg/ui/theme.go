package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background instead of a down-converted near-black.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary lipgloss.AdaptiveColor // chart line, selected pills
	Accent  lipgloss.AdaptiveColor // Now marker, highlights, delta arrow
	Subtext lipgloss.AdaptiveColor
	Alert   lipgloss.AdaptiveColor // pill marker dot

	// Surfaces
	Surface lipgloss.AdaptiveColor // cards, pills
	Border  lipgloss.AdaptiveColor
	Grid    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Title    lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Pre-computed text styles, created once instead of per frame
	MutedText    lipgloss.Style
	SubtleText   lipgloss.Style
	PrimaryBold  lipgloss.Style
	AccentText   lipgloss.Style
	AlertDot     lipgloss.Style
	KeyHint      lipgloss.Style
	ErrorText    lipgloss.Style
	ActiveTab    lipgloss.Style
	InactiveTab  lipgloss.Style
	ChartLine    lipgloss.Style
	ChartGrid    lipgloss.Style
	ChartNow     lipgloss.Style
	ChartHover   lipgloss.Style
	ResultBanner lipgloss.Style
}

// DefaultTheme returns the dark dashboard theme (adaptive for light terminals).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#3F7A00", Dark: "#B6FF6C"}, // Lime
		Accent:  lipgloss.AdaptiveColor{Light: "#5C7300", Dark: "#D4FF3F"}, // Chartreuse
		Subtext: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"},
		Alert:   lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF4747"},

		Surface: lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#232323"},
		Border:  lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#525252"},
		Grid:    lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#333333"},
		Muted:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"})
	t.Title = t.Base.Bold(true)

	t.Card = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.Selected = r.NewStyle().
		Foreground(t.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Bold(true)

	t.Header = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SubtleText = r.NewStyle().Foreground(t.Subtext)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.AccentText = r.NewStyle().Foreground(t.Accent)
	t.AlertDot = r.NewStyle().Foreground(t.Alert).Bold(true)
	t.KeyHint = r.NewStyle().Foreground(t.Muted)
	t.ErrorText = r.NewStyle().Foreground(t.Alert).Bold(true)
	t.ActiveTab = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
		Background(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#242424"}).
		Bold(true).
		Padding(0, 1)
	t.InactiveTab = r.NewStyle().Foreground(t.Subtext).Padding(0, 1)
	t.ChartLine = r.NewStyle().Foreground(t.Primary)
	t.ChartGrid = r.NewStyle().Foreground(t.Grid)
	t.ChartNow = r.NewStyle().Foreground(t.Accent)
	t.ChartHover = r.NewStyle().Foreground(t.Accent).Bold(true)
	t.ResultBanner = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#4D6B00", Dark: "#C9FF3B"}).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#7A9A20", Dark: "#C8E972"}).
		Padding(0, 2)

	return t
}

// Faded returns s drawn faint, used for the first frame of an opening panel
// and for content behind the slide-over.
func (t Theme) Faded(s lipgloss.Style) lipgloss.Style {
	return s.Faint(true)
}

// DeltaStyle colors a tooltip delta line by sign.
func (t Theme) DeltaStyle(delta float64) lipgloss.Style {
	switch {
	case delta > 0:
		return t.AccentText
	case delta < 0:
		return t.AlertDot.UnsetBold()
	default:
		return t.SubtleText
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
