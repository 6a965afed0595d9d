package ui

import (
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

func TestTruncate_UTF8Safe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "zero max", input: "hello", maxWidth: 0, want: ""},
		{name: "fits", input: "hello", maxWidth: 10, want: "hello"},
		{name: "ellipsis", input: "Charging Stations", maxWidth: 8, want: "Chargin…"},
		{name: "wide runes", input: "日本語タイトル", maxWidth: 5, want: "日本…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q; want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate output is not valid UTF-8: %q", got)
			}
			if w := runewidth.StringWidth(got); w > tt.maxWidth {
				t.Fatalf("truncate output is %d cells; max %d", w, tt.maxWidth)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("日本", 5); runewidth.StringWidth(got) != 5 {
		t.Errorf("padRight wide = %q (%d cells)", got, runewidth.StringWidth(got))
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Errorf("padRight should not cut, got %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		42:     "42",
		2.5:    "2.5",
		0.64:   "0.64",
		-3:     "-3",
		150000: "150000",
	}
	for in, want := range tests {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatVariable(t *testing.T) {
	v := model.Variable{Min: 0, Max: 10, Value: 2.5, Unit: "€/h"}
	if got := formatVariableValue(v); got != "2.5 €/h" {
		t.Errorf("formatVariableValue = %q", got)
	}
	if got := formatRange(v); got != "0 – 10 €/h" {
		t.Errorf("formatRange = %q", got)
	}
	v.Unit = ""
	if got := formatRange(v); got != "0 – 10" {
		t.Errorf("formatRange without unit = %q", got)
	}
}

func TestAxisLabel(t *testing.T) {
	if got := axisLabel(20000); got != "$20K" {
		t.Errorf("axisLabel(20000) = %q", got)
	}
	if got := axisLabel(100000); got != "$100K" {
		t.Errorf("axisLabel(100000) = %q", got)
	}
}

func TestClampInt(t *testing.T) {
	if clampInt(-1, 0, 5) != 0 || clampInt(9, 0, 5) != 5 || clampInt(3, 0, 5) != 3 {
		t.Error("clampInt out of bounds")
	}
}
