package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// formatPointForClipboard renders the hovered point as a small markdown block.
func formatPointForClipboard(p model.DataPoint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s at %s\n\n", p.Variable, p.Time)
	fmt.Fprintf(&sb, "- **Time**: %s\n", p.Time)
	fmt.Fprintf(&sb, "- **Variable**: %s\n", p.Variable)
	fmt.Fprintf(&sb, "- **Current Value**: %s\n", formatNumber(p.Value))
	sb.WriteString("\n### All Values\n\n")
	for _, nv := range p.Values() {
		fmt.Fprintf(&sb, "- %s: %s\n", nv.Key, formatNumber(nv.Value))
	}
	return sb.String()
}

// copyPointToClipboard copies p and reports the outcome in the status line.
func (m *Model) copyPointToClipboard(p *model.DataPoint) {
	if p == nil {
		m.setStatus("No data point selected", true)
		return
	}
	if err := clipboardWrite(formatPointForClipboard(*p)); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s at %s to clipboard", p.Variable, p.Time), false)
}
