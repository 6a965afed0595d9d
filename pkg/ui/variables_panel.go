package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/store"
)

// maxVariableRows caps the main-page variables panel; the list scrolls to
// keep the hovered row visible.
const maxVariableRows = 6

func (m Model) hoveredVariableIndex() int {
	if m.state.HoveredVariableID == "" {
		return -1
	}
	for i, v := range m.state.Variables {
		if v.ID == m.state.HoveredVariableID {
			return i
		}
	}
	return -1
}

// renderVariablesPanel draws the sliders-layout variables list. Row
// geometry goes into g with varsY relative to the panel's top edge.
func (m Model) renderVariablesPanel(width int, g *frameGeometry) string {
	t := m.theme
	vars := m.state.Variables
	inner := width - 4

	title := t.Title.Render("Variables")
	hint := t.MutedText.Render("v focus • enter edit")
	gap := inner - lipgloss.Width(title) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	lines := []string{title + strings.Repeat(" ", gap) + hint}

	hovered := m.hoveredVariableIndex()
	start := 0
	if hovered >= maxVariableRows {
		start = hovered - maxVariableRows + 1
	}
	count := 0
	for i := start; i < len(vars) && count < maxVariableRows; i++ {
		lines = append(lines, m.renderVariableRow(vars[i], i == hovered, inner))
		count++
	}
	if len(vars) == 0 {
		lines = append(lines, t.MutedText.Render("No variables"))
	}

	g.varsX = SidebarWidth + 2
	g.varsY = 2
	g.varsW = inner
	g.varStart = start
	g.varCount = count

	style := PanelStyle.Padding(0, 1).Width(width - 2)
	if m.focus == focusVariables {
		style = FocusedPanelStyle.Padding(0, 1).Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderVariableRow(v model.Variable, hovered bool, width int) string {
	t := m.theme
	mark := t.MutedText.Render("○")
	if v.IsActive {
		mark = t.PrimaryBold.Render("●")
	}
	value := formatVariableValue(v)
	valueStyle := t.SubtleText
	if !v.InRange() {
		valueStyle = t.ErrorText
	}
	nameW := width - 4 - lipgloss.Width(value)
	if nameW < 4 {
		nameW = 4
	}
	name := padRight(truncate(v.Name, nameW), nameW)
	if hovered {
		name = t.PrimaryBold.Render(name)
	}
	return mark + " " + name + " " + valueStyle.Render(value)
}

// renderVariableTooltip is the hover card for a variables panel row.
func (m Model) renderVariableTooltip(v model.Variable) string {
	t := m.theme
	const w = 34
	lines := []string{t.Title.Render(truncate(v.Name, w-4))}
	if v.Description != "" {
		lines = append(lines, t.MutedText.Width(w-4).Render(v.Description))
	}
	lines = append(lines,
		t.SubtleText.Render("Range: ")+formatRange(v),
		t.SubtleText.Render("Current: ")+formatVariableValue(v)+" "+RenderStatusBadge(v.InRange()),
	)
	return t.Card.Width(w - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) handleVariablesPanelKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	vars := m.state.Variables
	if len(vars) == 0 {
		if key.Matches(msg, m.keys.Close) {
			m.focus = focusChart
		}
		return m, nil
	}
	idx := m.hoveredVariableIndex()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.dispatch(store.SetHoveredVariable{ID: vars[clampInt(idx-1, 0, len(vars)-1)].ID})

	case key.Matches(msg, m.keys.Down):
		m.dispatch(store.SetHoveredVariable{ID: vars[clampInt(idx+1, 0, len(vars)-1)].ID})

	case key.Matches(msg, m.keys.Toggle):
		if idx >= 0 {
			m.dispatch(store.ToggleVariable{ID: vars[idx].ID})
		}

	case key.Matches(msg, m.keys.Select):
		if idx >= 0 {
			m.dispatch(store.SetSelectedVariable{ID: vars[idx].ID})
			m.openSlideOver()
		}

	case key.Matches(msg, m.keys.Close):
		m.focus = focusChart
		m.dispatch(store.SetHoveredVariable{ID: ""})
	}
	return m, nil
}
