package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fleetdash/pkg/store"
)

// handleMouse maps pointer events onto the geometry of the current frame.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	_, g := m.renderMain()
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	// Open overlays capture the pointer; a click outside closes them.
	if m.popover.State().Visible() && m.state.HoveredDataPoint != nil {
		if press {
			card, x, y := m.popoverBox()
			inside := msg.X >= x && msg.X < x+lipgloss.Width(card) &&
				msg.Y >= y && msg.Y < y+lipgloss.Height(card)
			if !inside {
				m.popover.Close()
			}
		}
		return m, nil
	}
	if m.slideOver.State().Visible() {
		if press && msg.X < g.slideX {
			m.slideOver.Close()
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if i := g.chartPointAt(msg.X, msg.Y); i >= 0 {
			m.hoverIdx = i
			m.focus = focusChart
		} else if msg.Y >= g.chartY && msg.Y < g.chartY+g.chart.Height {
			m.hoverIdx = -1
		}
		if i := g.variableAt(msg.X, msg.Y); i >= 0 {
			if id := m.state.Variables[i].ID; id != m.state.HoveredVariableID {
				m.dispatch(store.SetHoveredVariable{ID: id})
			}
		} else if m.focus != focusVariables && m.state.HoveredVariableID != "" {
			m.dispatch(store.SetHoveredVariable{ID: ""})
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		if msg.Y == 0 {
			for i, s := range g.tabs {
				if s.contains(msg.X) {
					m.dispatch(store.SetActiveTab{Index: i})
					return m, nil
				}
			}
		}
		if g.resultsY >= 0 && msg.Y == g.resultsY && msg.X >= SidebarWidth {
			m.dispatch(store.ToggleResults{})
			return m, nil
		}
		if i := g.chartPointAt(msg.X, msg.Y); i >= 0 {
			m.hoverIdx = i
			m.openPopover(i)
			return m, nil
		}
		if i := g.variableAt(msg.X, msg.Y); i >= 0 {
			m.dispatch(store.ToggleVariable{ID: m.state.Variables[i].ID})
		}
	}
	return m, nil
}
