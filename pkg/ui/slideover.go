package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fleetdash/pkg/config"
	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/panel"
	"github.com/vanderheijden86/fleetdash/pkg/store"
)

// accordionGroups are the slide-over sections below the pill categories.
var accordionGroups = []struct {
	Name  string
	Title string
}{
	{model.GroupPrimary, "Primary Variables"},
	{model.GroupSecondary, "Secondary Variables"},
}

// ══════════════════════════════════════════════════════════════════════════════
// KEYS
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) handleSlideOverKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) {
		m.slideOver.Close()
		return m, nil
	}
	if key.Matches(msg, m.keys.Rerun) {
		return m, m.rerun()
	}
	if m.layout == config.LayoutSliders {
		return m.handleSliderKeys(msg)
	}
	return m.handlePillKeys(msg)
}

func (m Model) pillRowCount() int {
	return len(m.state.Scenario.Categories) + len(accordionGroups)
}

// visiblePills returns the pills of category c matching the search filter.
func (m Model) visiblePills(c model.Category) []model.Pill {
	q := strings.ToLower(strings.TrimSpace(m.state.Search))
	if q == "" {
		return c.Pills
	}
	var out []model.Pill
	for _, p := range c.Pills {
		if strings.Contains(strings.ToLower(p.Label), q) || strings.Contains(strings.ToLower(p.ID), q) {
			out = append(out, p)
		}
	}
	return out
}

// ensurePillFocus keeps keyboard focus on a visible pill of the focused row.
func (m *Model) ensurePillFocus() {
	cats := m.state.Scenario.Categories
	if m.slideRow >= len(cats) {
		return
	}
	c := cats[m.slideRow]
	pills := m.visiblePills(c)
	if m.state.FocusedPill.Category == c.ID {
		for _, p := range pills {
			if p.ID == m.state.FocusedPill.ID {
				return
			}
		}
	}
	if len(pills) == 0 {
		if !m.state.FocusedPill.IsZero() {
			m.dispatch(store.FocusPill{})
		}
		return
	}
	m.dispatch(store.FocusPill{Category: c.ID, ID: pills[0].ID})
}

func (m Model) handlePillKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	cats := m.state.Scenario.Categories
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchActive = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Autofill):
		m.dispatch(store.ResetVariables{})
		m.setStatus("Variables reset to scenario defaults", false)

	case key.Matches(msg, m.keys.Up):
		if m.slideRow > 0 {
			m.slideRow--
			m.ensurePillFocus()
		}

	case key.Matches(msg, m.keys.Down):
		if m.slideRow < m.pillRowCount()-1 {
			m.slideRow++
			m.ensurePillFocus()
		}

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if m.slideRow >= len(cats) {
			break
		}
		c := cats[m.slideRow]
		pills := m.visiblePills(c)
		if len(pills) == 0 {
			break
		}
		idx := 0
		for i, p := range pills {
			if m.state.FocusedPill == (store.PillRef{Category: c.ID, ID: p.ID}) {
				idx = i
			}
		}
		if key.Matches(msg, m.keys.Left) {
			idx = clampInt(idx-1, 0, len(pills)-1)
		} else {
			idx = clampInt(idx+1, 0, len(pills)-1)
		}
		m.dispatch(store.FocusPill{Category: c.ID, ID: pills[idx].ID})

	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Select):
		if m.slideRow < len(cats) {
			if f := m.state.FocusedPill; !f.IsZero() {
				m.dispatch(store.TogglePill(f))
			}
			break
		}
		i := m.slideRow - len(cats)
		if i >= len(accordionGroups) {
			break
		}
		m.dispatch(store.ToggleAccordion{Name: accordionGroups[i].Name})
	}
	return m, nil
}

func (m Model) selectedVariableIndex() int {
	for i, v := range m.state.Variables {
		if v.ID == m.state.SelectedVariableID {
			return i
		}
	}
	return -1
}

func (m Model) handleSliderKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	vars := m.state.Variables
	if len(vars) == 0 {
		return m, nil
	}
	sel := m.selectedVariableIndex()
	if sel < 0 {
		sel = 0
	}
	v := vars[sel]

	switch {
	case key.Matches(msg, m.keys.Up):
		m.dispatch(store.SetSelectedVariable{ID: vars[clampInt(sel-1, 0, len(vars)-1)].ID})

	case key.Matches(msg, m.keys.Down):
		m.dispatch(store.SetSelectedVariable{ID: vars[clampInt(sel+1, 0, len(vars)-1)].ID})

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		step := v.Step()
		if key.Matches(msg, m.keys.Left) {
			step = -step
		}
		m.dispatch(store.UpdateVariable{ID: v.ID, Value: stepValue(v, step)})

	case key.Matches(msg, m.keys.Toggle):
		m.dispatch(store.ToggleVariable{ID: v.ID})

	case key.Matches(msg, m.keys.Exact), key.Matches(msg, m.keys.Select):
		m.valueInput = newValueInput(v)
		return m, m.valueInput.form.Init()

	case key.Matches(msg, m.keys.Autofill):
		m.dispatch(store.ResetVariables{})
		m.setStatus("Variables reset to scenario defaults", false)
	}
	return m, nil
}

// stepValue moves v by delta along its slider. Slider moves stay inside the
// range; a value typed outside the range snaps back to the nearest bound.
func stepValue(v model.Variable, delta float64) float64 {
	next := v.Value + delta
	if next < v.Min {
		next = v.Min
	}
	if next > v.Max {
		next = v.Max
	}
	return next
}

// ══════════════════════════════════════════════════════════════════════════════
// EXACT VALUE INPUT
// ══════════════════════════════════════════════════════════════════════════════

func newValueInput(v model.Variable) *valueInput {
	raw := formatNumber(v.Value)
	vi := &valueInput{id: v.ID, raw: &raw}
	vi.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(v.Name).
				Description("Range "+formatRange(v)).
				Value(vi.raw).
				Validate(validateNumber),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	return vi
}

func validateNumber(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func (m Model) updateValueInput(msg tea.Msg) (Model, tea.Cmd) {
	vi := m.valueInput
	next, cmd := vi.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		vi.form = f
	}

	switch vi.form.State {
	case huh.StateCompleted:
		m.valueInput = nil
		value, err := strconv.ParseFloat(strings.TrimSpace(*vi.raw), 64)
		if err != nil {
			m.setStatus(fmt.Sprintf("Invalid value %q", *vi.raw), true)
			return m, nil
		}
		m.dispatch(store.UpdateVariable{ID: vi.id, Value: value})
		if v, ok := m.state.Variable(vi.id); ok && !v.InRange() {
			m.setStatus(fmt.Sprintf("%s set to %s, outside %s", v.Name, formatNumber(value), formatRange(v)), true)
		}
		return m, nil
	case huh.StateAborted:
		m.valueInput = nil
		return m, nil
	}
	return m, cmd
}

// ══════════════════════════════════════════════════════════════════════════════
// RENDERING
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) slideOverWidth() int {
	w := SlideOverWidth
	if max := m.width - SidebarWidth; w > max {
		w = max
	}
	return w
}

// renderSlideOver draws the variables editor at the given height.
func (m Model) renderSlideOver(height int) string {
	t := m.theme
	w := m.slideOverWidth()
	inner := w - 3 // left border + horizontal padding

	title := t.Title.Render("Edit Variables")
	closeHint := t.MutedText.Render("esc ✕")
	gap := inner - lipgloss.Width(title) - lipgloss.Width(closeHint)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + closeHint

	var body string
	if m.layout == config.LayoutSliders {
		body = m.renderSliderBody(inner, height-2)
	} else {
		body = m.renderPillBody(inner)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body)
	style := OverlayStyle.Width(w - 1).Height(height).MaxHeight(height)
	if m.slideOver.State() == panel.Opening {
		style = t.Faded(style)
	}
	return style.Render(content)
}

func (m Model) renderPillBody(width int) string {
	t := m.theme
	var sections []string

	m.search.Width = width - 26
	searchBox := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Render(m.search.View())
	autofill := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Render("a Autofill")
	rerun := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Foreground(ColorPrimary).
		Render("↻ Rerun")
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, searchBox, autofill, rerun))

	cats := m.state.Scenario.Categories
	for i, c := range cats {
		label := t.SubtleText.Render(c.Name)
		if i == m.slideRow {
			label = t.PrimaryBold.Render("▸ " + c.Name)
		}
		sections = append(sections, label)

		var rendered []string
		for _, p := range m.visiblePills(c) {
			ref := store.PillRef{Category: c.ID, ID: p.ID}
			focused := i == m.slideRow && m.state.FocusedPill == ref
			rendered = append(rendered, RenderPill(p, m.state.Pills.Selected(c.ID, p.ID), focused, t))
		}
		if len(rendered) == 0 {
			sections = append(sections, t.MutedText.Render("  no matching variables"))
		} else {
			sections = append(sections, wrapPills(rendered, width))
		}
		sections = append(sections, "")
	}

	sections = append(sections, m.renderDescriptionCard(width))

	for i, g := range accordionGroups {
		open := m.state.OpenAccordions.Has(g.Name)
		chevron := "▸"
		if open {
			chevron = "▾"
		}
		style := PanelStyle
		if m.slideRow == len(cats)+i {
			style = FocusedPanelStyle
		}
		titleW := width - 4 - lipgloss.Width(chevron)
		head := t.PrimaryBold.Render(padRight(g.Title, titleW)) + chevron
		block := head
		if open {
			block = lipgloss.JoinVertical(lipgloss.Left, head, m.renderGroupVariables(g.Name, width-4))
		}
		sections = append(sections, style.Width(width-2).Render(block))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// wrapPills lays pills out in rows no wider than width.
func wrapPills(pills []string, width int) string {
	var lines []string
	line, lineW := "", 0
	for _, p := range pills {
		pw := lipgloss.Width(p)
		if lineW > 0 && lineW+1+pw > width {
			lines = append(lines, line)
			line, lineW = "", 0
		}
		if lineW > 0 {
			line += " "
			lineW++
		}
		line += p
		lineW += pw
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderDescriptionCard explains the focused pill, falling back to the first
// selected pill that has a description.
func (m Model) renderDescriptionCard(width int) string {
	t := m.theme
	var pill *model.Pill
	if f := m.state.FocusedPill; !f.IsZero() {
		for _, c := range m.state.Scenario.Categories {
			if c.ID == f.Category {
				pill = c.FindPill(f.ID)
			}
		}
	}
	if pill == nil || pill.Description == "" {
	outer:
		for _, c := range m.state.Scenario.Categories {
			for _, id := range m.state.Pills[c.ID].IDs() {
				if p := c.FindPill(id); p != nil && p.Description != "" {
					pill = p
					break outer
				}
			}
		}
	}
	if pill == nil {
		return ""
	}

	head := t.Title.Render(pill.Label) + " " + t.MutedText.Render("ⓘ")
	desc := t.MutedText.Render("No description")
	if pill.Description != "" {
		desc = m.renderer.Render(pill.Description, width-4)
	}
	return t.Card.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, head, desc))
}

func (m Model) renderGroupVariables(group string, width int) string {
	t := m.theme
	vars := model.InGroup(m.state.Variables, group)
	if len(vars) == 0 {
		return t.MutedText.Render("No variables")
	}
	var lines []string
	for _, v := range vars {
		mark := "○"
		if v.IsActive {
			mark = t.PrimaryBold.Render("●")
		}
		value := formatVariableValue(v)
		if !v.InRange() {
			value = t.ErrorText.Render(value)
		}
		name := truncate(v.Name, width/2)
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, padRight(name, width/2), value))
	}
	return strings.Join(lines, "\n")
}

const sliderBlockHeight = 5

func (m Model) renderSliderBody(width, height int) string {
	t := m.theme
	vars := m.state.Variables
	if len(vars) == 0 {
		return t.MutedText.Render("No variables")
	}

	formH := 0
	var form string
	if m.valueInput != nil {
		form = m.valueInput.form.View()
		formH = lipgloss.Height(form) + 1
	}

	visible := (height - formH) / sliderBlockHeight
	if visible < 1 {
		visible = 1
	}
	sel := m.selectedVariableIndex()
	start := 0
	if sel >= visible {
		start = sel - visible + 1
	}

	var blocks []string
	for i := start; i < len(vars) && i < start+visible; i++ {
		v := vars[i]
		selected := i == sel

		name := t.Title.Render(v.Name)
		if selected {
			name = t.PrimaryBold.Render("▸ " + v.Name)
		}
		if v.IsActive {
			name += " " + t.AccentText.Render("● active")
		}
		current := "Current: " + formatVariableValue(v)
		if !v.InRange() {
			current = t.ErrorText.Render(current + " (out of range)")
		}
		rng := t.MutedText.Render(formatRange(v))
		gap := width - lipgloss.Width(current) - lipgloss.Width(rng)
		if gap < 1 {
			gap = 1
		}

		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left,
			name,
			t.MutedText.Render(truncate(v.Description, width)),
			current+strings.Repeat(" ", gap)+rng,
			RenderSlider(v, width, selected, t),
			"",
		))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	if form != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, form)
	}
	return out
}
