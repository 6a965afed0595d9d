package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vanderheijden86/fleetdash/pkg/config"
	"github.com/vanderheijden86/fleetdash/pkg/metrics"
	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/panel"
	"github.com/vanderheijden86/fleetdash/pkg/tooltip"
	"github.com/vanderheijden86/fleetdash/pkg/version"
)

type span struct{ x0, x1 int }

func (s span) contains(x int) bool { return x >= s.x0 && x < s.x1 }

// frameGeometry records where renderMain put things, in absolute cells, so
// mouse events hit exactly what was drawn.
type frameGeometry struct {
	tabs []span

	chart          Chart
	chartX, chartY int

	resultsY int // results banner header row, -1 when absent

	// Variables panel rows (sliders layout only).
	varsX, varsY, varsW int
	varStart, varCount  int

	bodyY, bodyH int
	slideX       int
}

// hasVariables reports whether the variables panel was drawn.
func (g frameGeometry) hasVariables() bool { return g.varCount > 0 }

// variableAt returns the variable index drawn at (x, y), or -1.
func (g frameGeometry) variableAt(x, y int) int {
	if !g.hasVariables() || x < g.varsX || x >= g.varsX+g.varsW {
		return -1
	}
	row := y - g.varsY
	if row < 0 || row >= g.varCount {
		return -1
	}
	return g.varStart + row
}

// chartPointAt returns the series index under (x, y), or -1.
func (g frameGeometry) chartPointAt(x, y int) int {
	return g.chart.HitTest(x-g.chartX, y-g.chartY)
}

var sidebarIcons = []string{"☰", "⌂", "◔", "⇪", "⚙"}

// View renders the dashboard.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}
	defer metrics.Timer(metrics.UIRender)()
	frame, g := m.renderMain()
	return m.renderOverlays(frame, g)
}

// renderMain draws everything below the overlays.
func (m Model) renderMain() (string, frameGeometry) {
	g := frameGeometry{resultsY: -1}

	header, tabs := m.renderHeader()
	g.tabs = tabs

	footer := m.renderFooter()
	footerH := lipgloss.Height(footer)
	g.bodyY = HeaderHeight
	g.bodyH = m.height - HeaderHeight - footerH
	if g.bodyH < 1 {
		g.bodyH = 1
	}

	content := m.renderContent(&g)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(g.bodyH), content)
	body = fitFrame(body, m.width, g.bodyH)

	g.slideX = m.width - m.slideOverWidth()
	frame := strings.Join([]string{fitFrame(header, m.width, HeaderHeight), body, fitFrame(footer, m.width, footerH)}, "\n")
	return frame, g
}

func (m Model) renderHeader() (string, []span) {
	t := m.theme
	x := SidebarWidth
	var parts []string
	var spans []span
	for i, tab := range m.state.Scenario.Tabs {
		style := t.InactiveTab
		if i == m.state.ActiveTab {
			style = t.ActiveTab
		}
		s := style.Render(tab)
		w := lipgloss.Width(s)
		spans = append(spans, span{x, x + w})
		parts = append(parts, s)
		x += w
	}
	left := strings.Repeat(" ", SidebarWidth) + strings.Join(parts, "")
	right := t.MutedText.Render("fleetdash " + version.Version)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right + "\n" + RenderDivider(m.width), spans
}

func (m Model) renderSidebar(height int) string {
	t := m.theme
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", SidebarWidth)
	}
	for i, icon := range sidebarIcons {
		row := 1 + i*2
		if row >= height {
			break
		}
		style := t.MutedText
		if icon == "◔" {
			style = t.PrimaryBold
		}
		lines[row] = "  " + style.Render(icon) + "  "
	}
	if height > 2 {
		lines[height-2] = "  " + t.AccentText.Render("◉") + "  "
	}
	return strings.Join(lines, "\n")
}

// renderContent draws the page to the right of the sidebar and fills in the
// chart, results and variables geometry.
func (m Model) renderContent(g *frameGeometry) string {
	t := m.theme
	x0 := SidebarWidth
	cw := m.width - SidebarWidth - 1
	if cw < 20 {
		cw = 20
	}
	sc := m.state.Scenario
	dimmed := m.slideOver.State().Visible()

	var sections []string
	y := g.bodyY
	add := func(s string) {
		sections = append(sections, s)
		y += lipgloss.Height(s)
	}

	// Title row.
	tabName := sc.Title
	if m.state.ActiveTab < len(sc.Tabs) {
		tabName = sc.Tabs[m.state.ActiveTab]
	}
	title := t.Title.Render("⚡ " + tabName)
	hint := t.PrimaryBold.Render("[e] Edit Variables")
	gap := cw - lipgloss.Width(title) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	add(title + strings.Repeat(" ", gap) + hint)
	add("")

	if len(sc.Results) > 0 {
		g.resultsY = y + 1
		add(m.renderResults(cw))
		add("")
	}

	graphs := t.Title.Render("Graphs")
	if sc.SeriesName != "" {
		graphs += "  " + t.ChartLine.Render("──") + " " + t.SubtleText.Render(sc.SeriesName)
	}
	add(graphs)

	var vars string
	if m.layout == config.LayoutSliders {
		vars = m.renderVariablesPanel(cw, g)
	}

	chartBoxW, kpiW := cw, 0
	showKPIs := !dimmed && len(sc.KPIs) > 0
	if showKPIs {
		chartBoxW = cw * 3 / 5
		kpiW = cw - chartBoxW - 1
		if kpiW < KPIColumnMin {
			chartBoxW, kpiW = cw, cw
		}
	}

	kpis := ""
	if showKPIs {
		kpis = m.renderKPIGrid(sc.KPIs, kpiW)
	}
	fixed := y - g.bodyY + 2 // chart box border
	if vars != "" {
		fixed += lipgloss.Height(vars) + 1
	}
	if showKPIs && kpiW == cw {
		fixed += lipgloss.Height(kpis)
	}
	chartH := clampInt(g.bodyH-fixed, ChartHeightMin, ChartHeightMax)

	g.chart = NewChart(sc, chartBoxW-4, chartH)
	g.chartX = x0 + 2
	g.chartY = y + 1
	box := PanelStyle.Padding(0, 1).Width(chartBoxW - 2)
	if m.focus == focusChart && !dimmed {
		box = FocusedPanelStyle.Padding(0, 1).Width(chartBoxW - 2)
	}
	chartBox := box.Render(g.chart.Render(m.hoverIdx, t, dimmed))

	switch {
	case showKPIs && kpiW == cw:
		add(chartBox)
		add(kpis)
	case showKPIs:
		add(lipgloss.JoinHorizontal(lipgloss.Top, chartBox, " ", kpis))
	default:
		add(chartBox)
	}

	if vars != "" {
		add("")
		if g.hasVariables() {
			g.varsY += y
		}
		add(vars)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderResults(width int) string {
	t := m.theme
	chevron := "▸"
	if m.state.ResultsExpanded {
		chevron = "▾"
	}
	inner := width - 6
	head := t.PrimaryBold.Render(padRight("✦ Best Scenario Results", inner-2)) + " " + chevron
	lines := []string{head}
	if m.state.ResultsExpanded {
		for _, r := range m.state.Scenario.Results {
			text := r.Text
			if r.Metric != "" {
				text = r.Metric + ": " + text
			}
			lines = append(lines, "• "+text)
		}
	}
	return t.ResultBanner.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderKPIGrid(kpis []model.KPI, width int) string {
	cardW := (width - 1) / 2
	var rows []string
	for i := 0; i < len(kpis); i += 2 {
		left := RenderKPICard(kpis[i], cardW, m.theme)
		if i+1 < len(kpis) {
			right := RenderKPICard(kpis[i+1], cardW, m.theme)
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
		} else {
			rows = append(rows, left)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderFooter() string {
	t := m.theme
	if m.statusMsg != "" {
		if m.statusIsError {
			return t.ErrorText.Render("✗ " + m.statusMsg)
		}
		return t.AccentText.Render("✓ " + m.statusMsg)
	}
	h := m.help
	h.Width = m.width
	switch {
	case m.valueInput != nil:
		return t.MutedText.Render("enter confirm • esc cancel")
	case m.popover.State().Visible():
		h.ShowAll = false
		return h.View(popoverHelp{keys: m.keys})
	case m.slideOver.State().Visible():
		h.ShowAll = false
		return h.View(slideOverHelp{keys: m.keys, sliders: m.layout == config.LayoutSliders})
	}
	return h.View(help.KeyMap(m.keys))
}

// renderOverlays composes tooltips and panels over the main frame.
func (m Model) renderOverlays(frame string, g frameGeometry) string {
	t := m.theme
	popoverVisible := m.popover.State().Visible() && m.state.HoveredDataPoint != nil
	slideVisible := m.slideOver.State().Visible()

	if m.hoverIdx >= 0 && m.hoverIdx < len(g.chart.Series) && !popoverVisible && !slideVisible {
		a := g.chart.Anchor(m.hoverIdx)
		a.X += float64(g.chartX)
		a.Y += float64(g.chartY)
		x, y := tooltip.Position(a, m.geometry).Cell()
		content := tooltip.NewContent(g.chart.Series[m.hoverIdx].Value, m.state.Scenario.Target)
		frame = placeOverlay(frame, renderTooltip(content, m.geometry, t), x, y)
	}

	if idx := m.hoveredVariableIndex(); idx >= 0 && !slideVisible && !popoverVisible && g.hasVariables() {
		row := idx - g.varStart
		if row >= 0 && row < g.varCount {
			card := m.renderVariableTooltip(m.state.Variables[idx])
			x := g.varsX + g.varsW/2
			if x+lipgloss.Width(card) > m.width {
				x = m.width - lipgloss.Width(card)
			}
			frame = placeOverlay(frame, card, x, g.varsY+row+1)
		}
	}

	if slideVisible {
		frame = placeOverlay(frame, m.renderSlideOver(g.bodyH), g.slideX, g.bodyY)
	}

	if popoverVisible {
		card, x, y := m.popoverBox()
		frame = placeOverlay(frame, card, x, y)
	}
	return frame
}

// popoverBox renders the detail popover and returns its centered origin.
func (m Model) popoverBox() (string, int, int) {
	w := PopoverWidth
	if w > m.width-2 {
		w = m.width - 2
	}
	card := RenderDataPointDetails(*m.state.HoveredDataPoint, w, m.theme)
	if m.popover.State() == panel.Opening {
		card = m.theme.Faded(m.theme.Renderer.NewStyle()).Render(ansi.Strip(card))
	}
	x := (m.width - lipgloss.Width(card)) / 2
	y := (m.height - lipgloss.Height(card)) / 2
	return card, x, y
}

// fitFrame pads or cuts s to exactly width x height cells.
func fitFrame(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			l = ansi.Truncate(l, width, "")
		}
		// A wide rune cut at the edge leaves the line one cell short.
		if w := ansi.StringWidth(l); w < width {
			l += strings.Repeat(" ", width-w)
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}
