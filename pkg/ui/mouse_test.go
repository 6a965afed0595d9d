package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/fleetdash/pkg/config"
	"github.com/vanderheijden86/fleetdash/pkg/panel"
	"github.com/vanderheijden86/fleetdash/pkg/testutil"
)

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// pointCell returns the absolute cell of series point i in the current frame.
func pointCell(m Model, i int) (int, int) {
	_, g := m.renderMain()
	a := g.chart.Anchor(i)
	return g.chartX + int(a.X), g.chartY + int(a.Y)
}

func TestMouseHoverChart(t *testing.T) {
	m, _ := newTestModel(t, config.LayoutPills)
	x, y := pointCell(m, 1)

	m, _ = send(m, motion(x, y))
	if m.HoverIndex() != 1 {
		t.Fatalf("hover index = %d, want 1", m.HoverIndex())
	}
	testutil.AssertContainsAll(t, plainView(m), "$0.04k")

	// Leaving the points but staying on the chart rows clears the hover.
	_, g := m.renderMain()
	m, _ = send(m, motion(g.chartX, g.chartY))
	if m.HoverIndex() != -1 {
		t.Errorf("hover should clear off the points, got %d", m.HoverIndex())
	}
}

func TestMouseClickOpensAndClosesPopover(t *testing.T) {
	m, _ := newTestModel(t, config.LayoutPills)
	x, y := pointCell(m, 2)

	m, _ = send(m, click(x, y))
	if m.PopoverState() != panel.Opening {
		t.Fatalf("click on a point should open the popover, got %s", m.PopoverState())
	}
	if p := m.State().HoveredDataPoint; p == nil || p.Time != "11:00" {
		t.Fatalf("unexpected hovered point %+v", p)
	}

	// Clicks inside the card are swallowed.
	card, cx, cy := m.popoverBox()
	_ = card
	m, _ = send(m, click(cx+1, cy+1))
	if !m.PopoverState().Visible() {
		t.Fatal("click inside the card must not close it")
	}

	m, _ = send(m, click(0, m.height-1))
	if m.PopoverState() != panel.Closing {
		t.Errorf("click outside should close the popover, got %s", m.PopoverState())
	}
}

func TestMouseClickTab(t *testing.T) {
	m, _ := newTestModel(t, config.LayoutPills)
	_, g := m.renderMain()
	if len(g.tabs) != 2 {
		t.Fatalf("expected two tab spans, got %v", g.tabs)
	}
	m, _ = send(m, click(g.tabs[1].x0, 0))
	if m.State().ActiveTab != 1 {
		t.Errorf("active tab = %d, want 1", m.State().ActiveTab)
	}
}

func TestMouseClickResultsHeader(t *testing.T) {
	m, _ := newTestModel(t, config.LayoutPills)
	_, g := m.renderMain()
	if g.resultsY < 0 {
		t.Fatal("results banner should be drawn")
	}
	m, _ = send(m, click(SidebarWidth+4, g.resultsY))
	if m.State().ResultsExpanded {
		t.Error("clicking the banner header should collapse it")
	}
}

func TestMouseVariableRows(t *testing.T) {
	m, _ := newTestModel(t, config.LayoutSliders)
	_, g := m.renderMain()
	if !g.hasVariables() {
		t.Fatal("sliders layout should draw the variables panel")
	}

	m, _ = send(m, motion(g.varsX+1, g.varsY+1))
	if m.State().HoveredVariableID != "rate" {
		t.Fatalf("hovered variable = %q, want rate", m.State().HoveredVariableID)
	}
	testutil.AssertContainsAll(t, plainView(m), "Parking Rate", "Range:", "Current:")

	m, _ = send(m, click(g.varsX+1, g.varsY+1))
	testutil.AssertActive(t, m.State().Variables, "rate", true)

	m, _ = send(m, motion(0, m.height-1))
	if m.State().HoveredVariableID != "" {
		t.Errorf("moving away should clear the variable hover, got %q", m.State().HoveredVariableID)
	}
}

func TestMouseClickOutsideSlideOver(t *testing.T) {
	m, _ := newTestModel(t, config.LayoutPills)
	m = press(m, "e")
	_, g := m.renderMain()

	m, _ = send(m, click(g.slideX+2, g.bodyY+2))
	if !m.SlideOverState().Visible() {
		t.Fatal("click inside the slide-over must not close it")
	}
	m, _ = send(m, click(g.slideX-1, g.bodyY+2))
	if m.SlideOverState() != panel.Closing {
		t.Errorf("click left of the slide-over should close it, got %s", m.SlideOverState())
	}
}

func TestMouseDisabled(t *testing.T) {
	m, _ := newTestModel(t, config.LayoutPills)
	cfg := m.cfg
	cfg.UI.Mouse = false
	m = m.WithConfig(cfg)
	x, y := pointCell(m, 1)
	m, _ = send(m, click(x, y))
	if m.PopoverState() != panel.Closed {
		t.Error("mouse events should be ignored when disabled")
	}
}
