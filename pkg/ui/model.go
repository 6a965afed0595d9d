package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fleetdash/pkg/clock"
	"github.com/vanderheijden86/fleetdash/pkg/config"
	"github.com/vanderheijden86/fleetdash/pkg/debug"
	"github.com/vanderheijden86/fleetdash/pkg/export"
	"github.com/vanderheijden86/fleetdash/pkg/loader"
	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/panel"
	"github.com/vanderheijden86/fleetdash/pkg/store"
	"github.com/vanderheijden86/fleetdash/pkg/tooltip"
	"github.com/vanderheijden86/fleetdash/pkg/watcher"
)

// focus represents which main-page area receives keys when no overlay is up
type focus int

const (
	focusChart focus = iota
	focusVariables
)

// FileChangedMsg is sent when the scenario file changes on disk
type FileChangedMsg struct{}

// ScenarioLoadedMsg carries the result of a scenario reload.
type ScenarioLoadedMsg struct {
	Scenario model.Scenario
	Err      error
}

// ExportDoneMsg carries the result of an Export Data run.
type ExportDoneMsg struct {
	Paths []string
	Err   error
}

// WatchFileCmd returns a command that waits for file changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ReloadScenarioCmd loads the scenario at path off the UI goroutine.
func ReloadScenarioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		sc, err := loader.Load(path)
		return ScenarioLoadedMsg{Scenario: sc, Err: err}
	}
}

// ExportCmd runs an export in the background.
func ExportCmd(ctx context.Context, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		paths, err := export.ExportAll(ctx, opts)
		return ExportDoneMsg{Paths: paths, Err: err}
	}
}

// Model is the main Bubble Tea model for fleetdash
type Model struct {
	// State
	store *store.Store
	state store.State // snapshot taken after every dispatch

	// Configuration
	cfg      config.Config
	layout   config.Layout
	geometry tooltip.Geometry
	clock    clock.Clock
	ctx      context.Context

	// Panels
	events    *panelEvents
	slideOver *panel.Controller
	popover   *panel.Controller

	// Live reload
	watcher      *watcher.Watcher
	scenarioPath string

	// UI Components
	keys     KeyMap
	help     help.Model
	theme    Theme
	renderer *MarkdownRenderer
	search   textinput.Model

	// Focus and view state
	focus        focus
	hoverIdx     int // hovered chart point, -1 for none
	slideRow     int // focused row in the pills slide-over
	searchActive bool
	valueInput   *valueInput
	exporting    bool
	ready        bool
	width        int
	height       int

	// Status message (for temporary feedback)
	statusMsg     string
	statusIsError bool
}

// NewModel creates a dashboard for sc using the default configuration.
func NewModel(sc model.Scenario) Model {
	cfg := config.DefaultConfig()

	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "⌕ "
	search.CharLimit = 64

	h := help.New()
	h.ShortSeparator = "  "

	m := Model{
		store:    store.NewStore(store.New(sc)),
		cfg:      cfg,
		layout:   cfg.Layout(),
		geometry: tooltip.CellGeometry,
		clock:    clock.Real(),
		ctx:      context.Background(),
		events:   newPanelEvents(),
		keys:     DefaultKeyMap(),
		help:     h,
		theme:    DefaultTheme(lipgloss.DefaultRenderer()),
		renderer: NewMarkdownRenderer(""),
		search:   search,
		hoverIdx: -1,
		// Start ready with default dimensions so the first frame never
		// waits on a WindowSizeMsg.
		ready:  true,
		width:  120,
		height: 40,
	}
	m.state = m.store.Snapshot()
	m.buildPanels()
	m.applyDefaultTab()
	return m
}

// WithConfig applies cfg: layout, panel delays, tooltip size, default tab.
func (m Model) WithConfig(cfg config.Config) Model {
	m.cfg = cfg
	m.layout = cfg.Layout()
	if cfg.Tooltip.Width > 0 && cfg.Tooltip.Height > 0 {
		m.geometry = tooltip.Geometry{
			Width:  float64(cfg.Tooltip.Width),
			Height: float64(cfg.Tooltip.Height),
			Margin: float64(cfg.Tooltip.Margin),
		}
	}
	m.buildPanels()
	m.applyDefaultTab()
	return m
}

// WithClock drives the panel timers from c. Tests pass a clock.Fake.
func (m Model) WithClock(c clock.Clock) Model {
	m.clock = c
	m.buildPanels()
	return m
}

// WithWatcher enables live reload of the scenario at path.
func (m Model) WithWatcher(w *watcher.Watcher, path string) Model {
	m.watcher = w
	m.scenarioPath = path
	return m
}

// WithScenarioPath sets the file used by Rerun without watching it.
func (m Model) WithScenarioPath(path string) Model {
	m.scenarioPath = path
	return m
}

// WithContext bounds background work such as exports.
func (m Model) WithContext(ctx context.Context) Model {
	m.ctx = ctx
	return m
}

func (m *Model) buildPanels() {
	if m.slideOver != nil {
		m.slideOver.Stop()
	}
	if m.popover != nil {
		m.popover.Stop()
	}
	open, closeDelay := m.cfg.OpenDelay(), m.cfg.CloseDelay()
	if open <= 0 {
		open = panel.DefaultOpenDelay
	}
	if closeDelay <= 0 {
		closeDelay = panel.DefaultCloseDelay
	}
	opts := []panel.Option{panel.WithClock(m.clock), panel.WithDelays(open, closeDelay)}
	m.slideOver = m.events.controller(PanelSlideOver, opts...)
	m.popover = m.events.controller(PanelPopover, opts...)
}

func (m *Model) applyDefaultTab() {
	for i, tab := range m.state.Scenario.Tabs {
		if tab == m.cfg.UI.DefaultTab {
			m.dispatch(store.SetActiveTab{Index: i})
			return
		}
	}
}

func (m *Model) dispatch(actions ...store.Action) {
	m.state = m.store.Dispatch(actions...)
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
}

// Init starts the panel event pump and, when enabled, the file watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitPanelEventCmd(m.events)}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The huh form needs every message type, not just keys, for its
	// internal field navigation.
	if m.valueInput != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.valueInput = nil
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.updateValueInput(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

	case PanelStateMsg:
		m.handlePanelState(msg)
		cmds = append(cmds, waitPanelEventCmd(m.events))

	case FileChangedMsg:
		debug.Log("ui: scenario changed on disk")
		if m.scenarioPath != "" {
			cmds = append(cmds, ReloadScenarioCmd(m.scenarioPath))
		}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case ScenarioLoadedMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Reload failed: %v", msg.Err), true)
			break
		}
		m.dispatch(store.LoadScenario{Scenario: msg.Scenario})
		if m.hoverIdx >= len(m.state.Scenario.Series) {
			m.hoverIdx = -1
		}
		m.slideRow = clampInt(m.slideRow, 0, m.pillRowCount()-1)
		m.ensurePillFocus()
		m.popover.Close()
		m.setStatus("Scenario reloaded", false)

	case ExportDoneMsg:
		m.exporting = false
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.Err), true)
			break
		}
		m.setStatus(fmt.Sprintf("Exported %d file(s) to %s", len(msg.Paths), m.cfg.Export.Dir), false)

	case tea.MouseMsg:
		if m.cfg.UI.Mouse {
			var cmd tea.Cmd
			m, cmd = m.handleMouse(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || !m.searchActive) {
			return m, tea.Quit
		}
		m.statusMsg = ""
		var cmd tea.Cmd
		switch {
		case m.searchActive:
			m, cmd = m.handleSearchKeys(msg)
		case m.popover.State().Visible():
			m, cmd = m.handlePopoverKeys(msg)
		case m.slideOver.State().Visible():
			m, cmd = m.handleSlideOverKeys(msg)
		default:
			m, cmd = m.handleMainKeys(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handlePanelState releases panel data once a close has fully completed. A
// panel reopened before this message arrives keeps its data.
func (m *Model) handlePanelState(msg PanelStateMsg) {
	if msg.State != panel.Closed {
		return
	}
	switch msg.Panel {
	case PanelSlideOver:
		if m.slideOver.State() == panel.Closed {
			m.dispatch(store.CloseSlideOver{})
			m.searchActive = false
			m.search.Blur()
		}
	case PanelPopover:
		if m.popover.State() == panel.Closed {
			m.dispatch(store.SetHoveredDataPoint{Point: nil})
		}
	}
}

func (m Model) handleMainKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.state.Scenario.Series)
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextTab):
		if tabs := len(m.state.Scenario.Tabs); tabs > 0 {
			m.dispatch(store.SetActiveTab{Index: (m.state.ActiveTab + 1) % tabs})
		}

	case key.Matches(msg, m.keys.PrevTab):
		if tabs := len(m.state.Scenario.Tabs); tabs > 0 {
			m.dispatch(store.SetActiveTab{Index: (m.state.ActiveTab + tabs - 1) % tabs})
		}

	case key.Matches(msg, m.keys.Edit):
		m.openSlideOver()

	case key.Matches(msg, m.keys.Results):
		m.dispatch(store.ToggleResults{})

	case key.Matches(msg, m.keys.Variables):
		if m.layout == config.LayoutSliders {
			if m.focus == focusVariables {
				m.focus = focusChart
				m.dispatch(store.SetHoveredVariable{ID: ""})
			} else {
				m.focus = focusVariables
				m.hoverIdx = -1
				if m.state.HoveredVariableID == "" && len(m.state.Variables) > 0 {
					m.dispatch(store.SetHoveredVariable{ID: m.state.Variables[0].ID})
				}
			}
		}

	case key.Matches(msg, m.keys.Export):
		return m.startExport()

	case key.Matches(msg, m.keys.Copy):
		if m.hoverIdx >= 0 {
			m.copyPointToClipboard(m.state.Scenario.PointAt(m.hoverIdx))
		} else {
			m.copyPointToClipboard(m.state.HoveredDataPoint)
		}

	case key.Matches(msg, m.keys.Rerun):
		return m, m.rerun()

	case m.focus == focusVariables:
		return m.handleVariablesPanelKeys(msg)

	case key.Matches(msg, m.keys.Left):
		if n > 0 {
			if m.hoverIdx < 0 {
				m.hoverIdx = n - 1
			} else {
				m.hoverIdx = clampInt(m.hoverIdx-1, 0, n-1)
			}
		}

	case key.Matches(msg, m.keys.Right):
		if n > 0 {
			m.hoverIdx = clampInt(m.hoverIdx+1, 0, n-1)
		}

	case key.Matches(msg, m.keys.Select):
		if m.hoverIdx >= 0 {
			m.openPopover(m.hoverIdx)
		}

	case key.Matches(msg, m.keys.Close):
		m.hoverIdx = -1
	}
	return m, nil
}

func (m Model) handlePopoverKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Select):
		m.popover.Close()
	case key.Matches(msg, m.keys.Copy):
		m.copyPointToClipboard(m.state.HoveredDataPoint)
	case key.Matches(msg, m.keys.Export):
		return m.startExport()
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchActive = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Search {
		m.dispatch(store.SetSearch{Query: m.search.Value()})
		m.ensurePillFocus()
	}
	return m, cmd
}

// openSlideOver marks the slide-over open in the store and starts the
// enter transition.
func (m *Model) openSlideOver() {
	m.hoverIdx = -1
	m.dispatch(store.OpenSlideOver{})
	if m.layout == config.LayoutSliders {
		if _, ok := m.state.Variable(m.state.SelectedVariableID); !ok && len(m.state.Variables) > 0 {
			m.dispatch(store.SetSelectedVariable{ID: m.state.Variables[0].ID})
		}
	} else {
		m.ensurePillFocus()
	}
	m.slideOver.Open()
}

// openPopover publishes point i as the hovered data point and shows it.
func (m *Model) openPopover(i int) {
	p := m.state.Scenario.PointAt(i)
	if p == nil {
		return
	}
	m.dispatch(store.SetHoveredDataPoint{Point: p})
	m.popover.Open()
}

func (m Model) startExport() (Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	formats, err := export.ParseFormats(m.cfg.Export.Formats)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.exporting = true
	m.setStatus("Exporting…", false)
	opts := export.Options{
		Dir:       m.cfg.Export.Dir,
		Formats:   formats,
		Scenario:  m.state.Scenario,
		Variables: m.state.Variables,
		Point:     m.state.HoveredDataPoint,
		Now:       time.Now(),
	}
	return m, ExportCmd(m.ctx, opts)
}

func (m *Model) rerun() tea.Cmd {
	if m.scenarioPath == "" {
		m.setStatus("Using the built-in scenario; nothing to rerun", false)
		return nil
	}
	return ReloadScenarioCmd(m.scenarioPath)
}

// Stop tears down the panel timers, the event pump and the watcher. Safe to
// call more than once.
func (m *Model) Stop() {
	m.slideOver.Stop()
	m.popover.Stop()
	m.events.stop()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// State returns the current store snapshot.
func (m Model) State() store.State { return m.state }

// HoverIndex returns the hovered chart point, or -1.
func (m Model) HoverIndex() int { return m.hoverIdx }

// SlideOverState returns the slide-over visibility state.
func (m Model) SlideOverState() panel.State { return m.slideOver.State() }

// PopoverState returns the detail popover visibility state.
func (m Model) PopoverState() panel.State { return m.popover.State() }

// StatusMessage returns the footer status text and whether it is an error.
func (m Model) StatusMessage() (string, bool) { return m.statusMsg, m.statusIsError }

// Layout returns the active slide-over layout.
func (m Model) Layout() config.Layout { return m.layout }

// valueInput is the huh form used to type an exact variable value.
type valueInput struct {
	form *huh.Form
	id   string
	raw  *string
}
