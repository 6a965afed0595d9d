package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the dashboard reacts to. It implements
// help.KeyMap for the footer.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Toggle    key.Binding
	Close     key.Binding
	Edit      key.Binding
	Results   key.Binding
	Variables key.Binding
	Copy      key.Binding
	Export    key.Binding
	Search    key.Binding
	Autofill  key.Binding
	Rerun     key.Binding
	Exact     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit variables"),
		),
		Results: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "results"),
		),
		Variables: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "variables panel"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy point"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export data"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Autofill: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "autofill"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "rerun"),
		),
		Exact: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "exact value"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Edit, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Select, k.Toggle, k.Close},
		{k.NextTab, k.PrevTab, k.Edit, k.Results, k.Variables},
		{k.Search, k.Autofill, k.Exact, k.Rerun},
		{k.Copy, k.Export, k.Help, k.Quit},
	}
}

// slideOverHelp is the short help shown while the slide-over has focus.
type slideOverHelp struct {
	keys    KeyMap
	sliders bool
}

func (h slideOverHelp) ShortHelp() []key.Binding {
	if h.sliders {
		return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Left, h.keys.Right, h.keys.Exact, h.keys.Toggle, h.keys.Close}
	}
	return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Left, h.keys.Right, h.keys.Toggle, h.keys.Search, h.keys.Autofill, h.keys.Close}
}

func (h slideOverHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// popoverHelp is the short help shown while the detail popover is up.
type popoverHelp struct{ keys KeyMap }

func (h popoverHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Close, h.keys.Copy, h.keys.Export, h.keys.Quit}
}

func (h popoverHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
