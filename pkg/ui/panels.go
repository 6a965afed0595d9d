package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/fleetdash/pkg/panel"
)

// Panel names used in PanelStateMsg and logs.
const (
	PanelSlideOver = "slide-over"
	PanelPopover   = "popover"
)

// PanelStateMsg reports a panel transition. Timer-driven transitions happen
// on the clock goroutine and reach Update through this message.
type PanelStateMsg struct {
	Panel string
	State panel.State
}

// panelEvents carries controller transitions into the Bubble Tea loop.
type panelEvents struct {
	ch   chan PanelStateMsg
	done chan struct{}
	once sync.Once
}

func newPanelEvents() *panelEvents {
	return &panelEvents{
		// Transitions triggered from Update are sent synchronously, so the
		// buffer must absorb them while no wait command is running.
		ch:   make(chan PanelStateMsg, 32),
		done: make(chan struct{}),
	}
}

func (e *panelEvents) send(msg PanelStateMsg) {
	select {
	case e.ch <- msg:
	case <-e.done:
	}
}

func (e *panelEvents) stop() {
	e.once.Do(func() { close(e.done) })
}

// waitPanelEventCmd blocks until the next panel transition.
func waitPanelEventCmd(e *panelEvents) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-e.ch:
			return msg
		case <-e.done:
			return nil
		}
	}
}

func (e *panelEvents) controller(name string, opts ...panel.Option) *panel.Controller {
	opts = append(opts, panel.WithOnChange(func(s panel.State) {
		e.send(PanelStateMsg{Panel: name, State: s})
	}))
	return panel.New(name, opts...)
}
