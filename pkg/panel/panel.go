// Package panel drives the enter/exit lifecycle of overlay panels (the
// variables slide-over and the data point popover).
//
// A panel moves through four states:
//
//	Closed --Open--> Opening --(OpenDelay)--> Open
//	Open/Opening --Close--> Closing --(CloseDelay)--> Closed + OnClosed()
//
// Opening exists so the first frame can be drawn in the initial (faded)
// style before the panel is shown at full strength. Closing hides the panel
// at once but keeps its content for CloseDelay, after which the owner is told
// to release it. Every pending transition is a cancellable timer; Stop
// cancels it when the owning view is torn down.
package panel

import (
	"sync"
	"time"

	"github.com/vanderheijden86/fleetdash/pkg/clock"
	"github.com/vanderheijden86/fleetdash/pkg/debug"
)

// State is the visibility state of a panel.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// Visible reports whether the panel content should be drawn at all.
func (s State) Visible() bool {
	return s == Opening || s == Open
}

// Default transition delays.
const (
	DefaultOpenDelay  = 10 * time.Millisecond
	DefaultCloseDelay = 200 * time.Millisecond
)

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used to schedule transitions.
func WithClock(c clock.Clock) Option {
	return func(p *Controller) { p.clock = c }
}

// WithDelays overrides the open and close delays.
func WithDelays(open, close time.Duration) Option {
	return func(p *Controller) {
		p.openDelay = open
		p.closeDelay = close
	}
}

// WithOnChange registers a callback invoked after every state change.
func WithOnChange(fn func(State)) Option {
	return func(p *Controller) { p.onChange = fn }
}

// WithOnClosed registers the callback invoked when a close completes. This
// is where the owner releases the panel's data.
func WithOnClosed(fn func()) Option {
	return func(p *Controller) { p.onClosed = fn }
}

// Controller is the visibility state machine of one panel. It is safe for
// concurrent use; callbacks are invoked without the lock held.
type Controller struct {
	name       string
	clock      clock.Clock
	openDelay  time.Duration
	closeDelay time.Duration
	onChange   func(State)
	onClosed   func()

	mu      sync.Mutex
	state   State
	timer   clock.Timer
	gen     uint64
	stopped bool
}

// New creates a closed controller.
func New(name string, opts ...Option) *Controller {
	c := &Controller{
		name:       name,
		clock:      clock.Real(),
		openDelay:  DefaultOpenDelay,
		closeDelay: DefaultCloseDelay,
		onChange:   func(State) {},
		onClosed:   func() {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the panel name used in logs.
func (c *Controller) Name() string { return c.name }

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether a transition timer is armed.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Open requests the panel to open. A pending close is cancelled.
func (c *Controller) Open() {
	c.mu.Lock()
	if c.stopped || c.state == Opening || c.state == Open {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.state = Opening
	c.scheduleLocked(c.openDelay, Opening, Open)
	c.mu.Unlock()

	debug.Log("panel %s: opening", c.name)
	c.onChange(Opening)
}

// Close requests the panel to close. Closing an opening panel cancels the
// open immediately. Closing a closed or closing panel is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.stopped || c.state == Closed || c.state == Closing {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.state = Closing
	c.scheduleLocked(c.closeDelay, Closing, Closed)
	c.mu.Unlock()

	debug.Log("panel %s: closing", c.name)
	c.onChange(Closing)
}

// Toggle opens a closed/closing panel and closes an open/opening one.
func (c *Controller) Toggle() {
	if c.State().Visible() {
		c.Close()
		return
	}
	c.Open()
}

// Stop cancels any pending transition and detaches the controller. Timers
// that fire after Stop are dropped without touching state.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.stopped = true
	c.state = Closed
}

func (c *Controller) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// scheduleLocked arms a transition from -> to after d. The transition is
// dropped if another transition happened in between.
func (c *Controller) scheduleLocked(d time.Duration, from, to State) {
	gen := c.gen
	c.timer = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		if c.stopped || c.gen != gen || c.state != from {
			c.mu.Unlock()
			return
		}
		c.timer = nil
		c.gen++
		c.state = to
		c.mu.Unlock()

		debug.Log("panel %s: %s", c.name, to)
		c.onChange(to)
		if to == Closed {
			c.onClosed()
		}
	})
}
