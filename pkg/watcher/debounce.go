package watcher

import (
	"sync"
	"time"

	"github.com/vanderheijden86/fleetdash/pkg/clock"
)

// DefaultDebounceDuration coalesces the burst of events an editor produces
// when saving a file.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer runs the last triggered callback once no new trigger has arrived
// for its duration.
type Debouncer struct {
	mu       sync.Mutex
	clock    clock.Clock
	duration time.Duration
	timer    clock.Timer
	gen      uint64
}

// NewDebouncer returns a debouncer on the real clock. A non-positive duration
// selects DefaultDebounceDuration.
func NewDebouncer(d time.Duration) *Debouncer {
	return NewDebouncerWithClock(d, clock.Real())
}

// NewDebouncerWithClock is NewDebouncer with an explicit clock.
func NewDebouncerWithClock(d time.Duration, c clock.Clock) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{clock: c, duration: d}
}

// Duration returns the quiet period.
func (d *Debouncer) Duration() time.Duration { return d.duration }

// Trigger (re)starts the quiet period; fn runs when it elapses.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.duration, func() {
		d.mu.Lock()
		if d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
