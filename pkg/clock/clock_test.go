package clock

import (
	"testing"
	"time"
)

func TestFake_FiresInDeadlineOrder(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	var order []string
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(15 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("after 15ms expected [a], got %v", order)
	}
	c.Advance(time.Second)
	if got := len(order); got != 3 || order[1] != "b" || order[2] != "c" {
		t.Fatalf("expected [a b c], got %v", order)
	}
	if c.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", c.Pending())
	}
}

func TestFake_Stop(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })

	if !tm.Stop() {
		t.Error("first Stop should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	c.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestFake_StopAfterFire(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	tm := c.AfterFunc(time.Millisecond, func() {})
	c.Advance(time.Millisecond)
	if tm.Stop() {
		t.Error("Stop after firing should report false")
	}
}

func TestFake_ChainedTimersWithinWindow(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	var at []time.Duration
	start := c.Now()
	c.AfterFunc(10*time.Millisecond, func() {
		at = append(at, c.Now().Sub(start))
		c.AfterFunc(200*time.Millisecond, func() {
			at = append(at, c.Now().Sub(start))
		})
	})

	c.Advance(100 * time.Millisecond)
	if len(at) != 1 {
		t.Fatalf("expected only the first timer, got %v", at)
	}
	c.Advance(110 * time.Millisecond)
	if len(at) != 2 || at[1] != 210*time.Millisecond {
		t.Fatalf("expected chained timer at 210ms, got %v", at)
	}
}

func TestReal_AfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("real timer never fired")
	}
}
