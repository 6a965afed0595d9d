package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Enabled()
	SetOutput(&buf)
	t.Cleanup(func() { SetEnabled(prev) })
	return &buf
}

func TestLog_Disabled(t *testing.T) {
	buf := withBuffer(t)
	SetEnabled(false)

	Log("hidden %d", 1)
	Dump("x", 1)
	LogEnterExit("fn")()
	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}
}

func TestLog_Enabled(t *testing.T) {
	buf := withBuffer(t)
	SetEnabled(true)

	Log("panel %s: %s", "popover", "open")
	LogIf(false, "skipped")
	LogIf(true, "kept")
	LogTiming("render", 3*time.Millisecond)
	Section("load")

	out := buf.String()
	for _, want := range []string{"[FLEETDASH]", "panel popover: open", "kept", "render took 3ms", "=== load ==="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "skipped") {
		t.Error("LogIf(false) should not write")
	}
}

func TestLogEnterExit(t *testing.T) {
	buf := withBuffer(t)
	SetEnabled(true)

	LogEnterExit("export")()
	out := buf.String()
	if !strings.Contains(out, "-> export") || !strings.Contains(out, "<- export") {
		t.Errorf("unexpected enter/exit output: %q", out)
	}
}
