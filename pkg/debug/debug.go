// Package debug provides conditional debug logging for fleetdash.
//
// Debug logging is enabled by setting the FLEETDASH_DEBUG environment
// variable:
//
//	FLEETDASH_DEBUG=1 fleetdash --scenario fleet.yaml 2>debug.log
//
// When disabled (default), all debug functions return immediately. The
// dashboard owns the terminal while running, so redirect stderr or call
// SetOutput to keep log lines out of the rendered frame.
package debug

import (
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const envVar = "FLEETDASH_DEBUG"

var (
	mu      sync.RWMutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv(envVar) != "" {
		enabled = true
		logger = newLogger(os.Stderr)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[FLEETDASH] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled turns debug logging on or off at runtime.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = newLogger(os.Stderr)
	}
}

// SetOutput redirects debug output, e.g. to a log file opened by the CLI.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

func get() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a printf-style debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if l := get(); l != nil {
		l.Printf(format, args...)
	}
}

// LogIf writes a debug message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogTiming writes a timing message.
func LogTiming(name string, d time.Duration) {
	if l := get(); l != nil {
		l.Printf("%s took %v", name, d)
	}
}

// LogEnterExit logs entry and returns a func that logs exit with timing:
//
//	defer debug.LogEnterExit("export")()
func LogEnterExit(name string) func() {
	l := get()
	if l == nil {
		return func() {}
	}
	l.Printf("-> %s", name)
	start := time.Now()
	return func() {
		l.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if l := get(); l != nil {
		l.Printf("%s: %T = %+v", name, v, v)
	}
}

// Section logs a section header.
func Section(name string) {
	if l := get(); l != nil {
		l.Printf("=== %s ===", name)
	}
}
