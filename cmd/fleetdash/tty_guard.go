package main

import (
	"os"
	"strings"
)

// init runs before Bubble Tea or Lipgloss touch the terminal. Lipgloss
// background detection can write OSC/DSR queries to stdout, which corrupts
// the output of headless runs such as --export. Termenv skips those queries
// when CI is set.
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv("FLEETDASH_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	for _, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if arg == name {
			continue // positional value, not a flag
		}
		switch name {
		case "export", "version", "help":
			return true
		}
	}
	return false
}
