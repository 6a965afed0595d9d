// Package version reports the fleetdash build version.
package version

import "runtime/debug"

// Version is the release version. Override at build time with:
//
//	go build -ldflags "-X github.com/vanderheijden86/fleetdash/pkg/version.Version=v1.2.3"
var Version = "v0.3.0"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Full returns Version with the short VCS revision when the binary was built
// from a checkout, e.g. "v0.3.0 (1a2b3c4)" or "v0.3.0 (1a2b3c4-dirty)".
func Full() string {
	info, ok := readBuildInfo()
	if !ok {
		return Version
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return Version
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if dirty {
		rev += "-dirty"
	}
	return Version + " (" + rev + ")"
}
