// Package buildinfo carries version stamps injected with -ldflags.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, falling back to the commit.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String returns the full build line printed by the CLI and the boot banner.
func String() string {
	return fmt.Sprintf("flashhal %s (commit %s, built %s)", Short(), Commit, Date)
}
