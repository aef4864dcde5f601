// Package version exposes build-time version information for Guard-X.
package version

import "fmt"

// Set via -ldflags at build time:
//
//	go build -ldflags "-X .../internal/version.Version=2.1.0 -X .../internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version = "2.1.0-dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns a human-readable version line.
func Info() string {
	return fmt.Sprintf("Guard-X %s (commit %s, built %s)", Version, Commit, Date)
}

// Map returns version fields for JSON responses.
func Map() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	}
}
