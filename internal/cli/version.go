package cli

import (
	"fmt"
	"runtime"
)

// VersionInfo contains version information for the binary.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// String formats the information for --version.
func (v VersionInfo) String() string {
	version := v.Version
	if version == "" {
		version = "dev"
	}
	s := version
	if v.Commit != "" && v.Commit != "unknown" {
		s += fmt.Sprintf(" (commit: %s, built: %s)", v.Commit, v.Date)
	}
	return s + " " + runtime.Version()
}
