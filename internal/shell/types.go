// Package shell detects the interactive shell that launched top-cmds.
package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ShellType represents a shell whose history format is known.
type ShellType string

const (
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellFish represents the Fish shell
	ShellFish ShellType = "fish"
	// ShellUnknown represents an unknown or unsupported shell
	ShellUnknown ShellType = "unknown"
)

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the shell type is supported
func (s ShellType) IsValid() bool {
	switch s {
	case ShellBash, ShellZsh, ShellFish:
		return true
	default:
		return false
	}
}

// Canonicalize maps a process name or executable path to a ShellType.
//
// This is the only matching policy in the package: take the base name,
// drop the leading dash of a login shell ("-bash"), then compare exactly.
// "/usr/bin/bash", "/bin/bash", "bash" and "-bash" all yield ShellBash;
// "bashful" or "Bash" yield ShellUnknown.
func Canonicalize(nameOrPath string) ShellType {
	name := strings.TrimSpace(nameOrPath)
	if name == "" {
		return ShellUnknown
	}
	name = strings.TrimPrefix(filepath.Base(name), "-")

	switch ShellType(name) {
	case ShellBash, ShellZsh, ShellFish:
		return ShellType(name)
	default:
		return ShellUnknown
	}
}

// ParseShellType parses a user-supplied shell name (e.g. the --shell flag).
func ParseShellType(s string) (ShellType, error) {
	st := Canonicalize(s)
	if !st.IsValid() {
		return ShellUnknown, &UnsupportedShellError{Shell: s}
	}
	return st, nil
}

// GetSupportedShells returns a list of supported shells
func GetSupportedShells() []ShellType {
	return []ShellType{ShellBash, ShellZsh, ShellFish}
}

// DetectionResult contains the result of shell detection
type DetectionResult struct {
	// Shell is the detected shell type
	Shell ShellType
	// Method describes how the shell was detected
	Method string
	// ShellPath is the process name or binary path that matched
	ShellPath string
	// PID is the matching ancestor, zero when not found by process walk
	PID int32
}

// UnsupportedShellError represents an unsupported shell error
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell: %s (supported: bash, zsh, fish)", e.Shell)
}
