// Package history locates and parses shell history files.
package history

import "io"

// Parser extracts command strings from a shell history stream.
// The result keeps file order and duplicates.
type Parser interface {
	Parse(r io.Reader) ([]string, error)
}

// Options controls shell-specific extraction.
type Options struct {
	// StripMetadata removes timestamp metadata that is not part of the
	// command text: zsh extended-history prefixes (": 1700000000:0;") and
	// bash HISTTIMEFORMAT lines ("#1700000000").
	StripMetadata bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{StripMetadata: true}
}

// RawOptions reads every line verbatim.
func RawOptions() Options {
	return Options{StripMetadata: false}
}
