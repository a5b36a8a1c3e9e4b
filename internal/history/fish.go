package history

import (
	"io"
	"strings"
)

const (
	fishCmdMarker   = "- cmd: "
	fishPathsMarker = "  paths:"
)

// FishParser implements Parser for fish history files.
//
// fish stores a YAML-like record per command:
//
//	- cmd: ls -la
//	  when: 1616420000
//	  paths:
//	    - ls
//
// Only "- cmd: " lines carry commands. A "  paths:" line makes the next line
// a path entry, which is skipped.
type FishParser struct{}

// NewFishParser creates a FishParser.
func NewFishParser() *FishParser {
	return &FishParser{}
}

// Parse implements Parser.
func (p *FishParser) Parse(r io.Reader) ([]string, error) {
	var commands []string
	skipNext := false
	err := scanLines(r, func(line string) {
		if skipNext {
			skipNext = false
			return
		}
		switch {
		case strings.HasPrefix(line, fishCmdMarker):
			commands = append(commands, line[len(fishCmdMarker):])
		case strings.HasPrefix(line, fishPathsMarker):
			skipNext = true
		}
	})
	return commands, err
}
