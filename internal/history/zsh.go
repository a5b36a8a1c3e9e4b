package history

import (
	"io"
	"regexp"
)

// zshExtendedRegex matches the EXTENDED_HISTORY prefix: ": <epoch>:<elapsed>;"
var zshExtendedRegex = regexp.MustCompile(`^: *\d+:\d+;`)

// ZshParser implements Parser for zsh history files.
//
// Every line is one command. With EXTENDED_HISTORY zsh prefixes each entry
// with its start time and duration:
//
//	: 1616420000:0;ls -la
//	: 1616420100:3;git status
//
// With StripMetadata the prefix is removed so "ls -la" is counted as such;
// otherwise the raw line is the command and entries almost never repeat.
type ZshParser struct {
	StripMetadata bool
}

// NewZshParser creates a ZshParser.
func NewZshParser(opts Options) *ZshParser {
	return &ZshParser{StripMetadata: opts.StripMetadata}
}

// Parse implements Parser.
func (p *ZshParser) Parse(r io.Reader) ([]string, error) {
	var commands []string
	err := scanLines(r, func(line string) {
		if p.StripMetadata {
			if loc := zshExtendedRegex.FindStringIndex(line); loc != nil {
				line = line[loc[1]:]
			}
		}
		commands = append(commands, line)
	})
	return commands, err
}
