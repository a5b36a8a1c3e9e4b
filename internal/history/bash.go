package history

import (
	"io"
	"regexp"
)

// bashTimestampRegex matches HISTTIMEFORMAT lines: #<unix_timestamp>
var bashTimestampRegex = regexp.MustCompile(`^#\d+$`)

// BashParser implements Parser for bash history files.
//
// Every line is one command. With HISTTIMEFORMAT set, bash writes a
// timestamp comment before each command:
//
//	#1616420000
//	ls -la
//	#1616420100
//	git status
//
// Those lines are dropped when StripMetadata is set.
type BashParser struct {
	StripMetadata bool
}

// NewBashParser creates a BashParser.
func NewBashParser(opts Options) *BashParser {
	return &BashParser{StripMetadata: opts.StripMetadata}
}

// Parse implements Parser.
func (p *BashParser) Parse(r io.Reader) ([]string, error) {
	var commands []string
	err := scanLines(r, func(line string) {
		if p.StripMetadata && bashTimestampRegex.MatchString(line) {
			return
		}
		commands = append(commands, line)
	})
	return commands, err
}
