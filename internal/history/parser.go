package history

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	tcerrors "github.com/chazuruo/topcmds/internal/errors"
	"github.com/chazuruo/topcmds/internal/shell"
)

// maxLineSize bounds a single history line; longer lines end the scan.
const maxLineSize = 1 << 20

// NewParser returns the Parser for a shell, or an error wrapping
// ErrUnknownShell when the shell has no known format.
func NewParser(st shell.ShellType, opts Options) (Parser, error) {
	switch st {
	case shell.ShellBash:
		return NewBashParser(opts), nil
	case shell.ShellZsh:
		return NewZshParser(opts), nil
	case shell.ShellFish:
		return NewFishParser(), nil
	default:
		return nil, &tcerrors.HistoryError{Err: fmt.Errorf("%w: %s", tcerrors.ErrUnknownShell, st)}
	}
}

// ParseHistory reads the history file at path using the format of st.
//
// It never fails hard. The returned slice is always usable (possibly empty)
// and the error, if any, describes a recoverable condition:
//   - unknown shell: ErrUnknownShell, nothing is read
//   - empty path or unopenable file: ErrUnavailable
//   - a read error mid-file: ErrIO, with the commands read so far
func ParseHistory(path string, st shell.ShellType, opts Options) ([]string, error) {
	parser, err := NewParser(st, opts)
	if err != nil {
		return []string{}, err
	}
	if path == "" {
		return []string{}, &tcerrors.HistoryError{Err: fmt.Errorf("%w: no history file for %s", tcerrors.ErrUnavailable, st)}
	}
	return ParseFile(path, parser)
}

// ParseFile opens path and runs parser over it.
func ParseFile(path string, parser Parser) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return []string{}, &tcerrors.HistoryError{Path: path, Err: fmt.Errorf("%w: %w", tcerrors.ErrUnavailable, err)}
	}
	defer func() { _ = file.Close() }()

	commands, err := parser.Parse(file)
	if commands == nil {
		commands = []string{}
	}
	if err != nil {
		return commands, &tcerrors.HistoryError{Path: path, Err: fmt.Errorf("%w: %w", tcerrors.ErrIO, err)}
	}
	return commands, nil
}

// scanLines calls fn for each line of r. Lines that are not valid UTF-8
// are skipped.
func scanLines(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			continue
		}
		fn(line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading history: %w", err)
	}
	return nil
}
