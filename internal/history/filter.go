package history

import (
	"slices"
	"strings"
)

// FilterOptions contains options for filtering parsed commands before
// ranking. The zero value keeps everything.
type FilterOptions struct {
	// RemoveEmpty removes blank commands.
	RemoveEmpty bool

	// SkipCommands drops commands whose first word is in the list.
	SkipCommands []string

	// SkipBuiltins drops navigation and session builtins (cd, ls, exit...).
	SkipBuiltins bool
}

// IsZero reports whether the options filter nothing.
func (o FilterOptions) IsZero() bool {
	return !o.RemoveEmpty && len(o.SkipCommands) == 0 && !o.SkipBuiltins
}

// builtins are the shell builtins and navigation commands SkipBuiltins drops.
var builtins = []string{
	"cd", "pushd", "popd", "dirs", "pwd",
	"ls", "la", "ll", "clear",
	"history", "exit", "logout",
	"jobs", "fg", "bg",
}

// Filter returns the commands that pass opts, preserving order.
func Filter(commands []string, opts FilterOptions) []string {
	if opts.IsZero() {
		return commands
	}

	result := make([]string, 0, len(commands))
	for _, cmd := range commands {
		fields := strings.Fields(cmd)
		if len(fields) == 0 {
			if opts.RemoveEmpty {
				continue
			}
			result = append(result, cmd)
			continue
		}

		if slices.Contains(opts.SkipCommands, fields[0]) {
			continue
		}
		if opts.SkipBuiltins && slices.Contains(builtins, fields[0]) {
			continue
		}

		result = append(result, cmd)
	}

	return result
}
