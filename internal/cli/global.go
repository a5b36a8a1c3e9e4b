package cli

import (
	"os"
	"sync"

	"github.com/spf13/cobra"
)

var (
	// NoColor disables ANSI colors in the chart. It is set by --no-color
	// or a non-empty NO_COLOR environment variable.
	NoColor bool

	// Verbose enables debug logging. It is set by -v/--verbose.
	Verbose bool

	// globalMutex protects the global flags for concurrent access.
	globalMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoColor, "no-color", false,
		"disable colors (also set by the NO_COLOR environment variable)")
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false,
		"log detection and parsing details to stderr")
}

// IsNoColor returns true if colors are disabled.
func IsNoColor() bool {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return NoColor || os.Getenv("NO_COLOR") != ""
}

// IsVerbose returns true if debug logging is enabled.
func IsVerbose() bool {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return Verbose
}
