package history

import (
	"path/filepath"

	"github.com/chazuruo/topcmds/internal/shell"
)

// History file locations relative to the home directory.
const (
	BashHistoryFile = ".bash_history"
	ZshHistoryFile  = ".zsh_history"
	FishHistoryFile = ".local/share/fish/fish_history"
)

// Locate maps a shell to its history file under homeDir. It performs no
// I/O and does not check that the file exists. The unknown shell has no
// history file and reports false.
func Locate(st shell.ShellType, homeDir string) (string, bool) {
	var rel string
	switch st {
	case shell.ShellBash:
		rel = BashHistoryFile
	case shell.ShellZsh:
		rel = ZshHistoryFile
	case shell.ShellFish:
		rel = FishHistoryFile
	default:
		return "", false
	}
	return filepath.Join(homeDir, filepath.FromSlash(rel)), true
}
