package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DetectConfigPath returns the config file location:
//
//  1. $TOPCMDS_CONFIG_DIR/top-cmds/top-cmds.conf when the variable is set
//  2. <user config dir>/top-cmds/top-cmds.conf (e.g. ~/.config on Linux)
//
// The file is not required to exist.
func DetectConfigPath() (string, error) {
	base, ok := os.LookupEnv(EnvConfigDir)
	if !ok || base == "" {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("config directory not found: %w", err)
		}
	}

	return filepath.Join(expandHome(base), DirName, FileName), nil
}

// DefaultStore returns a Store at DetectConfigPath.
func DefaultStore() (*Store, error) {
	path, err := DetectConfigPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
