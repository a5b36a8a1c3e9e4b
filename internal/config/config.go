// Package config persists the number of commands top-cmds displays.
//
// The setting lives in a small line-oriented file:
//
//	nb_cmds 5
//
// Other lines are left untouched when the setting is rewritten.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tcerrors "github.com/chazuruo/topcmds/internal/errors"
	"github.com/chazuruo/topcmds/internal/rank"
)

const (
	// Key is the config key holding the display limit.
	Key = "nb_cmds"

	// DirName is the directory under the user config dir.
	DirName = "top-cmds"

	// FileName is the config file name.
	FileName = "top-cmds.conf"

	// DefaultLimit is used when the key is absent or malformed.
	DefaultLimit = rank.DefaultLimit
)

// Environment variable overrides.
const (
	// EnvConfigDir replaces the user config directory.
	EnvConfigDir = "TOPCMDS_CONFIG_DIR"

	// EnvLimit overrides the stored limit for one run.
	EnvLimit = "TOPCMDS_NB_CMDS"
)

// Store reads and writes the display limit.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Read returns the stored limit.
//
// A missing file or key yields DefaultLimit with no error. A key whose
// value is not a non-negative integer yields DefaultLimit and an error
// wrapping ErrInvalid so the caller can warn. EnvLimit, when set to a valid
// value, takes precedence over the file; an invalid EnvLimit is reported
// the same way and the file value is used.
func (s *Store) Read() (int, error) {
	val, ok := os.LookupEnv(EnvLimit)
	if !ok || val == "" {
		return s.readFile()
	}
	n, err := parseLimit(val)
	if err == nil {
		return n, nil
	}

	envErr := &tcerrors.ConfigError{Path: "$" + EnvLimit, Err: err}
	n, fileErr := s.readFile()
	if fileErr != nil {
		return n, errors.Join(envErr, fileErr)
	}
	return n, envErr
}

func (s *Store) readFile() (int, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return DefaultLimit, nil
	}
	if err != nil {
		return DefaultLimit, &tcerrors.ConfigError{Path: s.path, Err: fmt.Errorf("%w: %w", tcerrors.ErrIO, err)}
	}

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != Key {
			continue
		}
		if len(fields) < 2 {
			return DefaultLimit, &tcerrors.ConfigError{Path: s.path, Err: fmt.Errorf("%w: %s has no value", tcerrors.ErrInvalid, Key)}
		}
		n, err := parseLimit(fields[1])
		if err != nil {
			return DefaultLimit, &tcerrors.ConfigError{Path: s.path, Err: err}
		}
		return n, nil
	}

	return DefaultLimit, nil
}

// Write stores n, replacing the existing key line in place or appending
// one. All other lines are preserved verbatim. The config directory and
// file are created when missing.
func (s *Store) Write(n int) error {
	if n < 0 {
		return &tcerrors.ConfigError{Path: s.path, Err: fmt.Errorf("%w: %s must be >= 0; got %d", tcerrors.ErrInvalid, Key, n)}
	}

	if err := s.Ensure(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return &tcerrors.ConfigError{Path: s.path, Err: fmt.Errorf("%w: %w", tcerrors.ErrIO, err)}
	}

	setting := fmt.Sprintf("%s %d", Key, n)
	content := string(data)
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if content == "" {
		lines = nil
	}

	var b strings.Builder
	found := false
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 && fields[0] == Key {
			found = true
			line = setting
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if !found {
		b.WriteString(setting)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return &tcerrors.ConfigError{Path: s.path, Err: fmt.Errorf("%w: %w", tcerrors.ErrIO, err)}
	}
	return nil
}

// Ensure creates the config directory and an empty config file if they do
// not exist yet.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &tcerrors.ConfigError{Path: s.path, Err: fmt.Errorf("%w: create config directory: %w", tcerrors.ErrIO, err)}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return &tcerrors.ConfigError{Path: s.path, Err: fmt.Errorf("%w: create config file: %w", tcerrors.ErrIO, err)}
	}
	return f.Close()
}

// ParseLimit validates a user-supplied limit such as the -s argument.
func ParseLimit(s string) (int, error) {
	return parseLimit(s)
}

func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", tcerrors.ErrInvalid, Key, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must be >= 0; got %d", tcerrors.ErrInvalid, Key, n)
	}
	return n, nil
}
