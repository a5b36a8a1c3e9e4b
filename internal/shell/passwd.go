package shell

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/user"
	"strings"

	tcerrors "github.com/chazuruo/topcmds/internal/errors"
)

// DefaultPasswdPath is the system user database.
const DefaultPasswdPath = "/etc/passwd"

// LoginShellStrategy reads the user's registered login shell from the
// password database instead of walking the process tree.
type LoginShellStrategy struct {
	// PasswdPath is the passwd(5) file to read (default /etc/passwd).
	PasswdPath string
	// Username selects the entry; empty means the current user.
	Username string
}

// Name implements Strategy.
func (s *LoginShellStrategy) Name() string { return MethodLoginShell }

// Detect implements Strategy.
func (s *LoginShellStrategy) Detect(ctx context.Context) (*DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	username := s.Username
	if username == "" {
		u, err := user.Current()
		if err != nil {
			return nil, &tcerrors.DetectionError{Err: fmt.Errorf("%w: current user: %w", tcerrors.ErrUndetermined, err)}
		}
		username = u.Username
	}

	path := s.PasswdPath
	if path == "" {
		path = DefaultPasswdPath
	}

	loginShell, err := lookupLoginShell(path, username)
	if err != nil {
		return nil, &tcerrors.DetectionError{Err: fmt.Errorf("%w: %w", tcerrors.ErrUndetermined, err)}
	}

	st := Canonicalize(loginShell)
	if !st.IsValid() {
		return nil, &tcerrors.DetectionError{Err: fmt.Errorf("%w: login shell %q", tcerrors.ErrUnknownShell, loginShell)}
	}

	return &DetectionResult{Shell: st, Method: MethodLoginShell, ShellPath: loginShell}, nil
}

// lookupLoginShell returns field 7 of the passwd entry for username.
func lookupLoginShell(path, username string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 7 || fields[0] != username {
			continue
		}
		return fields[6], nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return "", fmt.Errorf("no passwd entry for %q", username)
}
