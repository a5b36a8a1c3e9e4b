package shell

import (
	"context"
	"errors"
	"fmt"
	"os"

	tcerrors "github.com/chazuruo/topcmds/internal/errors"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds the ancestor walk.
const DefaultMaxDepth = 64

// Detection method names reported in DetectionResult.Method.
const (
	MethodProcessWalk = "parent process"
	MethodLoginShell  = "login shell"
	MethodOverride    = "override"
	MethodFailed      = "detection failed"
)

// Strategy is one way of finding the user's shell.
type Strategy interface {
	Name() string
	Detect(ctx context.Context) (*DetectionResult, error)
}

// Detector runs strategies in order and reports the first known shell.
type Detector struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewDetector creates a Detector. With no strategies it walks the real
// process tree.
func NewDetector(logger *zap.Logger, strategies ...Strategy) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(strategies) == 0 {
		strategies = []Strategy{NewProcessWalkStrategy(SystemProcessTable{})}
	}
	return &Detector{strategies: strategies, logger: logger}
}

// Detect returns the detected shell. When every strategy fails the result
// carries ShellUnknown and the error wraps ErrUndetermined; the result is
// never nil so callers can keep going with an unknown shell.
func (d *Detector) Detect(ctx context.Context) (*DetectionResult, error) {
	var errs []error
	for _, s := range d.strategies {
		res, err := s.Detect(ctx)
		if err == nil && res != nil && res.Shell.IsValid() {
			d.logger.Debug("shell detected",
				zap.String("shell", res.Shell.String()),
				zap.String("method", res.Method),
				zap.String("path", res.ShellPath),
				zap.Int32("pid", res.PID))
			return res, nil
		}
		if err == nil {
			err = fmt.Errorf("%s: %w", s.Name(), tcerrors.ErrUndetermined)
		}
		d.logger.Debug("shell detection strategy failed",
			zap.String("strategy", s.Name()), zap.Error(err))
		errs = append(errs, err)
	}

	return &DetectionResult{Shell: ShellUnknown, Method: MethodFailed},
		&tcerrors.DetectionError{Err: fmt.Errorf("%w: %w", tcerrors.ErrUndetermined, errors.Join(errs...))}
}

// ProcessWalkStrategy walks the parent-process chain looking for a shell.
type ProcessWalkStrategy struct {
	// Table resolves pids to process metadata.
	Table ProcessTable
	// StartPID is where the walk begins; zero means the current process.
	StartPID int32
	// MaxDepth caps the number of ancestors visited.
	MaxDepth int
}

// NewProcessWalkStrategy creates a walk over table starting at the current process.
func NewProcessWalkStrategy(table ProcessTable) *ProcessWalkStrategy {
	return &ProcessWalkStrategy{Table: table, MaxDepth: DefaultMaxDepth}
}

// Name implements Strategy.
func (s *ProcessWalkStrategy) Name() string { return MethodProcessWalk }

// Detect implements Strategy. The starting process itself is not matched;
// the walk checks its parent, grandparent and so on until it finds a shell,
// reaches init, loops, or cannot read an ancestor.
func (s *ProcessWalkStrategy) Detect(ctx context.Context) (*DetectionResult, error) {
	pid := s.StartPID
	if pid <= 0 {
		pid = int32(os.Getpid())
	}
	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	info, err := s.Table.Lookup(ctx, pid)
	if err != nil {
		return nil, &tcerrors.DetectionError{PID: pid, Err: fmt.Errorf("%w: %w", tcerrors.ErrUndetermined, err)}
	}

	seen := map[int32]bool{pid: true}
	for depth := 0; depth < maxDepth; depth++ {
		ppid := info.PPID
		if ppid <= 1 {
			return nil, &tcerrors.DetectionError{PID: info.PID, Err: fmt.Errorf("%w: reached init", tcerrors.ErrUndetermined)}
		}
		if seen[ppid] {
			return nil, &tcerrors.DetectionError{PID: ppid, Err: fmt.Errorf("%w: process cycle", tcerrors.ErrUndetermined)}
		}
		seen[ppid] = true

		parent, err := s.Table.Lookup(ctx, ppid)
		if err != nil {
			return nil, &tcerrors.DetectionError{PID: ppid, Err: fmt.Errorf("%w: %w", tcerrors.ErrUndetermined, err)}
		}

		if st, path := matchProcess(parent); st.IsValid() {
			return &DetectionResult{
				Shell:     st,
				Method:    MethodProcessWalk,
				ShellPath: path,
				PID:       parent.PID,
			}, nil
		}
		info = parent
	}

	return nil, &tcerrors.DetectionError{PID: info.PID, Err: fmt.Errorf("%w: walked %d ancestors", tcerrors.ErrUndetermined, maxDepth)}
}

// matchProcess tries the process name first, then the executable path.
func matchProcess(info ProcessInfo) (ShellType, string) {
	if st := Canonicalize(info.Name); st.IsValid() {
		if info.Exe != "" && Canonicalize(info.Exe) == st {
			return st, info.Exe
		}
		return st, info.Name
	}
	if st := Canonicalize(info.Exe); st.IsValid() {
		return st, info.Exe
	}
	return ShellUnknown, ""
}

// StaticStrategy always reports the same shell; used for --shell.
type StaticStrategy struct {
	Shell ShellType
}

// Name implements Strategy.
func (s StaticStrategy) Name() string { return MethodOverride }

// Detect implements Strategy.
func (s StaticStrategy) Detect(context.Context) (*DetectionResult, error) {
	if !s.Shell.IsValid() {
		return nil, &UnsupportedShellError{Shell: s.Shell.String()}
	}
	return &DetectionResult{Shell: s.Shell, Method: MethodOverride, ShellPath: s.Shell.String()}, nil
}
