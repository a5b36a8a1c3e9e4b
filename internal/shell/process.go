package shell

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo is the subset of process metadata the ancestor walk reads.
type ProcessInfo struct {
	PID  int32
	PPID int32
	Name string
	Exe  string
}

// ProcessTable looks up processes by pid.
type ProcessTable interface {
	Lookup(ctx context.Context, pid int32) (ProcessInfo, error)
}

// SystemProcessTable reads process metadata from the operating system.
type SystemProcessTable struct{}

// Lookup returns name, executable and parent pid for pid.
// A missing executable path is not an error; some kernels hide it for
// processes owned by other users.
func (SystemProcessTable) Lookup(ctx context.Context, pid int32) (ProcessInfo, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return ProcessInfo{}, fmt.Errorf("open process: %w", err)
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ProcessInfo{}, fmt.Errorf("read process name: %w", err)
	}

	ppid, err := p.PpidWithContext(ctx)
	if err != nil {
		return ProcessInfo{}, fmt.Errorf("read parent pid: %w", err)
	}

	exe, _ := p.ExeWithContext(ctx)

	return ProcessInfo{PID: pid, PPID: ppid, Name: name, Exe: exe}, nil
}
