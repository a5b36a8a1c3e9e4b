package errors_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	tcerrors "github.com/chazuruo/topcmds/internal/errors"
)

// TestBaseErrors verifies that all base error types have correct messages.
func TestBaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrUndetermined", tcerrors.ErrUndetermined, "shell undetermined"},
		{"ErrUnknownShell", tcerrors.ErrUnknownShell, "unknown shell"},
		{"ErrUnavailable", tcerrors.ErrUnavailable, "history unavailable"},
		{"ErrInvalid", tcerrors.ErrInvalid, "invalid"},
		{"ErrInsufficientData", tcerrors.ErrInsufficientData, "insufficient data"},
		{"ErrIO", tcerrors.ErrIO, "I/O error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectionError(t *testing.T) {
	tests := []struct {
		name string
		err  *tcerrors.DetectionError
		want string
	}{
		{
			name: "with pid",
			err:  &tcerrors.DetectionError{PID: 42, Err: os.ErrPermission},
			want: "detect shell at pid 42: permission denied",
		},
		{
			name: "without pid",
			err:  &tcerrors.DetectionError{Err: tcerrors.ErrUndetermined},
			want: "detect shell: shell undetermined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	wrapped := &tcerrors.DetectionError{PID: 7, Err: tcerrors.ErrUndetermined}
	if !tcerrors.IsUndetermined(wrapped) {
		t.Error("IsUndetermined() = false for wrapped DetectionError")
	}
}

func TestHistoryError(t *testing.T) {
	err := &tcerrors.HistoryError{Path: "/home/u/.bash_history", Err: tcerrors.ErrUnavailable}
	if got, want := err.Error(), "history /home/u/.bash_history: history unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	noPath := &tcerrors.HistoryError{Err: tcerrors.ErrUnknownShell}
	if got, want := noPath.Error(), "history: unknown shell"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	he, ok := tcerrors.AsHistoryError(fmt.Errorf("outer: %w", err))
	if !ok || he.Path != "/home/u/.bash_history" {
		t.Errorf("AsHistoryError() = %v, %v", he, ok)
	}
}

// TestConfigError verifies ConfigError formatting and unwrapping.
func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *tcerrors.ConfigError
		want string
	}{
		{
			name: "with path",
			err:  &tcerrors.ConfigError{Path: "/etc/top-cmds.conf", Err: tcerrors.ErrInvalid},
			want: "config /etc/top-cmds.conf: invalid",
		},
		{
			name: "without path",
			err:  &tcerrors.ConfigError{Err: tcerrors.ErrIO},
			want: "config: I/O error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	ce, ok := tcerrors.AsConfigError(fmt.Errorf("read: %w", &tcerrors.ConfigError{Path: "x", Err: tcerrors.ErrInvalid}))
	if !ok || ce.Path != "x" {
		t.Errorf("AsConfigError() = %v, %v", ce, ok)
	}
}

func TestUsageError(t *testing.T) {
	err := tcerrors.Usage("invalid argument %q", "abc")
	if got, want := err.Error(), `invalid argument "abc"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !tcerrors.IsUsage(err) {
		t.Error("IsUsage() = false, want true")
	}
	if !tcerrors.IsUsage(fmt.Errorf("run: %w", err)) {
		t.Error("IsUsage() = false for wrapped usage error")
	}
	if tcerrors.IsUsage(tcerrors.ErrInvalid) {
		t.Error("IsUsage() = true for a non-usage error")
	}

	withCause := &tcerrors.UsageError{Msg: "bad -s value", Err: tcerrors.ErrInvalid}
	if got, want := withCause.Error(), "bad -s value: invalid"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(withCause, tcerrors.ErrInvalid) {
		t.Error("UsageError does not unwrap to its cause")
	}
}

// TestWrap verifies that Wrap adds operation context.
func TestWrap(t *testing.T) {
	wrapped := tcerrors.Wrap(tcerrors.ErrUnavailable, "parseHistory")
	if got, want := wrapped.Error(), "parseHistory: history unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, tcerrors.ErrUnavailable) {
		t.Error("Wrap() result does not match the original error")
	}
	if tcerrors.Wrap(nil, "noop") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestIsHelpers verifies the IsX helpers through several layers of wrapping.
func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"IsUndetermined", tcerrors.ErrUndetermined, tcerrors.IsUndetermined},
		{"IsUnknownShell", tcerrors.ErrUnknownShell, tcerrors.IsUnknownShell},
		{"IsUnavailable", tcerrors.ErrUnavailable, tcerrors.IsUnavailable},
		{"IsInvalid", tcerrors.ErrInvalid, tcerrors.IsInvalid},
		{"IsInsufficientData", tcerrors.ErrInsufficientData, tcerrors.IsInsufficientData},
		{"IsIO", tcerrors.ErrIO, tcerrors.IsIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chained := tcerrors.Wrap(fmt.Errorf("inner: %w", tt.err), "outer")
			if !tt.check(chained) {
				t.Errorf("%s() = false for chained error", tt.name)
			}
			if tt.check(errors.New("unrelated")) {
				t.Errorf("%s() = true for unrelated error", tt.name)
			}
		})
	}
}
