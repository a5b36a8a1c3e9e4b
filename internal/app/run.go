// Package app wires the detection, parsing, ranking and rendering stages
// into the top-cmds pipeline.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chazuruo/topcmds/internal/chart"
	"github.com/chazuruo/topcmds/internal/config"
	tcerrors "github.com/chazuruo/topcmds/internal/errors"
	"github.com/chazuruo/topcmds/internal/export"
	"github.com/chazuruo/topcmds/internal/history"
	"github.com/chazuruo/topcmds/internal/rank"
	"github.com/chazuruo/topcmds/internal/shell"
	"go.uber.org/zap"
)

// Options configures one pipeline run.
type Options struct {
	// Detector finds the running shell. Nil uses the process walk.
	Detector *shell.Detector
	// Store holds the persisted limit. Nil uses config.DefaultLimit.
	Store *config.Store
	// HomeDir is where history files are looked up. Empty uses $HOME.
	HomeDir string
	// HistoryFile overrides the located history file.
	HistoryFile string

	Parse  history.Options
	Filter history.FilterOptions

	// Limit overrides the stored limit when non-nil.
	Limit *int

	Format  export.Format
	NoColor bool
	// Output writes the report to this file instead of Stdout.
	Output string

	Stdout io.Writer
	Logger *zap.Logger
}

// Result is what a run produced.
type Result struct {
	Report *export.Report
	// Warnings holds the recoverable conditions met along the way, in
	// stage order. They have already been logged.
	Warnings []error
}

// Insufficient reports whether the ranking came out empty.
func (r *Result) Insufficient() bool {
	return r.Report == nil || len(r.Report.Commands) == 0
}

// Run executes the pipeline. Recoverable conditions (undetermined shell,
// missing history, malformed config, empty ranking) are logged and
// returned in Result.Warnings; the error is reserved for output failures
// and invalid options.
//
// The reported history length counts every parsed command. Filters only
// narrow what gets ranked.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	format := opts.Format
	if format == "" {
		format = export.FormatChart
	}

	var exporter *export.Exporter
	if format != export.FormatChart {
		var err error
		if exporter, err = export.NewExporter(format); err != nil {
			return nil, err
		}
	}

	res := &Result{}
	warn := func(msg string, err error) {
		fields := []zap.Field{zap.Error(err)}
		if he, ok := tcerrors.AsHistoryError(err); ok && he.Path != "" {
			fields = append(fields, zap.String("path", he.Path))
		}
		logger.Warn(msg, fields...)
		res.Warnings = append(res.Warnings, err)
	}

	detector := opts.Detector
	if detector == nil {
		detector = shell.NewDetector(logger)
	}
	detected, err := detector.Detect(ctx)
	if err != nil {
		warn("could not determine the current shell", err)
	}

	historyFile := opts.HistoryFile
	if historyFile == "" && detected.Shell.IsValid() {
		home := opts.HomeDir
		if home == "" {
			home, err = os.UserHomeDir()
			if err != nil {
				warn("home directory not found", &tcerrors.HistoryError{Err: fmt.Errorf("%w: %w", tcerrors.ErrUnavailable, err)})
			}
		}
		if home != "" {
			historyFile, _ = history.Locate(detected.Shell, home)
		}
	}

	commands, err := history.ParseHistory(historyFile, detected.Shell, opts.Parse)
	switch {
	case err == nil:
	case tcerrors.IsUnknownShell(err) && historyFile != "":
		warn("history file ignored: the shell is unknown, pass --shell to choose its format",
			&tcerrors.HistoryError{Path: historyFile, Err: err})
	case tcerrors.IsUnknownShell(err):
		warn("unknown shell, history not read", err)
	default:
		warn("history file could not be read", err)
	}
	logger.Debug("history parsed",
		zap.String("file", historyFile),
		zap.Int("commands", len(commands)))

	historyLen := len(commands)
	commands = history.Filter(commands, opts.Filter)

	limit, err := readLimit(opts)
	if err != nil {
		warn("invalid config, using default limit", err)
	}

	top, err := rank.Rank(commands, limit)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		warn("nothing to rank", &tcerrors.HistoryError{Path: historyFile, Err: tcerrors.ErrInsufficientData})
	}
	logger.Debug("commands ranked",
		zap.Int("limit", limit),
		zap.Int("distinct", rank.Distinct(commands)),
		zap.Int("ranked", len(top)))

	res.Report = &export.Report{
		Shell:         detected.Shell.String(),
		Method:        detected.Method,
		HistoryFile:   historyFile,
		HistoryLength: historyLen,
		Limit:         limit,
		Commands:      export.Entries(top, historyLen),
	}

	if exporter == nil {
		h := chart.Header{Shell: detected.Shell, HistoryLen: historyLen}
		if err := chart.Render(stdout, h, top, chart.Options{NoColor: opts.NoColor}); err != nil {
			return res, tcerrors.Wrap(err, "rendering chart")
		}
		return res, nil
	}

	if opts.Output != "" {
		if err := exporter.ExportToFile(res.Report, opts.Output); err != nil {
			return res, tcerrors.Wrap(err, "exporting report")
		}
		logger.Debug("report written", zap.String("path", opts.Output))
		return res, nil
	}
	if err := exporter.Export(stdout, res.Report); err != nil {
		return res, tcerrors.Wrap(err, "exporting report")
	}
	return res, nil
}

func readLimit(opts Options) (int, error) {
	if opts.Limit != nil {
		if *opts.Limit < 0 {
			return config.DefaultLimit, fmt.Errorf("%w: limit %d", tcerrors.ErrInvalid, *opts.Limit)
		}
		return *opts.Limit, nil
	}
	if opts.Store == nil {
		return config.DefaultLimit, nil
	}
	return opts.Store.Read()
}
