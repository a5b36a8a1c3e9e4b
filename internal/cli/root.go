// Package cli provides the Cobra command definition for top-cmds.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazuruo/topcmds/internal/app"
	"github.com/chazuruo/topcmds/internal/config"
	tcerrors "github.com/chazuruo/topcmds/internal/errors"
	"github.com/chazuruo/topcmds/internal/export"
	"github.com/chazuruo/topcmds/internal/history"
	"github.com/chazuruo/topcmds/internal/logging"
	"github.com/chazuruo/topcmds/internal/shell"
)

// Exit codes returned by Execute.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Detection modes accepted by --detect.
const (
	DetectProcess = "process"
	DetectLogin   = "login"
	DetectAuto    = "auto"
)

// RootOptions contains the options for the root command.
type RootOptions struct {
	Set          string
	Number       int
	Format       string
	Output       string
	Shell        string
	Detect       string
	HistoryFile  string
	Raw          bool
	Exclude      []string
	SkipBuiltins bool

	// Store and Logger are injected by tests; nil means the defaults.
	Store  *config.Store
	Logger *zap.Logger
	// Strategies replaces the detection strategies when non-empty.
	Strategies []shell.Strategy
	// HomeDir replaces $HOME for history lookup.
	HomeDir string
}

// NewRootCommand creates the top-cmds command.
func NewRootCommand(info VersionInfo, opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}

	cmd := &cobra.Command{
		Use:   "top-cmds",
		Short: "Show your most used shell commands",
		Long: `top-cmds finds the shell you are running, reads its history file and
draws a bar chart of the commands you run most often.

Supported shells: bash, zsh and fish. The number of commands shown is
stored in the config file as "nb_cmds N" and changed with -s.

Examples:
  top-cmds                  # chart of the top commands
  top-cmds -s 10            # show the top 10 from now on
  top-cmds --format json    # machine readable output
  top-cmds --shell zsh      # skip detection`,
		Version:       info.String(),
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("set") {
				return runSet(cmd, opts)
			}
			return runRoot(cmd, opts)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &tcerrors.UsageError{Msg: err.Error(), Err: err}
	})
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&opts.Set, "set", "s", "", "store N as the number of commands to show")
	flags.IntVarP(&opts.Number, "number", "n", -1, "show N commands for this run only")
	flags.StringVar(&opts.Format, "format", string(export.FormatChart), "output format: "+formatNames())
	flags.StringVarP(&opts.Output, "out", "o", "", "write the report to a file (not for chart)")
	flags.StringVar(&opts.Shell, "shell", "", "use this shell instead of detecting it (bash, zsh, fish)")
	flags.StringVar(&opts.Detect, "detect", DetectProcess, "detection method: process, login or auto")
	flags.StringVar(&opts.HistoryFile, "history-file", "", "read this history file instead of the shell's default (its format follows the detected shell or --shell)")
	flags.BoolVar(&opts.Raw, "raw", false, "keep zsh and bash timestamp metadata in commands")
	flags.StringSliceVar(&opts.Exclude, "exclude", nil, "ignore commands starting with these words")
	flags.BoolVar(&opts.SkipBuiltins, "skip-builtins", false, "ignore cd, ls, exit and similar builtins")

	AddGlobalFlags(cmd)

	return cmd
}

// Execute runs the command with args and returns the process exit code.
// Usage errors print the error and the usage text to stderr and return
// ExitUsage; they never touch the config file.
func Execute(ctx context.Context, cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	if ue, ok := tcerrors.AsUsageError(err); ok {
		fmt.Fprintf(stderr, "Error: %s\n", ue.Msg)
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}
	fmt.Fprintf(stderr, "Error: %s\n", err)
	return ExitError
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return tcerrors.Usage("unexpected argument %q", args[0])
	}
	return nil
}

func runSet(cmd *cobra.Command, opts *RootOptions) error {
	n, err := config.ParseLimit(opts.Set)
	if err != nil {
		return &tcerrors.UsageError{Msg: fmt.Sprintf("invalid value %q for -s: must be a non-negative integer", opts.Set), Err: err}
	}

	store, err := resolveStore(opts)
	if err != nil {
		return err
	}
	if err := store.Write(n); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Number of commands set to %d (%s)\n", n, store.Path())
	return nil
}

func runRoot(cmd *cobra.Command, opts *RootOptions) error {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return tcerrors.Usage("%s", err)
	}
	if opts.Output != "" && format == export.FormatChart {
		return tcerrors.Usage("--out needs a --format other than chart")
	}

	var limit *int
	if cmd.Flags().Changed("number") {
		if opts.Number < 0 {
			return tcerrors.Usage("invalid value %d for -n: must be a non-negative integer", opts.Number)
		}
		limit = &opts.Number
	}

	strategies, err := detectionStrategies(opts)
	if err != nil {
		return err
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = logging.New(IsVerbose())
		if err != nil {
			return err
		}
		defer logging.Sync(logger)
	}

	store, err := resolveStore(opts)
	if err != nil {
		logger.Warn("config location unknown, using default limit", zap.Error(err))
		store = nil
	}

	parse := history.DefaultOptions()
	if opts.Raw {
		parse = history.RawOptions()
	}

	res, err := app.Run(cmd.Context(), app.Options{
		Detector:    shell.NewDetector(logger, strategies...),
		Store:       store,
		HomeDir:     opts.HomeDir,
		HistoryFile: opts.HistoryFile,
		Parse:       parse,
		Filter: history.FilterOptions{
			RemoveEmpty:  true,
			SkipCommands: opts.Exclude,
			SkipBuiltins: opts.SkipBuiltins,
		},
		Limit:   limit,
		Format:  format,
		NoColor: IsNoColor(),
		Output:  opts.Output,
		Stdout:  cmd.OutOrStdout(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if res.Insufficient() {
		logger.Debug("no commands ranked", zap.Int("warnings", len(res.Warnings)))
	}
	return nil
}

func resolveStore(opts *RootOptions) (*config.Store, error) {
	if opts.Store != nil {
		return opts.Store, nil
	}
	return config.DefaultStore()
}

func detectionStrategies(opts *RootOptions) ([]shell.Strategy, error) {
	if opts.Shell != "" {
		st, err := shell.ParseShellType(opts.Shell)
		if err != nil {
			return nil, &tcerrors.UsageError{Msg: fmt.Sprintf("invalid value %q for --shell: supported shells are %s", opts.Shell, supportedShells()), Err: err}
		}
		return []shell.Strategy{shell.StaticStrategy{Shell: st}}, nil
	}
	if len(opts.Strategies) > 0 {
		return opts.Strategies, nil
	}

	walk := shell.NewProcessWalkStrategy(shell.SystemProcessTable{})
	switch opts.Detect {
	case DetectProcess:
		return []shell.Strategy{walk}, nil
	case DetectLogin:
		return []shell.Strategy{&shell.LoginShellStrategy{}}, nil
	case DetectAuto:
		return []shell.Strategy{walk, &shell.LoginShellStrategy{}}, nil
	default:
		return nil, tcerrors.Usage("invalid value %q for --detect: must be process, login or auto", opts.Detect)
	}
}

func formatNames() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func supportedShells() string {
	var names []string
	for _, s := range shell.GetSupportedShells() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
