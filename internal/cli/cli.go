package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/layoutgrid/internal/app"
	"github.com/specialistvlad/layoutgrid/internal/config"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
	storage    string
	dbPath     string
	key        string
	mainArea   bool
}

// runner owns the App for the duration of one command.
type runner struct {
	ctx   context.Context
	logW  io.Writer
	flags globalFlags
	app   *app.App
}

// newRootCommand builds the command tree. Command output goes to outW.
func newRootCommand(r *runner, outW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "layoutgrid",
		Short: "Build, inspect, migrate and merge workbench layouts",
		Long: `layoutgrid manages workbench layouts: trees of parts holding stacks of views.
Layouts are stored under keys as versioned transport strings and can be built
from declarative HCL definition files.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.open,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%s", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&r.flags.configFile, "config", "", "Path to a config file (default $HOME/.config/layoutgrid/config.yaml).")
	pf.StringVar(&r.flags.logLevel, "log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&r.flags.logFormat, "log-format", "", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&r.flags.storage, "storage", "", "Layout storage. Options: 'sqlite' or 'memory'.")
	pf.StringVar(&r.flags.dbPath, "db", "", "Path of the sqlite layout database.")
	pf.StringVarP(&r.flags.key, "key", "k", "", "Storage key of the layout.")
	pf.BoolVar(&r.flags.mainArea, "main-area", false, "Create new layouts with a main area.")

	root.AddCommand(
		newApplyCommand(r),
		newInspectCommand(r),
		newMigrateCommand(r),
		newMergeCommand(r),
		newNextViewIDCommand(r),
		newListCommand(r),
	)
	return root
}

// overrides turns the flags the user actually set into config overrides.
func (r *runner) overrides(cmd *cobra.Command) map[string]any {
	set := map[string]struct {
		key string
		val any
	}{
		"log-level":  {"log.level", r.flags.logLevel},
		"log-format": {"log.format", r.flags.logFormat},
		"storage":    {"storage.type", r.flags.storage},
		"db":         {"storage.path", r.flags.dbPath},
		"key":        {"layout.key", r.flags.key},
		"main-area":  {"layout.main_area", r.flags.mainArea},
	}
	out := make(map[string]any)
	for flag, o := range set {
		if cmd.Flags().Changed(flag) {
			out[o.key] = o.val
		}
	}
	return out
}

func (r *runner) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.Options{File: r.flags.configFile, Overrides: r.overrides(cmd)})
	if err != nil {
		return usageError("%s", err)
	}
	a, err := app.NewApp(r.ctx, r.logW, cfg)
	if err != nil {
		return err
	}
	r.app = a
	return nil
}

func (r *runner) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// key returns the layout key of the current command.
func (r *runner) key() string {
	return r.app.Config().Layout.Key
}

// Execute runs the command tree with args. Command output goes to outW and
// logs go to logW. Usage problems are reported as an ExitError with code 2.
func Execute(ctx context.Context, outW, logW io.Writer, args []string) error {
	r := &runner{ctx: ctx, logW: logW}
	root := newRootCommand(r, outW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if closeErr := r.close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) && strings.HasPrefix(err.Error(), "unknown command") {
		return usageError("%s", err)
	}
	return err
}

// exactArgs is cobra.ExactArgs reporting an ExitError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError("%s", err)
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs reporting an ExitError.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError("%s", err)
		}
		return nil
	}
}
