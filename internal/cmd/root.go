package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/dendrascience/poetry-auto-export/autoexport"
	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/dendrascience/poetry-auto-export/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the
// poetry-auto-export CLI. It sets up all subcommands, command groups, and the
// persistent settings flags.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "poetry-auto-export",
		Short: "Keep requirements files in sync with poetry.lock",
		Long: `poetry-auto-export regenerates requirements files from poetry.lock.

Export jobs are configured in pyproject.toml under [tool.poetry-auto-export].
After a poetry command that changes the lock file (lock, update, add, remove)
succeeds, every job is exported with "poetry export" and the generated file is
stamped with the SHA1 hash of poetry.lock on its first line.

Use subcommands to perform different operations:
  - run: Run a poetry command and export afterwards
  - export: Export every configured job now
  - watch: Export whenever poetry.lock changes
  - check: Check that requirements files match poetry.lock
  - jobs: Show the configured export jobs`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := config.DefaultSettings()
	flags := rootCmd.PersistentFlags()
	flags.String("pyproject", defaults.Pyproject, "Path to the project's pyproject.toml")
	flags.String("lock-file", defaults.LockFile, "Path to poetry.lock (default: next to pyproject.toml)")
	flags.String("poetry", defaults.Poetry, "Poetry executable")
	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")

	groupHooks := "hooks"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupHooks,
		Title: "Poetry Hooks",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	runCmd := NewRunCmd()
	exportCmd := NewExportCmd()
	watchCmd := NewWatchCmd()
	checkCmd := NewCheckCmd()
	jobsCmd := NewJobsCmd()

	runCmd.GroupID = groupHooks
	exportCmd.GroupID = groupHooks
	watchCmd.GroupID = groupHooks
	checkCmd.GroupID = groupUtilities
	jobsCmd.GroupID = groupUtilities

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(jobsCmd)

	return rootCmd
}

// Execute runs the CLI with fang and returns the process exit code.
func Execute(ctx context.Context) int {
	err := fang.Execute(
		ctx,
		NewRootCmd(),
		fang.WithVersion(version.GetFullVersion()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// setup resolves the settings for cmd and builds the plugin along with the
// poetry runner it exports through.
func setup(cmd *cobra.Command) (*autoexport.Plugin, *autoexport.Poetry, error) {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	plugin, poetry := newPlugin(cmd, settings, logger)
	return plugin, poetry, nil
}

// newPlugin builds the plugin for settings, exporting through a poetry runner
// attached to cmd's streams.
func newPlugin(cmd *cobra.Command, settings config.Settings, logger *log.Logger) (*autoexport.Plugin, *autoexport.Poetry) {
	poetry := autoexport.NewPoetry(settings)
	poetry.Stdin = cmd.InOrStdin()
	poetry.Stdout = cmd.OutOrStdout()
	poetry.Stderr = cmd.ErrOrStderr()

	plugin := autoexport.New(settings,
		autoexport.WithExporter(poetry),
		autoexport.WithLogger(logger),
	)
	return plugin, poetry
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "poetry-auto-export",
		Level:  lvl,
	}), nil
}
