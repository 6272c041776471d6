package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dendrascience/poetry-auto-export/autoexport"
	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/spf13/cobra"
)

// NewRunCmd creates and returns the run subcommand. It runs poetry and fires
// the export hook once poetry terminates.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] -- POETRY_COMMAND [ARGS...]",
		Short: "Run a poetry command and export after lock file changes",
		Long: `Run a poetry command, then export every configured job if the command
changes poetry.lock (lock, update, add, remove) and exits successfully.

Poetry's exit status is passed through. Exports are skipped when poetry fails,
and an export failure makes the run fail.

When poetry is pointed at another project with -C/--directory or -P/--project,
the exports run for that project's pyproject.toml. Relative directories are
resolved against the directory poetry runs in.`,
		Example: `  poetry-auto-export run -- add requests
  poetry-auto-export run -- lock --no-update
  poetry-auto-export run -- -C services/api lock`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, poetry, err := setup(cmd)
			if err != nil {
				return err
			}

			code, err := poetry.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			inv := parsePoetryArgs(args)
			if inv.Project != "" {
				settings := inv.projectSettings(plugin.Settings())
				plugin.Logger().Debug("Using project from poetry options", "pyproject", settings.Pyproject)
				plugin, _ = newPlugin(cmd, settings, plugin.Logger())
			}

			ev := autoexport.Event{Command: inv.Command, Args: args, ExitCode: code}
			if err := plugin.HandleTerminate(cmd.Context(), ev); err != nil {
				return err
			}

			if code != 0 {
				return &ExitError{Code: code, Err: fmt.Errorf("poetry %s exited with status %d", ev.Command, code)}
			}
			return nil
		},
	}

	// everything after the poetry command belongs to poetry
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// poetryInvocation is what the wrapper needs to know about poetry's arguments.
type poetryInvocation struct {
	// Command is the poetry subcommand, empty when there is none.
	Command string
	// Project is the project directory given with -C/--directory or
	// -P/--project. -P wins when both are set.
	Project string
}

// poetry global options that take a value
var (
	directoryOptions = []string{"-C", "--directory"}
	projectOptions   = []string{"-P", "--project"}
)

// parsePoetryArgs finds the subcommand in poetry's arguments, skipping leading
// options and the values of -C/--directory and -P/--project.
func parsePoetryArgs(args []string) poetryInvocation {
	var inv poetryInvocation
	var directory, project string

	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			inv.Command = a
			break
		}
		if a == "--" {
			if i+1 < len(args) {
				inv.Command = args[i+1]
			}
			break
		}

		target := &directory
		value, ok := optionValue(a, directoryOptions)
		if !ok {
			target = &project
			value, ok = optionValue(a, projectOptions)
		}
		if !ok {
			continue
		}
		if value == "" && i+1 < len(args) {
			i++
			value = args[i]
		}
		*target = value
	}

	inv.Project = directory
	if project != "" {
		inv.Project = project
	}
	return inv
}

// optionValue matches arg against names. The returned value is set for the
// attached forms "--name=value" and "-Xvalue" and empty when the value is the
// next argument.
func optionValue(arg string, names []string) (string, bool) {
	for _, name := range names {
		switch {
		case arg == name:
			return "", true
		case strings.HasPrefix(name, "--") && strings.HasPrefix(arg, name+"="):
			return strings.TrimPrefix(arg, name+"="), true
		case !strings.HasPrefix(name, "--") && strings.HasPrefix(arg, name):
			return strings.TrimPrefix(arg, name), true
		}
	}
	return "", false
}

// projectSettings points settings at the project poetry was run for. An
// explicit lock file is kept.
func (inv poetryInvocation) projectSettings(settings config.Settings) config.Settings {
	dir := inv.Project
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(settings.ProjectDir(), dir)
	}
	settings.Pyproject = filepath.Join(dir, config.DefaultSettings().Pyproject)
	return settings
}
