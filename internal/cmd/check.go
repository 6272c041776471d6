package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/dendrascience/poetry-auto-export/util"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// DefaultRequirementsFile is checked when no requirements path is given.
const DefaultRequirementsFile = "requirements.txt"

const checkUsage = `Check that a requirements file is up to date with poetry.lock.

The SHA1 hash of the lock file is compared with the comment on the first line
of the requirements file, as written by poetry-auto-export.

Usage:
  check-requirements [LOCK_PATH] [REQUIREMENTS_PATH]

LOCK_PATH defaults to poetry.lock and REQUIREMENTS_PATH to requirements.txt,
both in the current directory.
`

// CheckMain implements the standalone check-requirements program and returns
// its exit code. It prints nothing on success.
func CheckMain(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		fmt.Fprint(stdout, checkUsage)
		return 0
	}
	if len(args) > 2 {
		fmt.Fprint(stdout, checkUsage)
		fmt.Fprintf(stderr, "Error: too many arguments (expected at most 2, got %d)\n", len(args))
		return 1
	}

	lockPath := config.DefaultLockFile
	reqPath := DefaultRequirementsFile
	if len(args) > 0 {
		lockPath = args[0]
	}
	if len(args) > 1 {
		reqPath = args[1]
	}

	if err := util.CheckRequirementsFile(afero.NewOsFs(), lockPath, reqPath); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// NewCheckCmd creates and returns the check subcommand.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [LOCK_PATH] [REQUIREMENTS_PATH]",
		Short: "Check that requirements files match poetry.lock",
		Long: `Check that generated requirements files are up to date with poetry.lock.

With explicit paths, REQUIREMENTS_PATH (default requirements.txt next to
pyproject.toml) is checked against LOCK_PATH. Without arguments the output of
every export job configured in pyproject.toml is checked, falling back to
requirements.txt when no jobs are configured.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 2 {
				fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
				return fmt.Errorf("too many arguments (expected at most 2, got %d)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, _, err := setup(cmd)
			if err != nil {
				return err
			}
			settings := plugin.Settings()

			lockPath := settings.LockPath()
			if len(args) > 0 {
				lockPath = args[0]
			}

			var targets []string
			switch {
			case len(args) > 1:
				targets = []string{args[1]}
			case len(args) == 0:
				jobs, err := plugin.Jobs()
				if err != nil {
					return err
				}
				for _, job := range jobs {
					targets = append(targets, plugin.OutputPath(job))
				}
			}
			if len(targets) == 0 {
				targets = []string{filepath.Join(settings.ProjectDir(), DefaultRequirementsFile)}
			}

			fsys := afero.NewOsFs()
			var errs []error
			for _, target := range targets {
				if err := util.CheckRequirementsFile(fsys, lockPath, target); err != nil {
					errs = append(errs, err)
					continue
				}
				plugin.Logger().Debug("Up to date", "path", target)
			}
			if len(errs) > 0 {
				return &ExitError{Code: 1, Err: errors.Join(errs...)}
			}
			return nil
		},
	}

	return cmd
}
