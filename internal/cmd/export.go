package cmd

import (
	"fmt"
	"slices"

	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/spf13/cobra"
)

// NewExportCmd creates and returns the export subcommand.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [OUTPUT...]",
		Short: "Export every configured job now",
		Long: `Export the jobs configured in pyproject.toml and stamp each generated
file with the hash of poetry.lock.

Without arguments every job is exported. Passing OUTPUT names restricts the
run to the jobs writing those files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, _, err := setup(cmd)
			if err != nil {
				return err
			}

			jobs, err := plugin.Jobs()
			if err != nil {
				return err
			}
			jobs, err = selectJobs(jobs, args)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "No export jobs configured in %s\n", plugin.Settings().Pyproject)
				return nil
			}

			return plugin.RunExports(cmd.Context(), jobs)
		},
	}

	return cmd
}

// selectJobs keeps the jobs whose output is listed. An empty list keeps all.
func selectJobs(jobs []config.Job, outputs []string) ([]config.Job, error) {
	if len(outputs) == 0 {
		return jobs, nil
	}
	var selected []config.Job
	for _, out := range outputs {
		i := slices.IndexFunc(jobs, func(j config.Job) bool { return j.Output == out })
		if i < 0 {
			return nil, fmt.Errorf("no export job writes %s", out)
		}
		selected = append(selected, jobs[i])
	}
	return selected, nil
}
