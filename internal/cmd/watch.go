package cmd

import (
	"context"
	"time"

	"github.com/dendrascience/poetry-auto-export/autoexport"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates and returns the watch subcommand.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Export whenever poetry.lock changes",
		Long: `Watch poetry.lock and export every configured job after it changes.

Bursts of changes within the debounce window result in a single export run.
Jobs are re-read from pyproject.toml on every run. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, _, err := setup(cmd)
			if err != nil {
				return err
			}
			settings := plugin.Settings()

			return autoexport.Watch(cmd.Context(), autoexport.WatchConfig{
				LockFile: settings.LockPath(),
				Debounce: settings.Debounce,
				Logger:   plugin.Logger(),
				OnChange: func(ctx context.Context) error {
					jobs, err := plugin.Jobs()
					if err != nil {
						return err
					}
					return plugin.RunExports(ctx, jobs)
				},
			})
		},
	}

	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Quiet period after a change before exporting")

	return cmd
}
