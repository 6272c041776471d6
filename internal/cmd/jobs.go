package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dendrascience/poetry-auto-export/autoexport"
	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type jobView struct {
	config.Job `yaml:",inline"`
	Args       string `yaml:"args"`
}

// NewJobsCmd creates and returns the jobs subcommand.
func NewJobsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Show the export jobs configured in pyproject.toml",
		Long: `Show the export jobs configured in pyproject.toml in the order they run,
together with the arguments passed to "poetry export".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, _, err := setup(cmd)
			if err != nil {
				return err
			}
			jobs, err := plugin.Jobs()
			if err != nil {
				return err
			}

			views := make([]jobView, 0, len(jobs))
			for _, job := range jobs {
				views = append(views, jobView{Job: job, Args: autoexport.FormatArgs(job, plugin.Logger())})
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(views); err != nil {
					return err
				}
				return enc.Close()
			case "text":
				if len(views) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "No export jobs configured in %s\n", plugin.Settings().Pyproject)
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "OUTPUT\tARGS")
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t%s\n", v.Output, v.Args)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unknown format %q (expected text or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, yaml)")

	return cmd
}
