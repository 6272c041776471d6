package autoexport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/dendrascience/poetry-auto-export/util"
	"github.com/spf13/afero"
)

// TriggerCommands are the poetry commands that can change poetry.lock.
var TriggerCommands = []string{"lock", "update", "add", "remove"}

// IsTrigger reports whether the poetry command should trigger an export.
func IsTrigger(command string) bool {
	return slices.Contains(TriggerCommands, command)
}

// Event describes a finished poetry command.
type Event struct {
	// Command is the poetry subcommand, e.g. "lock".
	Command string
	// Args are the arguments poetry was run with, including Command.
	Args     []string
	ExitCode int
}

// Plugin runs the configured exports. Its configuration is fixed at
// construction.
type Plugin struct {
	settings config.Settings
	fs       afero.Fs
	exporter Exporter
	logger   *log.Logger
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithExporter replaces the default poetry exporter.
func WithExporter(e Exporter) Option {
	return func(p *Plugin) { p.exporter = e }
}

// WithFs replaces the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(p *Plugin) { p.fs = fsys }
}

// WithLogger sets the logger for progress and diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(p *Plugin) { p.logger = l }
}

// New returns a Plugin for settings.
func New(settings config.Settings, opts ...Option) *Plugin {
	p := &Plugin{settings: settings}
	for _, opt := range opts {
		opt(p)
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.exporter == nil {
		p.exporter = NewPoetry(settings)
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "poetry-auto-export"})
	}
	return p
}

// Settings returns the plugin's settings.
func (p *Plugin) Settings() config.Settings {
	return p.settings
}

// Logger returns the plugin's logger.
func (p *Plugin) Logger() *log.Logger {
	return p.logger
}

// Jobs loads the export jobs from the project's pyproject.toml. A project
// without pyproject.toml has no jobs.
func (p *Plugin) Jobs() ([]config.Job, error) {
	jobs, err := config.LoadJobs(p.fs, p.settings.Pyproject)
	if errors.Is(err, config.ErrPyprojectNotFound) {
		p.logger.Debug("No pyproject.toml found, nothing to export", "path", p.settings.Pyproject)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// HandleTerminate runs the exports after a successful trigger command and
// ignores every other event.
func (p *Plugin) HandleTerminate(ctx context.Context, ev Event) error {
	if ev.ExitCode != 0 {
		p.logger.Debug("Skipping export after failed command", "command", ev.Command, "args", ev.Args, "exit_code", ev.ExitCode)
		return nil
	}
	if !IsTrigger(ev.Command) {
		p.logger.Debug("Skipping export for command", "command", ev.Command, "args", ev.Args)
		return nil
	}

	jobs, err := p.Jobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	p.logger.Info("Poetry Auto Export Activated")
	return p.RunExports(ctx, jobs)
}

// RunExports exports and stamps each job in order. It stops at the first
// failing job.
func (p *Plugin) RunExports(ctx context.Context, jobs []config.Job) error {
	for _, job := range jobs {
		if err := p.export(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) export(ctx context.Context, job config.Job) error {
	flagString := FormatArgs(job, p.logger)
	args, err := SplitArgs(flagString)
	if err != nil {
		return fmt.Errorf("export %s: %w", job.Output, err)
	}

	p.logger.Info("Exporting dependencies", "output", job.Output)
	p.logger.Debug("poetry export", "args", flagString)
	if err := p.exporter.Export(ctx, args); err != nil {
		return fmt.Errorf("export %s: %w", job.Output, err)
	}

	if err := util.StampRequirementsFile(p.fs, p.settings.LockPath(), p.OutputPath(job)); err != nil {
		return fmt.Errorf("stamp %s: %w", job.Output, err)
	}
	return nil
}

// OutputPath resolves a job's output against the project directory.
func (p *Plugin) OutputPath(job config.Job) string {
	if filepath.IsAbs(job.Output) {
		return job.Output
	}
	return filepath.Join(p.settings.ProjectDir(), job.Output)
}
