package autoexport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/dendrascience/poetry-auto-export/config"
)

// Exporter materializes one export job given its "poetry export" arguments.
type Exporter interface {
	Export(ctx context.Context, args []string) error
}

// Poetry runs the poetry executable.
type Poetry struct {
	// Binary is the poetry executable.
	Binary string
	// Dir is the working directory, normally the project directory.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewPoetry returns a Poetry wired to the process's standard streams.
func NewPoetry(settings config.Settings) *Poetry {
	return &Poetry{
		Binary: settings.Poetry,
		Dir:    settings.ProjectDir(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Export runs "poetry export" with args.
func (p *Poetry) Export(ctx context.Context, args []string) error {
	code, err := p.Run(ctx, append([]string{"export"}, args...))
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("%w: exit status %d", ErrExportFailed, code)
	}
	return nil
}

// Run runs poetry with args and returns its exit code. The error is non-nil
// only when poetry could not be run at all.
func (p *Poetry) Run(ctx context.Context, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, p.Binary, args...)
	cmd.Dir = p.Dir
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run %s: %w", p.Binary, err)
	}
	return 0, nil
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, args []string) error

// Export calls f.
func (f ExporterFunc) Export(ctx context.Context, args []string) error {
	return f(ctx, args)
}
