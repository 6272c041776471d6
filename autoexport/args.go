package autoexport

import (
	"fmt"
	"strings"

	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/google/shlex"
)

// Diagnostics receives non-fatal findings. *log.Logger from
// github.com/charmbracelet/log satisfies it.
type Diagnostics interface {
	Warn(msg any, keyvals ...any)
}

// FormatArgs renders job as a "poetry export" flag string. Flags appear in a
// fixed order and every value is single quoted. Unknown job keys are reported
// to diag, if non-nil, and otherwise ignored.
func FormatArgs(job config.Job, diag Diagnostics) string {
	var args []string

	if job.Output != "" {
		args = append(args, "-o "+quote(job.Output))
	}
	if job.Format != "" {
		args = append(args, "--format "+quote(job.Format))
	}

	flags := []struct {
		set  bool
		flag string
	}{
		{job.WithoutHashes, "--without-hashes"},
		{job.WithCredentials, "--with-credentials"},
		{job.WithoutURLs, "--without-urls"},
		{job.AllExtras, "--all-extras"},
		{job.OnlyRoot, "--only-root"},
	}
	for _, f := range flags {
		if f.set {
			args = append(args, f.flag)
		}
	}

	lists := []struct {
		flag   string
		values []string
	}{
		{"--with", job.With},
		{"--without", job.Without},
		{"--only", job.Only},
		{"--extras", job.Extras},
	}
	for _, l := range lists {
		for _, v := range l.values {
			args = append(args, l.flag+"="+quote(v))
		}
	}

	if len(job.Unknown) > 0 && diag != nil {
		diag.Warn("Ignoring unknown export options", "output", job.Output, "options", strings.Join(job.Unknown, ", "))
	}

	return strings.Join(args, " ")
}

// SplitArgs splits a flag string produced by FormatArgs into argv form.
func SplitArgs(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	return args, nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
