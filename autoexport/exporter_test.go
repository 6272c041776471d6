package autoexport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/poetry-auto-export/config"
	"github.com/dendrascience/poetry-auto-export/util"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePoetry is a stand-in for the poetry executable. "export" writes the -o
// target and records its arguments; "fail" exits with status 3.
const fakePoetry = `#!/bin/sh
case "$1" in
export)
	shift
	printf '%s\n' "$@" > export-args.txt
	while [ $# -gt 0 ]; do
		if [ "$1" = "-o" ]; then
			shift
			printf 'flask==3.0.0\n' > "$1"
		fi
		shift
	done
	;;
fail)
	echo "boom" >&2
	exit 3
	;;
esac
`

func writeFakePoetry(t *testing.T) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake poetry is a shell script")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "poetry")
	require.NoError(t, os.WriteFile(bin, []byte(fakePoetry), 0o755))
	return dir, bin
}

func TestPoetryRun_ExitCode(t *testing.T) {
	dir, bin := writeFakePoetry(t)
	var stderr bytes.Buffer
	p := &Poetry{Binary: bin, Dir: dir, Stdout: io.Discard, Stderr: &stderr}

	code, err := p.Run(context.Background(), []string{"fail"})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr.String(), "boom")

	code, err = p.Run(context.Background(), []string{"lock"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestPoetryRun_MissingBinary(t *testing.T) {
	p := &Poetry{Binary: filepath.Join(t.TempDir(), "no-such-poetry")}
	_, err := p.Run(context.Background(), []string{"lock"})
	assert.Error(t, err)
}

func TestPoetryExport_EndToEnd(t *testing.T) {
	dir, bin := writeFakePoetry(t)
	pyproject := "[tool.poetry-auto-export]\noutput = \"my reqs.txt\"\nwithout = [\"dev\", \"test\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(pyproject), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "poetry.lock"), []byte("lock v1\n"), 0o644))

	settings := config.DefaultSettings()
	settings.Poetry = bin
	settings.Pyproject = filepath.Join(dir, "pyproject.toml")

	p := New(settings, WithLogger(log.New(io.Discard)))
	require.NoError(t, p.HandleTerminate(context.Background(), Event{Command: "add"}))

	args, err := os.ReadFile(filepath.Join(dir, "export-args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "-o\nmy reqs.txt\n--without=dev\n--without=test\n", string(args))

	reqPath := filepath.Join(dir, "my reqs.txt")
	assert.NoError(t, util.CheckRequirementsFile(afero.NewOsFs(), settings.LockPath(), reqPath))
}
