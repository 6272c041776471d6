package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/poetry-auto-export/util"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMain(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "poetry.lock")
	reqPath := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(lockPath, []byte("lock v1\n"), 0o644))
	require.NoError(t, os.WriteFile(reqPath, []byte("flask==3.0.0\n"), 0o644))
	require.NoError(t, util.StampRequirementsFile(afero.NewOsFs(), lockPath, reqPath))

	tests := []struct {
		name       string
		args       []string
		setup      func(t *testing.T)
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "help",
			args:       []string{"--help"},
			wantStdout: "Usage:",
		},
		{
			name:       "short help before file access",
			args:       []string{"-h", "does-not-exist.lock"},
			wantStdout: "Usage:",
		},
		{
			name:       "too many arguments",
			args:       []string{"a.lock", "b.txt", "c"},
			wantCode:   1,
			wantStdout: "Usage:",
			wantStderr: "too many arguments",
		},
		{
			name: "up to date",
			args: []string{lockPath, reqPath},
		},
		{
			name:       "missing lock file",
			args:       []string{filepath.Join(dir, "missing.lock"), reqPath},
			wantCode:   1,
			wantStderr: "File not found",
		},
		{
			name:       "wrong extension",
			args:       []string{reqPath, reqPath},
			wantCode:   1,
			wantStderr: "Invalid file type",
		},
		{
			name:       "missing requirements file",
			args:       []string{lockPath, filepath.Join(dir, "missing.txt")},
			wantCode:   1,
			wantStderr: "File not found",
		},
		{
			name: "out of date",
			args: []string{lockPath, reqPath},
			setup: func(t *testing.T) {
				require.NoError(t, os.WriteFile(lockPath, []byte("lock v2\n"), 0o644))
			},
			wantCode:   1,
			wantStderr: "out of date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			var stdout, stderr bytes.Buffer
			code := CheckMain(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.Contains(t, stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
			if tt.wantCode == 0 && tt.wantStdout == "" {
				assert.Empty(t, stdout.String())
				assert.Empty(t, stderr.String())
			}
		})
	}
}

func TestCheckMain_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	code := CheckMain(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "File not found: poetry.lock")

	require.NoError(t, os.WriteFile("poetry.lock", []byte("lock v1\n"), 0o644))
	stderr.Reset()
	code = CheckMain(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "File not found: requirements.txt")

	require.NoError(t, os.WriteFile("requirements.txt", []byte("flask\n"), 0o644))
	require.NoError(t, util.StampRequirementsFile(afero.NewOsFs(), "poetry.lock", "requirements.txt"))
	stderr.Reset()
	assert.Equal(t, 0, CheckMain(nil, &stdout, &stderr))
	assert.Empty(t, stderr.String())
}
