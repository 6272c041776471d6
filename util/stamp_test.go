package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampRequirementsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "poetry.lock", []byte("lock v1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "requirements.txt", []byte("Example requirements file"), 0o644))

	require.NoError(t, StampRequirementsFile(fsys, "poetry.lock", "requirements.txt"))

	got, err := afero.ReadFile(fsys, "requirements.txt")
	require.NoError(t, err)

	lines := strings.Split(string(got), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "# poetry.lock hash: 26644a32b7992eb1cc130ffc3d43e7d5430a7b69", lines[0])
	assert.Contains(t, lines[1], "generated by poetry-auto-export")
	assert.True(t, strings.HasPrefix(lines[2], "# "))
	assert.Equal(t, "Example requirements file", lines[3])
}

func TestStampRequirementsFile_PreservesContent(t *testing.T) {
	fsys := afero.NewOsFs()
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "poetry.lock")
	reqPath := filepath.Join(dir, "requirements.txt")

	original := "requests==2.31.0 ; python_version >= \"3.8\"\r\n    --hash=sha256:abc\n\n"
	require.NoError(t, os.WriteFile(lockPath, []byte("lock v1\n"), 0o644))
	require.NoError(t, os.WriteFile(reqPath, []byte(original), 0o600))

	require.NoError(t, StampRequirementsFile(fsys, lockPath, reqPath))

	got, err := os.ReadFile(reqPath)
	require.NoError(t, err)
	header := StampHeader("26644a32b7992eb1cc130ffc3d43e7d5430a7b69")
	assert.Equal(t, string(header)+original, string(got))

	info, err := os.Stat(reqPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStampRequirementsFile_MissingLock(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "requirements.txt", []byte("flask==3.0.0\n"), 0o644))

	require.NoError(t, StampRequirementsFile(fsys, "poetry.lock", "requirements.txt"))

	got, err := afero.ReadFile(fsys, "requirements.txt")
	require.NoError(t, err)
	assert.Equal(t, MissingLockLine, FirstLine(got))
	assert.True(t, strings.HasSuffix(string(got), "flask==3.0.0\n"))
}

func TestStampRequirementsFile_MissingTarget(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "poetry.lock", []byte("lock v1\n"), 0o644))

	err := StampRequirementsFile(fsys, "poetry.lock", "requirements.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestStampHeader(t *testing.T) {
	header := string(StampHeader("abc"))
	assert.Equal(t, 3, strings.Count(header, "\n"))
	assert.True(t, strings.HasPrefix(header, "# poetry.lock hash: abc\n"))

	assert.True(t, strings.HasPrefix(string(StampHeader("")), MissingLockLine+"\n"))
}
