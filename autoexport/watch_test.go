package autoexport

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_LockFileChange(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "poetry.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("lock v1\n"), 0o644))

	var calls atomic.Int32
	called := make(chan struct{}, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, WatchConfig{
			LockFile: lockPath,
			Debounce: 100 * time.Millisecond,
			Logger:   log.New(io.Discard),
			OnChange: func(context.Context) error {
				calls.Add(1)
				called <- struct{}{}
				return nil
			},
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("x"), 0o644))
	for _, content := range []string{"lock v2\n", "lock v3\n", "lock v4\n"} {
		require.NoError(t, os.WriteFile(lockPath, []byte(content), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange was not called after lock file change")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "poetry.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("lock v1\n"), 0o644))

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, WatchConfig{
			LockFile: lockPath,
			Debounce: 50 * time.Millisecond,
			Logger:   log.New(io.Discard),
			OnChange: func(context.Context) error {
				calls.Add(1)
				return nil
			},
		})
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[tool]\n"), 0o644))
	time.Sleep(300 * time.Millisecond)

	cancel()
	require.NoError(t, <-errCh)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatch_RequiresCallback(t *testing.T) {
	err := Watch(context.Background(), WatchConfig{LockFile: "poetry.lock"})
	assert.Error(t, err)
}
