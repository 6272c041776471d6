package autoexport

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// WatchConfig configures Watch.
type WatchConfig struct {
	// LockFile is the file to watch. Its directory is watched so that
	// replacements through rename are seen.
	LockFile string
	// Debounce is the quiet period after the last change before OnChange
	// fires. Zero or negative values fall back to 500ms.
	Debounce time.Duration
	// OnChange runs once per burst of changes. Its error is logged.
	OnChange func(ctx context.Context) error
	Logger   *log.Logger
}

// Watch blocks until ctx is done, calling cfg.OnChange after the lock file
// changes. Callbacks never overlap: events arriving during a callback are
// coalesced into the next one.
func Watch(ctx context.Context, cfg WatchConfig) error {
	if cfg.OnChange == nil {
		return errors.New("watch: OnChange is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	lockPath, err := filepath.Abs(cfg.LockFile)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", cfg.LockFile, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(lockPath)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(lockPath), err)
	}
	logger.Info("Watching lock file", "path", cfg.LockFile)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.Events:
			if !ok {
				return errors.New("watch: event channel closed unexpectedly")
			}
			if filepath.Clean(evt.Name) != lockPath || evt.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

		case <-fire:
			timer = nil
			logger.Debug("Lock file changed", "path", cfg.LockFile)
			if err := cfg.OnChange(ctx); err != nil {
				logger.Error("Export failed", "err", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watch: error channel closed unexpectedly")
			}
			logger.Warn("Watcher error", "err", err)
		}
	}
}
