package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by LoadSettings.
	EnvPrefix = "POETRY_AUTO_EXPORT"
	// DefaultLockFile is the lock file name poetry writes.
	DefaultLockFile = "poetry.lock"
)

// Settings configures a poetry-auto-export run. It is passed explicitly to
// everything that needs it.
type Settings struct {
	// Poetry is the poetry executable, looked up in PATH when not absolute.
	Poetry string `mapstructure:"poetry"`
	// Pyproject is the project manifest holding the export jobs.
	Pyproject string `mapstructure:"pyproject"`
	// LockFile is the lock file whose hash stamps generated files. Empty means
	// poetry.lock next to Pyproject.
	LockFile string `mapstructure:"lock_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// Debounce is the quiet period the watcher waits for after a lock file change.
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultSettings returns the settings used when nothing overrides them.
func DefaultSettings() Settings {
	return Settings{
		Poetry:    "poetry",
		Pyproject: "pyproject.toml",
		LogLevel:  "info",
		Debounce:  500 * time.Millisecond,
	}
}

// ProjectDir is the directory holding the pyproject file. Export outputs are
// resolved relative to it.
func (s Settings) ProjectDir() string {
	return filepath.Dir(s.Pyproject)
}

// LockPath returns the lock file to hash.
func (s Settings) LockPath() string {
	if s.LockFile != "" {
		return s.LockFile
	}
	return filepath.Join(s.ProjectDir(), DefaultLockFile)
}

// settingFlags maps setting keys to the flag names that override them.
var settingFlags = map[string]string{
	"poetry":    "poetry",
	"pyproject": "pyproject",
	"lock_file": "lock-file",
	"log_level": "log-level",
	"debounce":  "debounce",
}

// LoadSettings resolves Settings from defaults, POETRY_AUTO_EXPORT_*
// environment variables and the given flags. Flags that are absent from the
// set, or were not changed on the command line, do not override anything.
func LoadSettings(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("poetry", defaults.Poetry)
	v.SetDefault("pyproject", defaults.Pyproject)
	v.SetDefault("lock_file", defaults.LockFile)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("debounce", defaults.Debounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range settingFlags {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Settings{}, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}
