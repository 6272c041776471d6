package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// These will be set by build flags or default to development values
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// GetVersion returns the version string, preferring compile-time version if available
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// GetCommit returns the git commit hash, preferring compile-time commit if available
func GetCommit() string {
	return injectedOr(Commit, "vcs.revision")
}

// GetBuildDate returns the build date, preferring compile-time date if available
func GetBuildDate() string {
	return injectedOr(Date, "vcs.time")
}

func injectedOr(injected, setting string) string {
	if injected != "unknown" && injected != "" {
		return injected
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == setting {
				return s.Value
			}
		}
	}
	return "unknown"
}

// GetFullVersion returns a formatted version string with commit and date
func GetFullVersion() string {
	v, commit, date := GetVersion(), GetCommit(), GetBuildDate()
	if commit == "unknown" || len(commit) <= 7 {
		return v
	}
	if date != "unknown" {
		return fmt.Sprintf("%s (%s, built %s)", v, commit[:7], date)
	}
	return fmt.Sprintf("%s (%s)", v, commit[:7])
}
