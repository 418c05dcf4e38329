package version

import "runtime"

// Build information. Populated at build-time via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information as log or metric labels
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}

// LogFields flattens Info into slog key/value pairs
func LogFields() []any {
	info := Info()
	return []any{
		"version", info["version"],
		"git_commit", info["git_commit"],
		"build_date", info["build_date"],
		"go_version", info["go_version"],
	}
}
