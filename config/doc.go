// Package config turns project and tool configuration into explicit values.
//
// Export jobs live in the project's pyproject.toml under
// [tool.poetry-auto-export]. Keys directly under the section form one job and
// every table of the [[tool.poetry-auto-export.exports]] array forms another;
// the top-level job always comes first. ParseJobs distinguishes an absent or
// empty section (no jobs) from a malformed one (an error).
//
// Tool settings such as the poetry binary and file locations are loaded by
// LoadSettings from defaults, POETRY_AUTO_EXPORT_* environment variables and
// command line flags, in increasing order of precedence.
package config
