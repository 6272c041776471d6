// Package autoexport keeps requirements files in sync with poetry.lock.
//
// After a poetry command that rewrites the lock file (lock, update, add,
// remove) exits successfully, the Plugin runs every export job configured in
// pyproject.toml: it formats the job into "poetry export" arguments, invokes
// the Exporter, and stamps the produced file with the lock file hash so the
// file can later be checked for staleness.
//
// Jobs run in order and the first failure stops the remaining ones.
//
// Watch offers the same hook for long running sessions by re-running the
// exports whenever the lock file changes on disk.
package autoexport
