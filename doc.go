// Package main provides the poetry-auto-export command-line interface.
//
// poetry-auto-export keeps requirements files generated by "poetry export" in
// sync with poetry.lock. Export jobs are read from [tool.poetry-auto-export]
// in pyproject.toml, and every generated file is stamped with the SHA1 hash of
// the lock file so stale files can be detected later.
//
// The main binary supports multiple subcommands:
//   - run: Run a poetry command and export after it changes poetry.lock
//   - export: Export every configured job now
//   - watch: Export whenever poetry.lock changes
//   - check: Check generated files against poetry.lock
//   - jobs: Show the configured export jobs
//
// The standalone cmd/check-requirements binary performs the check without
// any configuration, for use in CI and pre-commit hooks.
package main
