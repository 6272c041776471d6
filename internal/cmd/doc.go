// Package cmd provides the command-line interface implementation for
// poetry-auto-export.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, persistent settings flags
//   - run: Run a poetry command and export after lock-changing commands
//   - export: Run every configured export now
//   - watch: Re-run the exports whenever poetry.lock changes
//   - check: Verify generated requirements files against poetry.lock
//   - jobs: Show the export jobs configured in pyproject.toml
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. CheckMain backs the standalone
// check-requirements binary.
package cmd
