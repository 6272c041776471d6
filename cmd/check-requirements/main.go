// Command check-requirements verifies that a requirements file generated by
// poetry-auto-export still matches poetry.lock.
//
// Usage:
//
//	check-requirements [LOCK_PATH] [REQUIREMENTS_PATH]
package main

import (
	"os"

	"github.com/dendrascience/poetry-auto-export/internal/cmd"
)

func main() {
	os.Exit(cmd.CheckMain(os.Args[1:], os.Stdout, os.Stderr))
}
