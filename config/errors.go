package config

import "errors"

// Sentinel errors for package config.
var (
	ErrPyprojectNotFound = errors.New("pyproject.toml not found")
	ErrInvalidPyproject  = errors.New("invalid pyproject.toml")

	// Section shape errors
	ErrInvalidSection = errors.New("section must be a table")
	ErrInvalidExports = errors.New("exports must be an array of tables")

	// Job errors
	ErrMissingOutput = errors.New("output is required")
	ErrInvalidOutput = errors.New("output must be a non-empty string")
	ErrInvalidOption = errors.New("invalid option value")
)
