package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File errors
	ErrFileNotFound = errors.New("missing or not a regular file")
	ErrExpectedFile = errors.New("expected file, got directory")

	// Lock file errors
	ErrInvalidLockFile = errors.New("expected " + LockFileExt + " file")

	// Staleness errors
	ErrOutOfDate = errors.New("out of date")
)
