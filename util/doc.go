// Package util provides the file-level building blocks of poetry-auto-export.
//
// This package hashes lock files, stamps generated requirements files with the
// lock file hash, and checks previously stamped files for staleness. All file
// access goes through an afero.Fs so callers can swap the real filesystem for
// an in-memory one.
//
// Key Components:
//
// Hashing:
//   - SHA1 content hashes of raw lock file bytes, hex encoded
//   - GetHash for any io.Reader, GetFileHash for a path
//
// Stamping:
//   - StampRequirementsFile prepends a three line comment header to a file
//     produced by "poetry export", leaving the original content untouched
//   - The rewrite is fully buffered and lands through a rename of a sibling
//     temp file
//
// Checking:
//   - CheckRequirementsFile recomputes the lock hash and compares it with the
//     first line of a requirements file
//   - Every failure is a named sentinel error usable with errors.Is
package util
