package util

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// LockFileExt is the extension a lock file must carry.
const LockFileExt = ".lock"

// CheckRequirementsFile reports whether reqPath was generated from the current
// contents of lockPath. A nil error means the first line of reqPath carries
// the lock file's hash.
func CheckRequirementsFile(fsys afero.Fs, lockPath, reqPath string) error {
	if !isFile(fsys, lockPath) {
		return fmt.Errorf("File not found: %s: %w", lockPath, ErrFileNotFound)
	}
	if filepath.Ext(lockPath) != LockFileExt {
		return fmt.Errorf("Invalid file type: %s: %w", lockPath, ErrInvalidLockFile)
	}
	if !isFile(fsys, reqPath) {
		return fmt.Errorf("File not found: %s: %w", reqPath, ErrFileNotFound)
	}

	hash, err := GetFileHash(fsys, lockPath)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", lockPath, err)
	}

	content, err := afero.ReadFile(fsys, reqPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", reqPath, err)
	}

	if FirstLine(content) != HashLine(hash) {
		return fmt.Errorf("%s is %w, run `poetry-auto-export export` to update it", filepath.Base(reqPath), ErrOutOfDate)
	}
	return nil
}

// FirstLine returns content up to the first newline, without a trailing
// carriage return.
func FirstLine(content []byte) string {
	line, _, _ := bytes.Cut(content, []byte{'\n'})
	return strings.TrimSuffix(string(line), "\r")
}

func isFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
