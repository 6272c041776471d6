package util

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	// LockHashLabel prefixes the lock hash on the first line of a stamped file.
	LockHashLabel = "poetry.lock hash"
	// MissingLockLine replaces the hash line when no lock file exists.
	MissingLockLine = "# poetry.lock not found"
)

// headerComments follow the hash line in every stamped file.
var headerComments = []string{
	"# This file is generated by poetry-auto-export",
	`# Run "poetry-auto-export check" to verify it matches poetry.lock`,
}

// HashLine returns the first line written for a lock file with the given hash.
func HashLine(hash string) string {
	return fmt.Sprintf("# %s: %s", LockHashLabel, hash)
}

// StampHeader renders the three header lines, each terminated by a newline.
// An empty hash renders the missing lock placeholder.
func StampHeader(hash string) []byte {
	var buf bytes.Buffer
	if hash == "" {
		buf.WriteString(MissingLockLine)
	} else {
		buf.WriteString(HashLine(hash))
	}
	buf.WriteByte('\n')
	for _, line := range headerComments {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// StampRequirementsFile prepends the lock hash header to targetPath.
// The original content follows the header byte for byte. The new content is
// written to a sibling temp file first and renamed over targetPath.
func StampRequirementsFile(fsys afero.Fs, lockPath, targetPath string) error {
	info, err := fsys.Stat(targetPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, targetPath)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", targetPath, ErrExpectedFile)
	}

	original, err := afero.ReadFile(fsys, targetPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", targetPath, err)
	}

	hash, _, err := LockHash(fsys, lockPath)
	if err != nil {
		return err
	}

	header := StampHeader(hash)
	content := make([]byte, 0, len(header)+len(original))
	content = append(content, header...)
	content = append(content, original...)

	tmpPath := filepath.Join(filepath.Dir(targetPath), fmt.Sprintf(".%s.%s.tmp", filepath.Base(targetPath), uuid.NewString()))
	if err := afero.WriteFile(fsys, tmpPath, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := fsys.Rename(tmpPath, targetPath); err != nil {
		fsys.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", targetPath, err)
	}
	return nil
}
