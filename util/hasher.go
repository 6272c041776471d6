package util

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/afero"
)

// HashHexLength is the length of a hex encoded lock hash.
const HashHexLength = sha1.Size * 2

// Hashes a file and returns the hash as a hex string
func GetFileHash(fsys afero.Fs, path string) (hash string, err error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA1 hash of data from an io.Reader.
// It returns the hash as a lowercase hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// LockHash hashes the lock file at path. A missing lock file is not an error:
// found is false and hash is empty.
func LockHash(fsys afero.Fs, path string) (hash string, found bool, err error) {
	hash, err = GetFileHash(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hash, true, nil
}
