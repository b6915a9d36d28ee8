// Package fsutil provides utility functions and constants for file system
// operations such as resolving application directories and creating them
// with consistent permissions.
package fsutil

import (
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all necessary parent directories with
// default permissions if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsurePrivateDir creates a directory and all necessary parents with
// owner-only permissions. Used for the cache database directory.
func EnsurePrivateDir(path string) error {
	return os.MkdirAll(path, DirModePrivate)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't
// exist. Useful when you want to ensure a directory exists before creating
// a file inside it.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}
