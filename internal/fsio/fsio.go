// Package fsio provides the file access the pipeline relies on: whole
// file reads and all-or-nothing writes. Writers buffer fully in memory
// and replace the target atomically, so an aborted run never leaves a
// partially written fragment or aggregate file behind.
package fsio

import (
	"os"
	"path/filepath"

	"github.com/ariel-frischer/ronlog/internal/errors"
)

// ReadFile returns the full contents of the file at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &errors.IoError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// WriteFileAtomic writes data to path through a temporary file in the
// same directory followed by a rename. On any failure the temporary file
// is removed and the previous target, if any, is untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &errors.IoError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &errors.IoError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &errors.IoError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &errors.IoError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
