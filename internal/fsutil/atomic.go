// Package fsutil holds file helpers shared by the container and document
// writers.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arloliu/matlib/errs"
)

// WriteFileAtomic writes data to a temp file next to filename and renames it
// into place, so readers see either the old or the new file.
func WriteFileAtomic(filename string, data []byte, perm fs.FileMode) error {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmpFile, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", errs.ErrIO, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("%w: writing %s: %w", errs.ErrIO, filename, err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("%w: syncing %s: %w", errs.ErrIO, filename, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %w", errs.ErrIO, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", errs.ErrIO, tmpPath, err)
	}

	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("%w: renaming into %s: %w", errs.ErrIO, filename, err)
	}

	success = true

	return nil
}

// ReadFile reads a whole file, mapping a missing file to errs.ErrFileNotFound
// and other failures to errs.ErrIO.
func ReadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, WrapOpenError(filename, err)
	}

	return data, nil
}

// WrapOpenError classifies an error from opening or reading filename.
func WrapOpenError(filename string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", errs.ErrFileNotFound, filename)
	}

	return fmt.Errorf("%w: %w", errs.ErrIO, err)
}
