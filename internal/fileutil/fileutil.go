package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile is a temp file in the destination directory that replaces the
// destination on Commit. Readers never observe a partially written file.
type AtomicFile struct {
	*os.File
	dest string
	perm os.FileMode
	done bool
}

// CreateAtomic opens a temp file next to dest. Callers must call Commit or
// Abort; Abort after Commit is a no-op, so `defer f.Abort()` is safe.
func CreateAtomic(dest string, perm os.FileMode) (*AtomicFile, error) {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &AtomicFile{File: tmp, dest: dest, perm: perm}, nil
}

// Commit flushes the temp file and renames it over the destination.
func (f *AtomicFile) Commit() error {
	if f.done {
		return errors.New("atomic file already finished")
	}
	f.done = true
	tmpName := f.Name()
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, f.perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.dest); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", f.dest, err)
	}
	return nil
}

// Abort discards the temp file.
func (f *AtomicFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	_ = f.Close()
	if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to dest through a temp file and rename,
// creating parent directories as needed.
func WriteFileAtomic(dest string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(dest), err)
	}
	f, err := CreateAtomic(dest, perm)
	if err != nil {
		return err
	}
	defer f.Abort() //nolint:errcheck
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return f.Commit()
}
