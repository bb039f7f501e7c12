package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/contre95/musicrescue/src/features/rescuing"
)

// FileOrganizer is the infrastructure implementation of the rescuing.FileOrganizer interface.
type FileOrganizer struct {
	dirMode os.FileMode
}

// NewFileOrganizer creates a new file organizer implementation.
func NewFileOrganizer() *FileOrganizer {
	return &FileOrganizer{dirMode: 0755}
}

// EnsureDir creates dir and any missing parents.
func (o *FileOrganizer) EnsureDir(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, o.dirMode); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Exists reports whether path is present, without following a final symlink.
func (o *FileOrganizer) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CopyFile copies src to dst. The destination is created exclusively so an
// existing file is never truncated.
func (o *FileOrganizer) CopyFile(ctx context.Context, src, dst string) error {
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, sourceFileStat.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", rescuing.ErrDestinationExists, dst)
		}
		return err
	}
	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return err
	}
	return destination.Close()
}
