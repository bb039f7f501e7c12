package rescuing

import (
	"context"
	"errors"
)

// ErrDestinationExists is returned by CopyFile when dst is already on disk.
var ErrDestinationExists = errors.New("destination already exists")

// FileOrganizer performs the filesystem side of a rescue.
type FileOrganizer interface {
	// EnsureDir creates dir and its parents.
	EnsureDir(ctx context.Context, dir string) error
	// Exists reports whether something is already present at path.
	Exists(ctx context.Context, path string) (bool, error)
	// CopyFile copies src to dst without ever overwriting dst.
	CopyFile(ctx context.Context, src, dst string) error
}
