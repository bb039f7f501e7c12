package music

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrRootNotFound is returned when a scan root does not exist.
	ErrRootNotFound = errors.New("root directory not found")
	// ErrRootNotDirectory is returned when a scan root is not a directory.
	ErrRootNotDirectory = errors.New("root is not a directory")
)

// VerifyRoot checks that root exists and is a directory.
func VerifyRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("failed to stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}
	return nil
}
