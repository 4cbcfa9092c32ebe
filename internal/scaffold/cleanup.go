package scaffold

import (
	"errors"
	"fmt"
	"os"

	"github.com/stencilkit/stencil/internal/output"
)

// RemovalSet accumulates absolute paths queued for deletion after generation:
// staged built-in templates, downloaded archives, extraction directories, and
// destinations of skipped optional files.
type RemovalSet struct {
	paths []string
}

// Add queues a path for removal. Duplicates are harmless; cleanup tolerates
// paths that no longer exist.
func (s *RemovalSet) Add(path string) {
	s.paths = append(s.paths, path)
}

// Paths returns the queued paths in registration order.
func (s *RemovalSet) Paths() []string {
	return s.paths
}

// Clean deletes every queued path: files directly, directories recursively.
// An empty set is a no-op. Failures are collected and returned so the caller
// can report them, but they never reverse completed generation.
func (s *RemovalSet) Clean() error {
	if len(s.paths) == 0 {
		return nil
	}
	output.Verbose("Cleaning up temporary files")

	var errs []error
	for _, path := range s.paths {
		info, err := os.Lstat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		if info.IsDir() {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
