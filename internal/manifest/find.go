package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SearchError reports that none of Names exists in Start or its parents.
type SearchError struct {
	Names []string
	Start string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("couldn't find %s in %s or any parent directory", strings.Join(e.Names, " or "), e.Start)
}

func (e *SearchError) Unwrap() error { return fs.ErrNotExist }

// Find walks up from startDir and returns the first of names found.
// Names are tried in order inside each directory before moving up.
func Find(startDir string, names ...string) (string, error) {
	return FindWithin(startDir, "", names...)
}

// FindWithin is Find bounded by stopDir: the walk does not go above it.
// An empty stopDir means the filesystem root.
func FindWithin(startDir, stopDir string, names ...string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	stop := ""
	if stopDir != "" {
		if stop, err = filepath.Abs(stopDir); err != nil {
			return "", fmt.Errorf("failed to resolve stop directory: %w", err)
		}
	}
	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == stop {
			break
		}
		dir = parent
	}
	return "", &SearchError{Names: names, Start: startDir}
}
