package detect

import (
	"os"
	"path/filepath"
	"strings"

	"axoproject/internal/projecterr"
)

// AutoIncludes are the well-known files shipped alongside a release.
type AutoIncludes struct {
	Readme    string
	Changelog string
	Licenses  []string
}

// FindAutoIncludes lists dir once and picks the README, the changelog and
// every license file. Names match case-insensitively by prefix.
func FindAutoIncludes(dir string) (AutoIncludes, projecterr.LeafError) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return AutoIncludes{}, &projecterr.AutoIncludeSearchError{Dir: dir, Err: err}
	}
	var out AutoIncludes
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		path := filepath.Join(dir, name)
		switch {
		case strings.HasPrefix(lower, "readme"):
			if out.Readme == "" {
				out.Readme = path
			}
		case strings.HasPrefix(lower, "changelog"), strings.HasPrefix(lower, "releases"):
			if out.Changelog == "" {
				out.Changelog = path
			}
		case strings.HasPrefix(lower, "license"), strings.HasPrefix(lower, "licence"),
			strings.HasPrefix(lower, "unlicense"), strings.HasPrefix(lower, "copying"):
			out.Licenses = append(out.Licenses, path)
		}
	}
	return out, nil
}
