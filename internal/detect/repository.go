package detect

import (
	"axoproject/internal/diag"
	"axoproject/internal/projecterr"
	"axoproject/internal/repourl"
)

// SelectRepository returns the first repository value among pkgs. Every
// package that disagrees with it is reported to r as a warning; the
// first value is kept either way.
func SelectRepository(pkgs []Package, r diag.Reporter) string {
	var first *Package
	reported := map[string]bool{}
	for i := range pkgs {
		p := &pkgs[i]
		if p.Repository == "" {
			continue
		}
		if first == nil {
			first = p
			continue
		}
		key := repourl.Normalize(p.Repository)
		if key == repourl.Normalize(first.Repository) || reported[key] {
			continue
		}
		reported[key] = true
		if r != nil {
			r.Report(projecterr.Render(&projecterr.InconsistentRepositoryKeyError{
				File1: first.ManifestPath,
				URL1:  first.Repository,
				File2: p.ManifestPath,
				URL2:  p.Repository,
			}))
		}
	}
	if first == nil {
		return ""
	}
	return first.Repository
}

// Repo parses the workspace repository. It returns nil and no error when
// the workspace has none.
func (w *Workspace) Repo(opts repourl.Options) (*repourl.Repo, projecterr.LeafError) {
	if w == nil || w.Repository == "" {
		return nil, nil
	}
	repo, err := repourl.Parse(w.Repository, opts)
	if err != nil {
		return nil, err
	}
	return &repo, nil
}
