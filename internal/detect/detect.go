// Package detect finds the workspace a directory belongs to.
//
// One Detector per ecosystem looks for its root manifest. Detectors run in
// a fixed priority order (concurrently when allowed) and their outcomes are
// folded by projecterr.Aggregate: the first detector that found a root
// decides, otherwise every failure is reported together.
package detect

import (
	"context"

	"axoproject/internal/diag"
	"axoproject/internal/manifest"
	"axoproject/internal/projecterr"
	"axoproject/internal/source"
	"axoproject/internal/toolcheck"
)

// Package is one publishable unit of a workspace.
type Package struct {
	Name         string
	Version      string
	ManifestPath string
	Repository   string
	Binaries     []string
}

// Workspace is a detected project.
type Workspace struct {
	Ecosystem    manifest.Ecosystem
	Root         string
	ManifestPath string
	Packages     []Package
	// Repository is the workspace-wide repository value, empty when no
	// package sets one.
	Repository   string
	AutoIncludes AutoIncludes
	// Members holds the sub-workspaces of a dist workspace.
	Members []*Workspace
}

// Request says where to look. The upward search never leaves StopDir;
// an empty StopDir allows it to reach the filesystem root.
type Request struct {
	Dir     string
	StopDir string
	// Reporter receives the warnings of this run. Nil falls back to the
	// detector's Env.
	Reporter diag.Reporter
}

func (r Request) reporter(env *Env) diag.Reporter {
	if r.Reporter != nil {
		return r.Reporter
	}
	return env.reporter()
}

// Detector recognises one ecosystem.
//
// found reports whether the root manifest exists. A detector that did not
// find one returns found=false with the search failure; a detector that
// found one but could not load the workspace returns found=true and the
// error.
type Detector interface {
	Ecosystem() manifest.Ecosystem
	Detect(ctx context.Context, req Request) (ws *Workspace, found bool, err projecterr.LeafError)
}

// Env is what detectors share: loaded manifests, tool access and the sink
// for non-fatal findings.
type Env struct {
	FileSet  *source.FileSet
	Runner   toolcheck.Runner
	LookPath toolcheck.LookPathFunc
	Reporter diag.Reporter
}

func (e *Env) fileSet() *source.FileSet {
	if e == nil || e.FileSet == nil {
		return source.NewFileSet()
	}
	return e.FileSet
}

func (e *Env) runner() toolcheck.Runner {
	if e == nil || e.Runner == nil {
		return toolcheck.ExecRunner{}
	}
	return e.Runner
}

func (e *Env) lookPath() toolcheck.LookPathFunc {
	if e == nil {
		return nil
	}
	return e.LookPath
}

func (e *Env) reporter() diag.Reporter {
	if e == nil || e.Reporter == nil {
		return diag.NopReporter
	}
	return e.Reporter
}
