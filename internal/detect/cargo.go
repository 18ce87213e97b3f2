package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"axoproject/internal/manifest"
	"axoproject/internal/projecterr"
	"axoproject/internal/toolcheck"
	"axoproject/internal/trace"
)

// CargoDetector recognises Cargo workspaces. Member packages come from
// `cargo metadata`, so cargo has to be installed.
type CargoDetector struct {
	env *Env
}

func NewCargoDetector(env *Env) *CargoDetector { return &CargoDetector{env: env} }

func (d *CargoDetector) Ecosystem() manifest.Ecosystem { return manifest.EcosystemCargo }

// MetadataError reports `cargo metadata` output that could not be decoded.
type MetadataError struct {
	Dir string
	Err error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to read cargo metadata for %s: %v", e.Dir, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

type cargoMetadata struct {
	WorkspaceRoot    string         `json:"workspace_root"`
	WorkspaceMembers []string       `json:"workspace_members"`
	Packages         []cargoMetaPkg `json:"packages"`
}

type cargoMetaPkg struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	ManifestPath string            `json:"manifest_path"`
	Repository   *string           `json:"repository"`
	Targets      []cargoMetaTarget `json:"targets"`
}

type cargoMetaTarget struct {
	Name string   `json:"name"`
	Kind []string `json:"kind"`
}

func (d *CargoDetector) Detect(ctx context.Context, req Request) (*Workspace, bool, projecterr.LeafError) {
	span, ctx := trace.Start(ctx, trace.ScopeDetector, "cargo")
	tr := trace.FromContext(ctx)
	defer span.End("")

	path, err := manifest.FindWithin(req.Dir, req.StopDir, manifest.CargoFile)
	if err != nil {
		span.WithExtra("found", "false")
		return nil, false, projecterr.FromAsset(err)
	}
	span.WithExtra("found", "true")
	trace.Point(tr, trace.ScopeStep, "load", path, span.ID())

	m, lerr := manifest.LoadCargo(d.env.fileSet(), path)
	if lerr != nil {
		return nil, true, lerr
	}
	if lerr := toolcheck.Require(toolcheck.Cargo, d.env.lookPath()); lerr != nil {
		return nil, true, lerr
	}

	trace.Point(tr, trace.ScopeStep, "run", "cargo metadata", span.ID())
	out, lerr := toolcheck.Output(ctx, d.env.runner(), m.Root,
		"cargo", "metadata", "--format-version", "1", "--no-deps", "--manifest-path", path)
	if lerr != nil {
		return nil, true, lerr
	}
	var meta cargoMetadata
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		return nil, true, projecterr.FromCargoMetadata(&MetadataError{Dir: m.Root, Err: err})
	}

	root := m.Root
	if meta.WorkspaceRoot != "" {
		root = meta.WorkspaceRoot
	}
	ws := &Workspace{
		Ecosystem:    manifest.EcosystemCargo,
		Root:         root,
		ManifestPath: filepath.Join(root, manifest.CargoFile),
		Packages:     cargoPackages(meta, m),
	}
	ws.Repository = SelectRepository(ws.Packages, req.reporter(d.env))
	if ws.AutoIncludes, lerr = FindAutoIncludes(root); lerr != nil {
		return nil, true, lerr
	}
	return ws, true, nil
}

// cargoPackages keeps workspace members only. A workspace-level
// repository fills in for packages without one.
func cargoPackages(meta cargoMetadata, m *manifest.CargoManifest) []Package {
	members := make(map[string]bool, len(meta.WorkspaceMembers))
	for _, id := range meta.WorkspaceMembers {
		members[id] = true
	}
	fallback := m.Repository()
	out := make([]Package, 0, len(meta.Packages))
	for _, p := range meta.Packages {
		if len(members) > 0 && !members[p.ID] {
			continue
		}
		pkg := Package{
			Name:         p.Name,
			Version:      p.Version,
			ManifestPath: p.ManifestPath,
			Repository:   fallback,
		}
		if p.Repository != nil {
			pkg.Repository = *p.Repository
		}
		for _, t := range p.Targets {
			for _, k := range t.Kind {
				if k == "bin" {
					pkg.Binaries = append(pkg.Binaries, t.Name)
				}
			}
		}
		sort.Strings(pkg.Binaries)
		out = append(out, pkg)
	}
	return out
}
