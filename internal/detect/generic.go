package detect

import (
	"context"
	"path/filepath"

	"axoproject/internal/manifest"
	"axoproject/internal/projecterr"
	"axoproject/internal/trace"
)

// GenericDetector recognises dist workspaces: a manifest that lists
// members of other ecosystems as "ecosystem:path".
type GenericDetector struct {
	env     *Env
	members *Registry
}

// NewGenericDetector creates a detector that resolves members through
// members. It may be the registry the detector itself belongs to.
func NewGenericDetector(env *Env, members *Registry) *GenericDetector {
	return &GenericDetector{env: env, members: members}
}

func (d *GenericDetector) Ecosystem() manifest.Ecosystem { return manifest.EcosystemDist }

func (d *GenericDetector) Detect(ctx context.Context, req Request) (*Workspace, bool, projecterr.LeafError) {
	span, ctx := trace.Start(ctx, trace.ScopeDetector, "dist")
	tr := trace.FromContext(ctx)
	defer span.End("")

	path, err := manifest.FindWithin(req.Dir, req.StopDir, manifest.DistFiles...)
	if err != nil {
		span.WithExtra("found", "false")
		return nil, false, projecterr.FromAsset(err)
	}
	span.WithExtra("found", "true")

	m, lerr := manifest.LoadGeneric(d.env.fileSet(), path)
	if lerr != nil {
		return nil, true, lerr
	}

	ws := &Workspace{
		Ecosystem:    manifest.EcosystemDist,
		Root:         m.Root,
		ManifestPath: path,
	}
	if m.Package != nil {
		ws.Packages = append(ws.Packages, Package{
			Name:         m.Package.Name,
			Version:      m.Package.Version,
			ManifestPath: path,
			Repository:   m.Package.Repository,
			Binaries:     m.Package.Binaries,
		})
	}

	for _, member := range m.Members {
		dir := filepath.Clean(filepath.Join(m.Root, filepath.FromSlash(member.Path)))
		if member.Ecosystem == manifest.EcosystemDist && dir == m.Root {
			// the manifest's own [package]
			continue
		}
		det, ok := d.members.Lookup(member.Ecosystem)
		if !ok {
			trace.Point(tr, trace.ScopeStep, "skip", member.String(), span.ID())
			continue
		}
		trace.Point(tr, trace.ScopeStep, "member", member.String(), span.ID())
		sub, found, lerr := det.Detect(ctx, Request{Dir: dir, StopDir: dir, Reporter: req.Reporter})
		if lerr != nil {
			return nil, true, lerr
		}
		if !found || sub == nil {
			continue
		}
		ws.Members = append(ws.Members, sub)
		ws.Packages = append(ws.Packages, sub.Packages...)
	}

	ws.Repository = SelectRepository(ws.Packages, req.reporter(d.env))
	if ws.AutoIncludes, lerr = FindAutoIncludes(m.Root); lerr != nil {
		return nil, true, lerr
	}
	return ws, true, nil
}
