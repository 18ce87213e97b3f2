package detect

import (
	"context"
	"path/filepath"
	"sort"

	"axoproject/internal/manifest"
	"axoproject/internal/projecterr"
	"axoproject/internal/trace"
)

// NpmDetector recognises npm packages and npm workspaces.
type NpmDetector struct {
	env *Env
}

func NewNpmDetector(env *Env) *NpmDetector { return &NpmDetector{env: env} }

func (d *NpmDetector) Ecosystem() manifest.Ecosystem { return manifest.EcosystemNpm }

func (d *NpmDetector) Detect(ctx context.Context, req Request) (*Workspace, bool, projecterr.LeafError) {
	span, ctx := trace.Start(ctx, trace.ScopeDetector, "npm")
	tr := trace.FromContext(ctx)
	defer span.End("")

	path, err := manifest.FindWithin(req.Dir, req.StopDir, manifest.NpmFile)
	if err != nil {
		span.WithExtra("found", "false")
		return nil, false, projecterr.FromAsset(err)
	}
	span.WithExtra("found", "true")

	fset := d.env.fileSet()
	root, lerr := manifest.LoadNpm(fset, path)
	if lerr != nil {
		return nil, true, lerr
	}
	pkgs := []Package{npmPackage(root)}

	memberPaths, lerr := npmMembers(root)
	if lerr != nil {
		return nil, true, lerr
	}
	for _, mp := range memberPaths {
		trace.Point(tr, trace.ScopeStep, "load", mp, span.ID())
		p, lerr := manifest.LoadNpm(fset, mp)
		if lerr != nil {
			return nil, true, lerr
		}
		pkgs = append(pkgs, npmPackage(p))
	}

	ws := &Workspace{
		Ecosystem:    manifest.EcosystemNpm,
		Root:         root.Root,
		ManifestPath: path,
		Packages:     pkgs,
	}
	ws.Repository = SelectRepository(pkgs, req.reporter(d.env))
	if ws.AutoIncludes, lerr = FindAutoIncludes(root.Root); lerr != nil {
		return nil, true, lerr
	}
	return ws, true, nil
}

func npmPackage(p *manifest.NpmPackage) Package {
	return Package{
		Name:         p.Name,
		Version:      p.Version,
		ManifestPath: p.Path,
		Repository:   p.Repository,
		Binaries:     p.BinNames(),
	}
}

// npmMembers expands the "workspaces" globs to member package.json paths.
func npmMembers(root *manifest.NpmPackage) ([]string, projecterr.LeafError) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range root.Workspaces {
		matches, err := filepath.Glob(filepath.Join(root.Root, filepath.FromSlash(pattern), manifest.NpmFile))
		if err != nil {
			return nil, projecterr.FromAsset(err)
		}
		for _, m := range matches {
			if !seen[m] && m != root.Path {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
