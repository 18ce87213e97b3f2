package manifest

import (
	"path/filepath"

	"github.com/BurntSushi/toml"

	"axoproject/internal/projecterr"
	"axoproject/internal/source"
)

// CargoFile is the name of a Cargo manifest.
const CargoFile = "Cargo.toml"

// CargoManifest is the part of a Cargo.toml that detection looks at.
type CargoManifest struct {
	Path      string
	Root      string
	File      *source.File
	Package   *CargoPackage   `toml:"package"`
	Workspace *CargoWorkspace `toml:"workspace"`
}

// CargoPackage is the [package] table.
type CargoPackage struct {
	Name       string `toml:"name"`
	Version    any    `toml:"version"`
	Repository any    `toml:"repository"`
	Readme     any    `toml:"readme"`
	License    any    `toml:"license"`
}

// CargoWorkspace is the [workspace] table.
type CargoWorkspace struct {
	Members []string             `toml:"members"`
	Exclude []string             `toml:"exclude"`
	Package *CargoWorkspaceShare `toml:"package"`
}

// CargoWorkspaceShare is [workspace.package], the values members may inherit.
type CargoWorkspaceShare struct {
	Version    string `toml:"version"`
	Repository string `toml:"repository"`
}

// LoadCargo reads and decodes a Cargo.toml. A syntax error keeps the
// manifest text and the error position.
func LoadCargo(fset *source.FileSet, path string) (*CargoManifest, projecterr.LeafError) {
	file, lerr := loadText(fset, path)
	if lerr != nil {
		return nil, lerr
	}
	m := &CargoManifest{}
	if _, err := toml.Decode(string(file.Content), m); err != nil {
		return nil, projecterr.EnrichCargoToml(file, err)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	m.File = file
	return m, nil
}

// IsWorkspace reports whether the manifest declares a [workspace].
func (m *CargoManifest) IsWorkspace() bool { return m.Workspace != nil }

// PackageVersion returns the package version, following
// `version.workspace = true`.
func (m *CargoManifest) PackageVersion() string {
	if m.Package == nil {
		return ""
	}
	return m.inherit(m.Package.Version, func(s *CargoWorkspaceShare) string { return s.Version })
}

// Repository returns the package repository, following
// `repository.workspace = true`. Without a [package] it is the
// workspace-wide value.
func (m *CargoManifest) Repository() string {
	if m.Package == nil {
		if m.Workspace != nil && m.Workspace.Package != nil {
			return m.Workspace.Package.Repository
		}
		return ""
	}
	return m.inherit(m.Package.Repository, func(s *CargoWorkspaceShare) string { return s.Repository })
}

func (m *CargoManifest) inherit(v any, pick func(*CargoWorkspaceShare) string) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any:
		if inherited, _ := v["workspace"].(bool); inherited && m.Workspace != nil && m.Workspace.Package != nil {
			return pick(m.Workspace.Package)
		}
	}
	return ""
}
