package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"axoproject/internal/projecterr"
	"axoproject/internal/source"
)

// NpmFile is the name of an npm manifest.
const NpmFile = "package.json"

// NpmPackage is the part of a package.json that detection looks at.
type NpmPackage struct {
	Path       string
	Root       string
	File       *source.File
	Name       string
	Version    string
	Repository string
	Workspaces []string
	// Bins maps binary names to script paths.
	Bins map[string]string
}

type rawNpmPackage struct {
	Name       *string         `json:"name"`
	Version    string          `json:"version"`
	Repository json.RawMessage `json:"repository"`
	Bin        json.RawMessage `json:"bin"`
	Workspaces json.RawMessage `json:"workspaces"`
}

// LoadNpm reads and decodes a package.json.
func LoadNpm(fset *source.FileSet, path string) (*NpmPackage, projecterr.LeafError) {
	file, lerr := loadText(fset, path)
	if lerr != nil {
		return nil, lerr
	}
	var raw rawNpmPackage
	if err := json.Unmarshal(file.Content, &raw); err != nil {
		return nil, projecterr.FromAsset(fmt.Errorf("failed to parse %s: %w", path, err))
	}
	if raw.Name == nil || *raw.Name == "" {
		return nil, &projecterr.NamelessPackageError{Manifest: path}
	}
	bins, err := decodeBins(*raw.Name, raw.Bin)
	if err != nil {
		return nil, &projecterr.BuildInfoParseError{ManifestPath: path, Err: err}
	}
	return &NpmPackage{
		Path:       path,
		Root:       filepath.Dir(path),
		File:       file,
		Name:       *raw.Name,
		Version:    raw.Version,
		Repository: decodeRepository(raw.Repository),
		Workspaces: decodeWorkspaces(raw.Workspaces),
		Bins:       bins,
	}, nil
}

// BinNames returns the binary names in sorted order.
func (p *NpmPackage) BinNames() []string {
	names := make([]string, 0, len(p.Bins))
	for n := range p.Bins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// decodeBins accepts the string form (binary named after the package,
// scope dropped) and the object form.
func decodeBins(pkgName string, raw json.RawMessage) (map[string]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return map[string]string{unscoped(pkgName): single}, nil
	}
	var many map[string]string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, fmt.Errorf("\"bin\" must be a string or an object of strings: %w", err)
	}
	return many, nil
}

func unscoped(name string) string {
	if strings.HasPrefix(name, "@") {
		if _, rest, ok := strings.Cut(name, "/"); ok {
			return rest
		}
	}
	return name
}

// decodeRepository accepts "url" and {"type": "git", "url": "url"}.
func decodeRepository(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}

// decodeWorkspaces accepts ["a", "b"] and {"packages": ["a", "b"]}.
func decodeWorkspaces(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Packages
	}
	return nil
}
