package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axoproject/internal/diag"
	"axoproject/internal/projecterr"
	"axoproject/internal/source"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, filepath.Join(root, CargoFile), "[package]\nname = \"x\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindWithin(nested, root, CargoFile)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindPrefersEarlierName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dist.toml"), "")
	want := writeFile(t, filepath.Join(root, "dist-workspace.toml"), "")

	got, err := FindWithin(root, root, DistFiles...)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindMissStopsAtBoundary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, CargoFile), "")
	inner := filepath.Join(root, "inner")
	require.NoError(t, os.MkdirAll(inner, 0o755))

	_, err := FindWithin(inner, inner, CargoFile)
	var se *SearchError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), CargoFile)
}

func TestLoadCargoWorkspaceInheritance(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, CargoFile), `
[package]
name = "demo"
version.workspace = true
repository.workspace = true

[workspace]
members = ["crates/*"]

[workspace.package]
version = "1.2.3"
repository = "https://github.com/axo/demo"
`)
	m, err := LoadCargo(source.NewFileSet(), path)
	require.Nil(t, err)
	assert.True(t, m.IsWorkspace())
	assert.Equal(t, "demo", m.Package.Name)
	assert.Equal(t, "1.2.3", m.PackageVersion())
	assert.Equal(t, "https://github.com/axo/demo", m.Repository())
	assert.Equal(t, root, m.Root)
}

func TestLoadCargoSyntaxError(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), CargoFile), "[package\nname = \"x\"\n")
	_, err := LoadCargo(source.NewFileSet(), path)
	require.NotNil(t, err)

	var pe *projecterr.ParseCargoTomlError
	require.ErrorAs(t, err, &pe)
	d := projecterr.Render(err)
	assert.Equal(t, diag.PrjParseCargoToml, d.Code)
	if d.Source != nil {
		assert.True(t, d.Source.Span.Within(d.Source.File.Size()))
	}
}

func TestLoadCargoMissingFile(t *testing.T) {
	_, err := LoadCargo(source.NewFileSet(), filepath.Join(t.TempDir(), CargoFile))
	var ae *projecterr.AssetError
	require.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadRejectsInvalidUTF8(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), CargoFile), "name = \"\xff\"\n")
	_, err := LoadCargo(source.NewFileSet(), path)
	var ue *projecterr.UTF8Error
	require.ErrorAs(t, err, &ue)
	var enc *EncodingError
	require.ErrorAs(t, err, &enc)
	assert.Equal(t, 8, enc.Offset)
}

func TestLoadNpm(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, NpmFile), `{
  "name": "@axo/tool",
  "version": "0.4.0",
  "repository": {"type": "git", "url": "git+https://github.com/axo/tool.git"},
  "bin": "./cli.js",
  "workspaces": {"packages": ["pkgs/*"]}
}`)
	p, err := LoadNpm(source.NewFileSet(), path)
	require.Nil(t, err)
	assert.Equal(t, "@axo/tool", p.Name)
	assert.Equal(t, "git+https://github.com/axo/tool.git", p.Repository)
	assert.Equal(t, map[string]string{"tool": "./cli.js"}, p.Bins)
	assert.Equal(t, []string{"pkgs/*"}, p.Workspaces)
}

func TestLoadNpmFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, err projecterr.LeafError)
	}{
		{
			name:    "nameless",
			content: `{"version": "1.0.0"}`,
			check: func(t *testing.T, err projecterr.LeafError) {
				var ne *projecterr.NamelessPackageError
				require.ErrorAs(t, err, &ne)
				assert.Equal(t, "is it a workspace? We don't support that yet.", projecterr.Render(err).Help)
			},
		},
		{
			name:    "bad bin",
			content: `{"name": "x", "bin": 42}`,
			check: func(t *testing.T, err projecterr.LeafError) {
				var be *projecterr.BuildInfoParseError
				require.ErrorAs(t, err, &be)
				assert.Contains(t, be.Error(), "Failed to read the binaries")
			},
		},
		{
			name:    "not json",
			content: `{"name": `,
			check: func(t *testing.T, err projecterr.LeafError) {
				var ae *projecterr.AssetError
				require.ErrorAs(t, err, &ae)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), NpmFile), tt.content)
			_, err := LoadNpm(source.NewFileSet(), path)
			require.NotNil(t, err)
			tt.check(t, err)
		})
	}
}

func TestParseMembersScenarios(t *testing.T) {
	_, err := ParseMembers([]string{"dist:pkgA", "pkgB"})
	var np *projecterr.NoPrefixError
	require.ErrorAs(t, err, &np)
	assert.Equal(t, "pkgB", np.Val)

	_, err = ParseMembers([]string{"dist:pkgA", "java:pkgC"})
	var up *projecterr.UnknownPrefixError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, "java", up.Prefix)
	assert.Equal(t, "java:pkgC", up.Val)

	members, err := ParseMembers([]string{"cargo:.", "npm:web", "dist:"})
	require.Nil(t, err)
	assert.Equal(t, []Member{
		{Ecosystem: EcosystemCargo, Path: "."},
		{Ecosystem: EcosystemNpm, Path: "web"},
		{Ecosystem: EcosystemDist, Path: "."},
	}, members)
}

func TestLoadGenericPointsAtBadMember(t *testing.T) {
	text := "[workspace]\nmembers = [\"dist:pkgA\", \"java:pkgC\"]\n"
	path := writeFile(t, filepath.Join(t.TempDir(), "dist-workspace.toml"), text)

	_, err := LoadGeneric(source.NewFileSet(), path)
	var ge *projecterr.GenericManifestError
	require.ErrorAs(t, err, &ge)

	d := projecterr.Render(err)
	assert.Equal(t, diag.ManUnknownPrefix, d.Code)
	require.NotNil(t, d.Source)
	assert.Equal(t, "java:pkgC", d.Source.File.Slice(d.Source.Span))
}

func TestLoadGenericLocatesMissingPrefix(t *testing.T) {
	text := "[workspace]\nmembers = ['cargo:.', 'pkgB']\n"
	path := writeFile(t, filepath.Join(t.TempDir(), "dist.toml"), text)

	_, err := LoadGeneric(source.NewFileSet(), path)
	var np *projecterr.NoPrefixError
	require.ErrorAs(t, err, &np)
	require.NotNil(t, np.Location)
	assert.Equal(t, "pkgB", np.Location.Source.Slice(np.Location.Span))

	_, perr := ParseMember("pkgB")
	require.ErrorAs(t, perr, &np)
	assert.Nil(t, np.Location)
}

func TestLoadGeneric(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "dist.toml"), `
[workspace]
members = ["cargo:crates/a", "npm:web"]

[package]
name = "bundle"
version = "0.1.0"
repository = "https://github.com/axo/bundle"
`)
	m, err := LoadGeneric(source.NewFileSet(), path)
	require.Nil(t, err)
	require.Len(t, m.Members, 2)
	assert.Equal(t, "cargo:crates/a", m.Members[0].String())
	require.NotNil(t, m.Package)
	assert.Equal(t, "bundle", m.Package.Name)
}
