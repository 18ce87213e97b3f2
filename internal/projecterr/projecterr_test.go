package projecterr

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axoproject/internal/diag"
	"axoproject/internal/source"
	"axoproject/internal/testkit"
)

func foreignWrappers(err error) map[string]LeafError {
	return map[string]LeafError{
		"asset":          FromAsset(err),
		"process":        FromProcess(err),
		"cargo-metadata": FromCargoMetadata(err),
		"changelog":      FromChangelogParse(err),
		"utf8":           FromUTF8(err),
		"url":            FromURLParse(err),
	}
}

func TestTransparentWrappersKeepMessageAndChain(t *testing.T) {
	root := fs.ErrNotExist
	foreign := fmt.Errorf("open Cargo.toml: %w", root)

	for name, w := range foreignWrappers(foreign) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, foreign.Error(), w.Error())
			assert.Same(t, foreign, errors.Unwrap(w))
			assert.ErrorIs(t, w, fs.ErrNotExist)

			d := Render(w)
			assert.Equal(t, foreign.Error(), d.Message)
			require.NotNil(t, d.Cause)
			assert.Equal(t, root.Error(), d.Cause.Message)
			assert.Equal(t, diag.SevError, d.Severity)
			assert.Equal(t, w.Code(), d.Code)
		})
	}
}

func TestTransparentWrapperDelegatesToDiagnoser(t *testing.T) {
	inner := &RepoParseError{Repo: "nope"}
	w := FromURLParse(inner)
	assert.Equal(t, inner.Diagnostic(), w.Diagnostic())
	assert.Equal(t, inner.Error(), w.Error())

	var rp *RepoParseError
	require.ErrorAs(t, w, &rp)
	assert.Same(t, inner, rp)
}

func TestFromNilAndIdempotentWrap(t *testing.T) {
	assert.Nil(t, FromAsset(nil))
	assert.Nil(t, FromProcess(nil))
	assert.Nil(t, FromCargoMetadata(nil))
	assert.Nil(t, FromChangelogParse(nil))
	assert.Nil(t, FromUTF8(nil))
	assert.Nil(t, FromURLParse(nil))
	assert.Nil(t, FromGeneric(nil))

	a := FromAsset(errors.New("boom"))
	assert.Same(t, a, FromAsset(a))
}

func TestFromNilIsUntypedNil(t *testing.T) {
	for name, leaf := range foreignWrappers(nil) {
		t.Run(name, func(t *testing.T) {
			assert.True(t, leaf == nil)
			assert.False(t, IsFatal(leaf))
			assert.Equal(t, diag.Diagnostic{}, Render(leaf))
		})
	}
	var generic LeafError = FromGeneric(nil)
	assert.True(t, generic == nil)
	assert.False(t, IsFatal(generic))
}

func TestForeignChainsKeepForwardingCode(t *testing.T) {
	uerr := &url.Error{Op: "parse", URL: "https://[::1", Err: errors.New("missing ']' in host")}
	d := Render(FromURLParse(uerr))
	require.NoError(t, testkit.CheckDiagnostic(d))
	require.NotNil(t, d.Cause)
	assert.Equal(t, diag.FwdURLParse, d.Code)
	assert.Equal(t, diag.FwdURLParse, d.Cause.Code)

	nested := fmt.Errorf("outer: %w", fmt.Errorf("middle: %w", errors.New("inner")))
	d = Render(nested)
	require.NoError(t, testkit.CheckDiagnostic(d))
	for _, link := range d.Chain() {
		assert.Equal(t, diag.FwdInfo, link.Code)
	}

	inner := &RepoParseError{Repo: "nope"}
	d = Render(fmt.Errorf("wrapped: %w", inner))
	require.NotNil(t, d.Cause)
	assert.Equal(t, inner.Diagnostic(), *d.Cause)
}

func allLeaves() []LeafError {
	return []LeafError{
		FromAsset(errors.New("io")),
		FromProcess(errors.New("exec")),
		FromCargoMetadata(errors.New("meta")),
		FromChangelogParse(errors.New("md")),
		FromUTF8(errors.New("utf8")),
		FromURLParse(errors.New("url")),
		FromGeneric(&NoPrefixError{Val: "pkgB"}),
		FromGeneric(&UnknownPrefixError{Prefix: "java", Val: "java:pkgC"}),
		&ParseCargoTomlError{Details: errors.New("bad toml")},
		&NamelessPackageError{Manifest: "package.json"},
		&BuildInfoParseError{ManifestPath: "package.json", Err: errors.New("bin")},
		&InconsistentRepositoryKeyError{File1: "a/Cargo.toml", URL1: "u1", File2: "b/Cargo.toml", URL2: "u2"},
		&AutoIncludeSearchError{Dir: "/tmp/x", Err: fs.ErrPermission},
		&UnknownRepoStyleError{URL: "file:///x"},
		&RepoParseError{Repo: "nope"},
		&UnsupportedRepoHostError{URL: "https://gitlab.com/o/r"},
		&ChangelogVersionNotFoundError{Path: "CHANGELOG.md", Version: "2.0.0"},
		CargoMissing(),
	}
}

func TestOnlyRepositoryInconsistencyIsAWarning(t *testing.T) {
	for _, leaf := range allLeaves() {
		d := Render(leaf)
		if _, ok := leaf.(*InconsistentRepositoryKeyError); ok {
			assert.Equal(t, diag.SevWarning, d.Severity)
			assert.False(t, IsFatal(leaf))
			continue
		}
		assert.Equal(t, diag.SevError, d.Severity, "%T", leaf)
		assert.True(t, IsFatal(leaf), "%T", leaf)
	}
}

func TestRenderingIsIdempotent(t *testing.T) {
	for _, leaf := range allLeaves() {
		assert.Equal(t, Render(leaf), Render(leaf), "%T", leaf)
	}
	missing := &ProjectMissingError{Sources: allLeaves()}
	assert.Equal(t, Render(missing), Render(missing))
}

func TestMemberErrorsListEveryPrefix(t *testing.T) {
	inputs := []string{"", "pkgB", "java:pkgC", ":", "dist", "a:b:c", "ünïcode"}
	for _, in := range inputs {
		errs := []GenericManifestParseError{
			&NoPrefixError{Val: in},
			&UnknownPrefixError{Prefix: "zz", Val: in},
		}
		for _, e := range errs {
			msg := Render(e).Message
			for _, p := range []string{"dist", "cargo", "npm"} {
				assert.Contains(t, msg, p)
			}
			assert.Equal(t, msg, Render(FromGeneric(e)).Message)
			assert.Equal(t, e.Code(), FromGeneric(e).Code())
		}
	}
}

func TestNoPrefixMessage(t *testing.T) {
	e := &NoPrefixError{Val: "pkgB"}
	assert.Equal(t,
		"dist workspace member pkgB is missing prefix\nmembers should be formatted like \"dist:some/path\"\npossible prefixes are: dist, cargo, npm",
		e.Error())
	assert.Equal(t, diag.ManNoPrefix, Render(e).Code)
}

func TestUnknownPrefixMessage(t *testing.T) {
	e := &UnknownPrefixError{Prefix: "java", Val: "java:pkgC"}
	assert.Equal(t,
		"dist workspace member java:pkgC has unknown java prefix\npossible prefixes are: dist, cargo, npm",
		e.Error())
}

func TestMemberLocationSnippet(t *testing.T) {
	f := source.NewVirtualFile("dist-workspace.toml", []byte(`members = ["pkgB"]`))
	e := &NoPrefixError{Val: "pkgB", Location: &MemberLocation{Source: f, Span: source.Span{Start: 12, End: 99}}}
	d := Render(e)
	require.NotNil(t, d.Source)
	assert.True(t, d.Source.Span.Within(f.Size()))
}

func TestEnrichCargoTomlSpanWithinSource(t *testing.T) {
	text := "[package]\nname = \"demo\"\nversion = = 1\n"
	var v map[string]any
	_, terr := toml.Decode(text, &v)
	require.Error(t, terr)

	f := source.NewVirtualFile("Cargo.toml", []byte(text))
	e := EnrichCargoToml(f, terr)
	require.NotNil(t, e)
	require.NotNil(t, e.Span)
	assert.True(t, e.Span.Within(f.Size()))

	d := Render(e)
	assert.Equal(t, "couldn't read Cargo.toml", d.Message)
	require.NotNil(t, d.Source)
	assert.True(t, d.Source.Span.Within(f.Size()))
	assert.NotEmpty(t, d.Source.Label)
	assert.NotContains(t, d.Source.Label, "toml: line")
	require.NotNil(t, d.Cause)
	require.NoError(t, testkit.CheckDiagnostic(d))

	var perr toml.ParseError
	assert.ErrorAs(t, e, &perr)
}

func TestTomlLabelStripsLinePrefix(t *testing.T) {
	cases := map[string]string{
		"plain":    "version = = 1\n",
		"last key": "[package]\nname = \"demo\"\nedition = 2021x\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			var v map[string]any
			_, terr := toml.Decode(text, &v)
			require.Error(t, terr)

			label := tomlLabel(terr)
			assert.NotEmpty(t, label)
			assert.False(t, strings.HasPrefix(label, "toml:"), label)
			assert.True(t, strings.HasSuffix(terr.Error(), label), label)
		})
	}
	assert.Empty(t, tomlLabel(errors.New("not toml")))
}

func TestEnrichCargoTomlWithoutPosition(t *testing.T) {
	f := source.NewVirtualFile("Cargo.toml", []byte("x"))
	e := EnrichCargoToml(f, errors.New("plain"))
	require.NotNil(t, e)
	assert.Nil(t, e.Span)
	assert.Nil(t, Render(e).Source)
	assert.Nil(t, EnrichCargoToml(f, nil))
}

func TestCargoToml_OutOfRangeSpanIsClamped(t *testing.T) {
	f := source.NewVirtualFile("Cargo.toml", []byte("abc"))
	sp := source.Span{Start: 2, End: 50}
	e := &ParseCargoTomlError{Source: f, Span: &sp, Details: errors.New("x")}
	d := Render(e)
	require.NotNil(t, d.Source)
	assert.Equal(t, uint32(3), d.Source.Span.End)
}

func TestCargoMissingText(t *testing.T) {
	d := Render(CargoMissing())
	assert.Equal(t, "Your app has a Cargo.toml, but you don't appear to have cargo installed.", d.Message)
	assert.Equal(t, "Is cargo in your PATH? You can install cargo via: https://rustup.rs", d.Help)
	assert.Equal(t, diag.PrjRequiredToolMissing, d.Code)
}

func TestUnsupportedHostHelp(t *testing.T) {
	d := Render(&UnsupportedRepoHostError{URL: "https://gitlab.com/o/r"})
	assert.Equal(t, "Only GitHub URLs are supported at the moment.", d.Help)

	d = Render(&UnsupportedRepoHostError{URL: "https://x.org/o/r", Hosts: []string{"github.com", "codeberg.org"}})
	assert.Contains(t, d.Help, "codeberg.org")
}

func TestChangelogVersionNotFound(t *testing.T) {
	e := &ChangelogVersionNotFoundError{Path: "CHANGELOG.md", Version: "2.0.0"}
	d := Render(e)
	assert.Contains(t, d.Message, "2.0.0")
	assert.Contains(t, d.Message, "CHANGELOG.md")
	assert.Equal(t, diag.SevError, d.Severity)
}

func TestInconsistentRepositoryKeyMessage(t *testing.T) {
	e := &InconsistentRepositoryKeyError{File1: "Cargo.toml", URL1: "https://github.com/a/b", File2: "x/Cargo.toml", URL2: "https://github.com/c/d"}
	assert.Equal(t,
		"your workspace has inconsistent values for 'repository', refusing to select one:\n  Cargo.toml:\n    https://github.com/a/b\n  x/Cargo.toml:\n    https://github.com/c/d",
		e.Error())
}

func TestLeafCausesAreChained(t *testing.T) {
	e := &AutoIncludeSearchError{Dir: "/srv", Err: fs.ErrPermission}
	assert.ErrorIs(t, e, fs.ErrPermission)
	d := Render(e)
	assert.Equal(t, "couldn't search for files in\n/srv", d.Message)
	require.NotNil(t, d.Cause)
	assert.Equal(t, fs.ErrPermission.Error(), d.Cause.Message)
	assert.Len(t, d.Chain(), 2)
}

func TestRenderForeignAndNil(t *testing.T) {
	assert.Equal(t, diag.Diagnostic{}, Render(nil))
	assert.False(t, IsFatal(nil))

	d := Render(errors.New("plain"))
	assert.Equal(t, diag.FwdInfo, d.Code)
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Nil(t, d.Cause)
}
