package projecterr

import (
	"fmt"
	"strings"

	"axoproject/internal/diag"
)

// LeafError is a single classified failure. The set of implementations is
// closed to this package; detectors that are not enabled simply never
// construct their variants.
type LeafError interface {
	error
	Diagnoser
	Code() diag.Code
	leafError()
}

// NamelessPackageError reports a package.json without "name".
type NamelessPackageError struct {
	Manifest string
}

func (e *NamelessPackageError) Error() string {
	return fmt.Sprintf("your package doesn't have a name:\n%s", e.Manifest)
}

func (e *NamelessPackageError) Code() diag.Code { return diag.PrjNamelessPackage }

func (e *NamelessPackageError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Error()).
		WithHelp("is it a workspace? We don't support that yet.")
}

func (*NamelessPackageError) leafError() {}

// BuildInfoParseError reports an unreadable "bin" section of a package.json.
type BuildInfoParseError struct {
	ManifestPath string
	Err          error
}

func (e *BuildInfoParseError) message() string {
	return fmt.Sprintf("Failed to read the binaries from your package.json:\n%s", e.ManifestPath)
}

func (e *BuildInfoParseError) Error() string { return joinCause(e.message(), e.Err) }

func (e *BuildInfoParseError) Unwrap() error { return e.Err }

func (e *BuildInfoParseError) Code() diag.Code { return diag.PrjBuildInfoParse }

func (e *BuildInfoParseError) Diagnostic() diag.Diagnostic {
	return withCause(diag.NewError(e.Code(), e.message()), e.Err)
}

func (*BuildInfoParseError) leafError() {}

// InconsistentRepositoryKeyError reports two manifests of one workspace
// disagreeing on "repository". It is the only warning-level leaf: detection
// goes on with one of the values.
type InconsistentRepositoryKeyError struct {
	File1 string
	URL1  string
	File2 string
	URL2  string
}

func (e *InconsistentRepositoryKeyError) Error() string {
	return fmt.Sprintf("your workspace has inconsistent values for 'repository', refusing to select one:\n  %s:\n    %s\n  %s:\n    %s",
		e.File1, e.URL1, e.File2, e.URL2)
}

func (e *InconsistentRepositoryKeyError) Code() diag.Code { return diag.PrjInconsistentRepositoryKey }

func (e *InconsistentRepositoryKeyError) Diagnostic() diag.Diagnostic {
	return diag.NewWarning(e.Code(), e.Error())
}

func (*InconsistentRepositoryKeyError) leafError() {}

// AutoIncludeSearchError reports a failure to list a directory while looking
// for READMEs, licenses and changelogs.
type AutoIncludeSearchError struct {
	Dir string
	Err error
}

func (e *AutoIncludeSearchError) message() string {
	return fmt.Sprintf("couldn't search for files in\n%s", e.Dir)
}

func (e *AutoIncludeSearchError) Error() string { return joinCause(e.message(), e.Err) }

func (e *AutoIncludeSearchError) Unwrap() error { return e.Err }

func (e *AutoIncludeSearchError) Code() diag.Code { return diag.PrjAutoIncludeSearch }

func (e *AutoIncludeSearchError) Diagnostic() diag.Diagnostic {
	return withCause(diag.NewError(e.Code(), e.message()), e.Err)
}

func (*AutoIncludeSearchError) leafError() {}

// UnknownRepoStyleError reports a repository string that parses but does not
// describe a git remote.
type UnknownRepoStyleError struct {
	URL string
}

func (e *UnknownRepoStyleError) Error() string {
	return fmt.Sprintf("Your repository URL %s couldn't be parsed.", e.URL)
}

func (e *UnknownRepoStyleError) Code() diag.Code { return diag.PrjUnknownRepoStyle }

func (e *UnknownRepoStyleError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Error()).
		WithHelp("only git-compatible URLs are supported.")
}

func (*UnknownRepoStyleError) leafError() {}

// RepoParseError reports a repository string whose owner/name could not be
// extracted.
type RepoParseError struct {
	Repo string
}

func (e *RepoParseError) Error() string {
	return fmt.Sprintf("failed to parse your repo, current config has repo as: %s", e.Repo)
}

func (e *RepoParseError) Code() diag.Code { return diag.PrjRepoParse }

func (e *RepoParseError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Error()).
		WithHelp("We found a repo url but we had trouble parsing it. Please make sure it's entered correctly. This may be an error, and if so you should file an issue.")
}

func (*RepoParseError) leafError() {}

// UnsupportedRepoHostError reports a well-formed repository URL on a host
// that is not supported. Hosts lists the supported ones; empty means GitHub.
type UnsupportedRepoHostError struct {
	URL   string
	Hosts []string
}

func (e *UnsupportedRepoHostError) Error() string {
	return fmt.Sprintf("Your repository URL %s couldn't be parsed.", e.URL)
}

func (e *UnsupportedRepoHostError) Code() diag.Code { return diag.PrjUnsupportedRepoHost }

func (e *UnsupportedRepoHostError) Diagnostic() diag.Diagnostic {
	help := "Only GitHub URLs are supported at the moment."
	if len(e.Hosts) > 0 && !(len(e.Hosts) == 1 && e.Hosts[0] == "github.com") {
		help = "Only URLs on these hosts are supported: " + strings.Join(e.Hosts, ", ")
	}
	return diag.NewError(e.Code(), e.Error()).WithHelp(help)
}

func (*UnsupportedRepoHostError) leafError() {}

// ChangelogVersionNotFoundError reports a changelog that parsed but has no
// entry for the requested version.
type ChangelogVersionNotFoundError struct {
	Path    string
	Version string
}

func (e *ChangelogVersionNotFoundError) Error() string {
	return fmt.Sprintf("couldn't find a suitable changelog entry for %s in %s", e.Version, e.Path)
}

func (e *ChangelogVersionNotFoundError) Code() diag.Code { return diag.PrjChangelogVersionNotFound }

func (e *ChangelogVersionNotFoundError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Error())
}

func (*ChangelogVersionNotFoundError) leafError() {}

// RequiredToolMissingError reports an external tool that is needed for a
// detected workspace but is not on PATH.
type RequiredToolMissingError struct {
	Tool       string
	Manifest   string // manifest that made the tool necessary, e.g. "Cargo.toml"
	InstallURL string
}

// CargoMissing is the error for a Cargo workspace on a machine without cargo.
func CargoMissing() *RequiredToolMissingError {
	return &RequiredToolMissingError{
		Tool:       "cargo",
		Manifest:   "Cargo.toml",
		InstallURL: "https://rustup.rs",
	}
}

func (e *RequiredToolMissingError) Error() string {
	if e.Manifest == "" {
		return fmt.Sprintf("%s is required, but you don't appear to have it installed.", e.Tool)
	}
	return fmt.Sprintf("Your app has a %s, but you don't appear to have %s installed.", e.Manifest, e.Tool)
}

func (e *RequiredToolMissingError) Code() diag.Code { return diag.PrjRequiredToolMissing }

func (e *RequiredToolMissingError) Diagnostic() diag.Diagnostic {
	help := fmt.Sprintf("Is %s in your PATH?", e.Tool)
	if e.InstallURL != "" {
		help += fmt.Sprintf(" You can install %s via: %s", e.Tool, e.InstallURL)
	}
	return diag.NewError(e.Code(), e.Error()).WithHelp(help)
}

func (*RequiredToolMissingError) leafError() {}
