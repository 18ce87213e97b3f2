package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// forwarded from external collaborators
	FwdInfo           Code = 1000
	FwdAsset          Code = 1001
	FwdProcess        Code = 1002
	FwdCargoMetadata  Code = 1003
	FwdChangelogParse Code = 1004
	FwdUTF8           Code = 1005
	FwdURLParse       Code = 1006

	// project detection
	PrjInfo                      Code = 2000
	PrjParseCargoToml            Code = 2001
	PrjNamelessPackage           Code = 2002
	PrjBuildInfoParse            Code = 2003
	PrjInconsistentRepositoryKey Code = 2004
	PrjAutoIncludeSearch         Code = 2005
	PrjUnknownRepoStyle          Code = 2006
	PrjRepoParse                 Code = 2007
	PrjUnsupportedRepoHost       Code = 2008
	PrjChangelogVersionNotFound  Code = 2009
	PrjRequiredToolMissing       Code = 2010

	// workspace member declarations
	ManInfo          Code = 3000
	ManNoPrefix      Code = 3001
	ManUnknownPrefix Code = 3002

	// detection outcome
	AggInfo           Code = 4000
	AggProjectMissing Code = 4001
	AggProjectBroken  Code = 4002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                  "Unknown error",
		FwdInfo:                      "Forwarded error information",
		FwdAsset:                     "File access failed",
		FwdProcess:                   "External command failed",
		FwdCargoMetadata:             "cargo metadata failed",
		FwdChangelogParse:            "Changelog could not be parsed",
		FwdUTF8:                      "Output is not valid UTF-8",
		FwdURLParse:                  "Malformed URL",
		PrjInfo:                      "Project information",
		PrjParseCargoToml:            "Cargo.toml could not be parsed",
		PrjNamelessPackage:           "Package has no name",
		PrjBuildInfoParse:            "Binaries could not be read",
		PrjInconsistentRepositoryKey: "Inconsistent repository values",
		PrjAutoIncludeSearch:         "Auto-include search failed",
		PrjUnknownRepoStyle:          "Repository URL is not git-compatible",
		PrjRepoParse:                 "Repository could not be parsed",
		PrjUnsupportedRepoHost:       "Repository host is not supported",
		PrjChangelogVersionNotFound:  "Changelog has no entry for version",
		PrjRequiredToolMissing:       "Required tool is not installed",
		ManInfo:                      "Workspace manifest information",
		ManNoPrefix:                  "Workspace member is missing a prefix",
		ManUnknownPrefix:             "Workspace member has an unknown prefix",
		AggInfo:                      "Detection information",
		AggProjectMissing:            "No workspace found",
		AggProjectBroken:             "Workspace is broken",
	}
)

// ID returns the stable identifier of the code, e.g. "PRJ2004".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FWD%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MAN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("AGG%04d", ic)
	}
	return "E0000"
}

// Title returns the short description of the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
