package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"axoproject/internal/projecterr"
	"axoproject/internal/source"
)

// Ecosystem names a kind of project. The values double as member prefixes.
type Ecosystem string

const (
	EcosystemCargo Ecosystem = "cargo"
	EcosystemNpm   Ecosystem = "npm"
	EcosystemDist  Ecosystem = "dist"
)

// DistFiles are the generic workspace manifest names, most preferred first.
var DistFiles = []string{"dist-workspace.toml", "dist.toml"}

// Member is one entry of a dist workspace members list.
type Member struct {
	Ecosystem Ecosystem
	Path      string
}

func (m Member) String() string { return string(m.Ecosystem) + ":" + m.Path }

// DistManifest is a generic workspace manifest.
type DistManifest struct {
	Path    string
	Root    string
	File    *source.File
	Members []Member
	Package *DistPackage
}

// DistPackage is the optional [package] table of a dist manifest.
type DistPackage struct {
	Name       string   `toml:"name"`
	Version    string   `toml:"version"`
	Repository string   `toml:"repository"`
	Binaries   []string `toml:"binaries"`
}

type rawDistManifest struct {
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
	Package *DistPackage `toml:"package"`
}

// ParseMember splits "ecosystem:path".
func ParseMember(entry string) (Member, projecterr.GenericManifestParseError) {
	return parseMemberAt(entry, nil)
}

// parseMemberAt is ParseMember for an entry read from a manifest; loc, when
// known, is attached to the returned error.
func parseMemberAt(entry string, loc *projecterr.MemberLocation) (Member, projecterr.GenericManifestParseError) {
	prefix, path, ok := strings.Cut(entry, ":")
	if !ok {
		return Member{}, &projecterr.NoPrefixError{Val: entry, Location: loc}
	}
	if !slices.Contains(projecterr.ValidPrefixes, prefix) {
		return Member{}, &projecterr.UnknownPrefixError{Prefix: prefix, Val: entry, Location: loc}
	}
	if path == "" {
		path = "."
	}
	return Member{Ecosystem: Ecosystem(prefix), Path: path}, nil
}

// ParseMembers parses entries in order and stops at the first malformed one.
func ParseMembers(entries []string) ([]Member, projecterr.GenericManifestParseError) {
	out := make([]Member, 0, len(entries))
	for _, e := range entries {
		m, err := ParseMember(e)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadGeneric reads a dist workspace manifest and parses its members.
// A malformed member points back into the manifest text.
func LoadGeneric(fset *source.FileSet, path string) (*DistManifest, projecterr.LeafError) {
	file, lerr := loadText(fset, path)
	if lerr != nil {
		return nil, lerr
	}
	var raw rawDistManifest
	if _, err := toml.Decode(string(file.Content), &raw); err != nil {
		return nil, projecterr.FromAsset(fmt.Errorf("failed to parse %s: %w", path, err))
	}
	members := make([]Member, 0, len(raw.Workspace.Members))
	for _, entry := range raw.Workspace.Members {
		m, perr := parseMemberAt(entry, memberLocation(file, entry))
		if perr != nil {
			return nil, projecterr.FromGeneric(perr)
		}
		members = append(members, m)
	}
	return &DistManifest{
		Path:    path,
		Root:    filepath.Dir(path),
		File:    file,
		Members: members,
		Package: raw.Package,
	}, nil
}

// memberLocation finds the string literal of entry in the manifest text.
func memberLocation(file *source.File, entry string) *projecterr.MemberLocation {
	quoted := []byte(strconv.Quote(entry))
	at := bytes.Index(file.Content, quoted)
	if at < 0 {
		at = bytes.Index(file.Content, []byte("'"+entry+"'"))
	}
	if at < 0 {
		return nil
	}
	start, err1 := safecast.Conv[uint32](at + 1)
	length, err2 := safecast.Conv[uint32](len(entry))
	if err1 != nil || err2 != nil {
		return nil
	}
	return &projecterr.MemberLocation{
		Source: file,
		Span:   source.Span{File: file.ID, Start: start, End: start + length},
	}
}
