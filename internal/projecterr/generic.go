package projecterr

import (
	"fmt"
	"strings"

	"axoproject/internal/diag"
	"axoproject/internal/source"
)

// ValidPrefixes is the closed set of ecosystem prefixes a dist workspace
// member may carry.
var ValidPrefixes = []string{"dist", "cargo", "npm"}

func possiblePrefixes() string {
	return "possible prefixes are: " + strings.Join(ValidPrefixes, ", ")
}

// GenericManifestParseError is a malformed entry of a dist workspace members
// list. Always fatal.
type GenericManifestParseError interface {
	error
	Diagnoser
	Code() diag.Code
	// Entry returns the raw member string.
	Entry() string
	genericManifestParseError()
}

// MemberLocation optionally points a member error at the entry in its manifest.
type MemberLocation struct {
	Source *source.File
	Span   source.Span
}

func (l *MemberLocation) snippet(label string) *diag.Snippet {
	if l == nil || l.Source == nil {
		return nil
	}
	return &diag.Snippet{File: l.Source, Span: l.Span.Clamp(l.Source.Size()), Label: label}
}

// NoPrefixError is a member without "ecosystem:".
type NoPrefixError struct {
	Val      string
	Location *MemberLocation
}

func (e *NoPrefixError) Error() string {
	return fmt.Sprintf("dist workspace member %s is missing prefix\nmembers should be formatted like \"dist:some/path\"\n%s",
		e.Val, possiblePrefixes())
}

func (e *NoPrefixError) Code() diag.Code { return diag.ManNoPrefix }

func (e *NoPrefixError) Entry() string { return e.Val }

func (e *NoPrefixError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Error()).WithSource(e.Location.snippet("missing prefix"))
}

func (*NoPrefixError) genericManifestParseError() {}

// UnknownPrefixError is a member whose prefix is not in ValidPrefixes.
type UnknownPrefixError struct {
	Prefix   string
	Val      string
	Location *MemberLocation
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("dist workspace member %s has unknown %s prefix\n%s", e.Val, e.Prefix, possiblePrefixes())
}

func (e *UnknownPrefixError) Code() diag.Code { return diag.ManUnknownPrefix }

func (e *UnknownPrefixError) Entry() string { return e.Val }

func (e *UnknownPrefixError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Error()).WithSource(e.Location.snippet("unknown prefix"))
}

func (*UnknownPrefixError) genericManifestParseError() {}
