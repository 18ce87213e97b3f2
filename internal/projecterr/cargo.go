package projecterr

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"axoproject/internal/diag"
	"axoproject/internal/source"
)

// ParseCargoTomlError reports a Cargo.toml that is not valid TOML. Unlike the
// transparent wrappers it carries the manifest text and, when the parser
// reported a position, the byte span of the problem.
type ParseCargoTomlError struct {
	Source  *source.File
	Span    *source.Span
	Details error
}

// EnrichCargoToml re-attaches the manifest text to a TOML failure. The span
// is taken from toml.ParseError and clamped to the text; it stays nil when
// the error carries no position.
func EnrichCargoToml(file *source.File, err error) *ParseCargoTomlError {
	if err == nil {
		return nil
	}
	out := &ParseCargoTomlError{Source: file, Details: err}
	if file == nil {
		return out
	}
	var perr toml.ParseError
	if !errors.As(err, &perr) || perr.Position.Line <= 0 {
		return out
	}
	start, err1 := safecast.Conv[uint32](perr.Position.Start)
	length, err2 := safecast.Conv[uint32](perr.Position.Len)
	if err1 != nil || err2 != nil {
		return out
	}
	sp := source.Span{File: file.ID, Start: start, End: start + length}.Clamp(file.Size())
	out.Span = &sp
	return out
}

func (e *ParseCargoTomlError) Error() string { return joinCause("couldn't read Cargo.toml", e.Details) }

func (e *ParseCargoTomlError) Unwrap() error { return e.Details }

func (e *ParseCargoTomlError) Code() diag.Code { return diag.PrjParseCargoToml }

func (e *ParseCargoTomlError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code(), "couldn't read Cargo.toml")
	if e.Source != nil && e.Span != nil {
		d = d.WithSource(&diag.Snippet{
			File:  e.Source,
			Span:  e.Span.Clamp(e.Source.Size()),
			Label: tomlLabel(e.Details),
		})
	}
	return withCause(d, e.Details)
}

func (*ParseCargoTomlError) leafError() {}

// tomlLabel returns the parser's message without its "toml: line N" prefix.
// Most parse errors leave Message empty and only format it through Error.
func tomlLabel(err error) string {
	var perr toml.ParseError
	if !errors.As(err, &perr) {
		return ""
	}
	if perr.Message != "" {
		return perr.Message
	}
	msg := strings.TrimPrefix(perr.Error(), fmt.Sprintf("toml: line %d", perr.Position.Line))
	if perr.LastKey != "" {
		msg = strings.TrimPrefix(msg, fmt.Sprintf(" (last key %q)", perr.LastKey))
	}
	return strings.TrimPrefix(msg, ": ")
}
