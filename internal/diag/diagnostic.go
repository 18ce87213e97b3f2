package diag

import (
	"axoproject/internal/source"
)

// Snippet points a diagnostic into the text of the offending file.
type Snippet struct {
	File  *source.File
	Span  source.Span
	Label string
}

// Diagnostic is the rendering record computed from an error value.
//
// Cause is a single upstream chain; Related holds equally ranked siblings.
// The two are never both used for the same error.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Help     string
	Source   *Snippet
	Cause    *Diagnostic
	Related  []Diagnostic
}

// Chain returns the diagnostic followed by its causes, outermost first.
func (d Diagnostic) Chain() []Diagnostic {
	out := []Diagnostic{d}
	for c := d.Cause; c != nil; c = c.Cause {
		out = append(out, *c)
	}
	return out
}

// Location resolves the primary span of the snippet, if any.
func (d Diagnostic) Location() (path string, start source.LineCol, ok bool) {
	if d.Source == nil || d.Source.File == nil {
		return "", source.LineCol{}, false
	}
	start, _ = d.Source.File.Resolve(d.Source.Span)
	return d.Source.File.Path, start, true
}
