package diagfmt

import (
	"encoding/json"
	"io"

	"axoproject/internal/diag"
)

// LocationJSON is a position inside a manifest.
type LocationJSON struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
	Label     string `json:"label,omitempty" msgpack:"label,omitempty"`
}

// DiagnosticJSON is the serialised form of a diag.Diagnostic.
type DiagnosticJSON struct {
	Severity string           `json:"severity" msgpack:"severity"`
	Code     string           `json:"code" msgpack:"code"`
	Title    string           `json:"title" msgpack:"title"`
	Message  string           `json:"message" msgpack:"message"`
	Help     string           `json:"help,omitempty" msgpack:"help,omitempty"`
	Location *LocationJSON    `json:"location,omitempty" msgpack:"location,omitempty"`
	Cause    *DiagnosticJSON  `json:"cause,omitempty" msgpack:"cause,omitempty"`
	Related  []DiagnosticJSON `json:"related,omitempty" msgpack:"related,omitempty"`
}

// DiagnosticsOutput is the root of JSON and MessagePack output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
	Errors      int              `json:"errors" msgpack:"errors"`
	Warnings    int              `json:"warnings" msgpack:"warnings"`
}

func makeLocation(sn *diag.Snippet, opts JSONOpts) *LocationJSON {
	if sn == nil || sn.File == nil {
		return nil
	}
	span := sn.Span.Clamp(sn.File.Size())
	loc := &LocationJSON{
		File:      opts.PathMode.format(sn.File, opts.BaseDir),
		StartByte: span.Start,
		EndByte:   span.End,
		Label:     sn.Label,
	}
	if opts.IncludePositions {
		start, end := sn.File.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func makeDiagnostic(d diag.Diagnostic, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Help:     d.Help,
		Location: makeLocation(d.Source, opts),
	}
	if d.Cause != nil {
		c := makeDiagnostic(*d.Cause, opts)
		out.Cause = &c
	}
	for _, r := range d.Related {
		out.Related = append(out.Related, makeDiagnostic(r, opts))
	}
	return out
}

// BuildDiagnosticsOutput builds the output structure without serialising it.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		}
		out.Diagnostics = append(out.Diagnostics, makeDiagnostic(d, opts))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes diagnostics as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, opts))
}
