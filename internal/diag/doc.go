// Package diag defines the diagnostic record every project-detection error
// renders into.
//
// # Purpose
//
//   - Provide a deterministic, serialisable structure that carries what a
//     consumer needs to show a failure: message, optional help text, severity,
//     an optional located snippet of the offending manifest, and either a single
//     cause chain or a list of related sibling diagnostics.
//   - Offer light-weight utilities (Reporter, Bag) that let detectors emit
//     non-fatal findings without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format, print or perform IO. Rendering lives in
// internal/diagfmt; the mapping from error values to Diagnostic lives in
// internal/projecterr.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – Info, Warning or Error. Only Error is fatal.
//   - Code – compact numeric identifier (see codes.go) with a stable ID such as
//     "PRJ2004".
//   - Message – one line (occasionally a short block) interpolating the error's
//     fields.
//   - Help – optional remediation text.
//   - Source – optional Snippet: the file text plus a byte span to highlight.
//   - Cause – optional upstream diagnostic, forming a chain.
//   - Related – optional siblings of equal rank, used when several independent
//     attempts failed and none of them is authoritative.
//
// Diagnostics are values. Builders (WithHelp, WithCause, ...) return modified
// copies and never mutate the receiver.
package diag
