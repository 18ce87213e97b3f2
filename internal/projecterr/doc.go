// Package projecterr classifies every failure of project detection into one
// stable error surface.
//
// Three sealed unions make up the surface:
//
//   - LeafError: a single failure with enough context to render a complete
//     message. Either a transparent wrapper around an error produced by an
//     external collaborator (file access, process execution, cargo metadata,
//     changelog parsing, URL grammar, UTF-8 decoding) or a domain variant
//     owning all its fields.
//   - GenericManifestParseError: a malformed entry in the members list of a
//     dist workspace manifest.
//   - ProjectError: the outcome of one detection pass. ProjectMissingError
//     when no ecosystem recognised the directory (all attempts as related
//     siblings), ProjectBrokenError when one ecosystem found a root and then
//     failed (a single cause chain).
//
// Every type renders into a diag.Diagnostic through its Diagnostic method;
// Render accepts any error and falls back to a generic rendering for values
// that are not part of the taxonomy.
//
// Wrappers are transparent: Error() and the rendered diagnostic of a wrapper
// are those of the wrapped value, and Unwrap returns the wrapped value so
// errors.Is and errors.As keep working across the boundary.
//
// Only InconsistentRepositoryKeyError renders as a warning. Everything else
// is fatal.
package projecterr
