package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

type shortLine struct {
	Kind    string
	Code    string
	Loc     string
	Message string
}

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation used by the short CLI output and by golden tests.
// With includeChain, causes and related siblings follow their parent as
// "cause" and "related" lines. Input order is preserved.
func FormatShortDiagnostics(diags []Diagnostic, baseDir string, includeChain bool) string {
	if len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		lines = appendShort(lines, d, severityLabel(d.Severity), baseDir, includeChain)
	}

	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%s %s %s %s", l.Kind, l.Code, l.Loc, l.Message)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendShort(out []shortLine, d Diagnostic, kind, baseDir string, includeChain bool) []shortLine {
	out = append(out, shortLine{
		Kind:    kind,
		Code:    d.Code.ID(),
		Loc:     resolveLocation(d, baseDir),
		Message: sanitizeMessage(d.Message),
	})
	if !includeChain {
		return out
	}
	if d.Cause != nil {
		out = appendShort(out, *d.Cause, "cause", baseDir, true)
	}
	for _, r := range d.Related {
		out = appendShort(out, r, "related", baseDir, true)
	}
	return out
}

func resolveLocation(d Diagnostic, baseDir string) string {
	if d.Source == nil || d.Source.File == nil {
		return "-"
	}
	f := d.Source.File
	path := f.Path
	if baseDir != "" {
		path = f.FormatPath("relative", baseDir)
	}
	start, _ := f.Resolve(d.Source.Span.Clamp(f.Size()))
	return fmt.Sprintf("%s:%d:%d", normalizePath(path), start.Line, start.Col)
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.Join(strings.Fields(strings.ReplaceAll(msg, "\n", " ")), " ")
	return strings.TrimSpace(msg)
}
