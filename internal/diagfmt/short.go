package diagfmt

import (
	"io"

	"axoproject/internal/diag"
)

// Short writes one line per diagnostic, causes and related entries included.
func Short(w io.Writer, bag *diag.Bag, baseDir string) error {
	text := diag.FormatShortDiagnostics(bag.Items(), baseDir, true)
	if text == "" {
		return nil
	}
	_, err := io.WriteString(w, text+"\n")
	return err
}
