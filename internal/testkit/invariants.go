// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"errors"
	"fmt"
	"strings"

	"axoproject/internal/diag"
)

// maxChainDepth bounds cause chains; real chains are two or three deep.
const maxChainDepth = 32

// CheckDiagnostic verifies the structural rules every rendered error must
// follow:
//  1. the code is a known one and the message is not empty
//  2. a snippet span lies inside its file and carries a file
//  3. Cause and Related are never both set
//  4. the cause chain is finite and every link obeys the same rules
func CheckDiagnostic(d diag.Diagnostic) error {
	return checkDiagnostic(d, 0)
}

func checkDiagnostic(d diag.Diagnostic, depth int) error {
	if depth > maxChainDepth {
		return errors.New("cause chain too deep")
	}
	if d.Code.ID() == "E0000" {
		return fmt.Errorf("unknown code %d", d.Code)
	}
	if strings.TrimSpace(d.Message) == "" {
		return fmt.Errorf("%s: empty message", d.Code.ID())
	}
	if d.Severity > diag.SevError {
		return fmt.Errorf("%s: invalid severity %d", d.Code.ID(), d.Severity)
	}
	if sn := d.Source; sn != nil {
		if sn.File == nil {
			return fmt.Errorf("%s: snippet without file", d.Code.ID())
		}
		if !sn.Span.Within(sn.File.Size()) {
			return fmt.Errorf("%s: span %v outside file of %d bytes", d.Code.ID(), sn.Span, sn.File.Size())
		}
	}
	if d.Cause != nil && len(d.Related) > 0 {
		return fmt.Errorf("%s: both cause and related set", d.Code.ID())
	}
	if d.Cause != nil {
		if err := checkDiagnostic(*d.Cause, depth+1); err != nil {
			return fmt.Errorf("cause of %s: %w", d.Code.ID(), err)
		}
	}
	for i, r := range d.Related {
		if err := checkDiagnostic(r, depth+1); err != nil {
			return fmt.Errorf("related[%d] of %s: %w", i, d.Code.ID(), err)
		}
	}
	return nil
}
