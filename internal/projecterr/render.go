package projecterr

import (
	"errors"

	"axoproject/internal/diag"
)

// Diagnoser is implemented by every value that knows how to render itself.
type Diagnoser interface {
	Diagnostic() diag.Diagnostic
}

// Render computes the diagnostic record for err. It performs no IO and
// returns the same record for the same value every time.
// A nil error renders as the zero Diagnostic.
func Render(err error) diag.Diagnostic {
	if err == nil {
		return diag.Diagnostic{}
	}
	if d, ok := err.(Diagnoser); ok {
		return d.Diagnostic()
	}
	return renderForeign(diag.FwdInfo, err)
}

// IsFatal reports whether err aborts the operation that raised it.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return Render(err).Severity.IsFatal()
}

// renderForeign renders an error that is not part of the taxonomy: its text
// becomes the message and errors.Unwrap drives the cause chain. Foreign
// causes further down the chain keep the forwarding code.
func renderForeign(code diag.Code, err error) diag.Diagnostic {
	d := diag.NewError(code, err.Error())
	inner := errors.Unwrap(err)
	if inner == nil {
		return d
	}
	if dd, ok := inner.(Diagnoser); ok {
		return d.WithCause(dd.Diagnostic())
	}
	return d.WithCause(renderForeign(code, inner))
}

// withCause appends the rendered cause when there is one.
func withCause(d diag.Diagnostic, cause error) diag.Diagnostic {
	if cause == nil {
		return d
	}
	return d.WithCause(Render(cause))
}

func joinCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return msg + ": " + cause.Error()
}
