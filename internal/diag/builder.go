package diag

func New(sev Severity, code Code, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
	}
}

func NewError(code Code, msg string) Diagnostic {
	return New(SevError, code, msg)
}

func NewWarning(code Code, msg string) Diagnostic {
	return New(SevWarning, code, msg)
}

func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

func (d Diagnostic) WithSource(sn *Snippet) Diagnostic {
	d.Source = sn
	return d
}

func (d Diagnostic) WithCause(cause Diagnostic) Diagnostic {
	d.Cause = &cause
	return d
}

// WithRelated replaces the related list with a copy of related.
func (d Diagnostic) WithRelated(related ...Diagnostic) Diagnostic {
	d.Related = append([]Diagnostic(nil), related...)
	return d
}
