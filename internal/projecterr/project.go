package projecterr

import (
	"axoproject/internal/diag"
)

// ProjectError is the outcome of trying every ecosystem detector on a
// directory: either nothing was found, or something was found but is broken.
type ProjectError interface {
	error
	Diagnoser
	Code() diag.Code
	projectError()
}

const projectMissingMsg = "No workspace found; either your project doesn't have a Cargo.toml/dist.toml/package.json, or we couldn't read it"

// ProjectMissingError is returned when no detector found a workspace root.
// Sources holds every detector's failure, in detector priority order.
type ProjectMissingError struct {
	Sources []LeafError
}

func (e *ProjectMissingError) Error() string { return projectMissingMsg }

// Unwrap exposes every source, so errors.Is/As look at all of them.
func (e *ProjectMissingError) Unwrap() []error {
	out := make([]error, 0, len(e.Sources))
	for _, s := range e.Sources {
		out = append(out, s)
	}
	return out
}

func (e *ProjectMissingError) Code() diag.Code { return diag.AggProjectMissing }

func (e *ProjectMissingError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code(), projectMissingMsg)
	if len(e.Sources) == 0 {
		return d.WithHelp("no ecosystem detectors are enabled")
	}
	related := make([]diag.Diagnostic, 0, len(e.Sources))
	for _, s := range e.Sources {
		related = append(related, s.Diagnostic())
	}
	return d.WithRelated(related...)
}

func (*ProjectMissingError) projectError() {}

// ProjectBrokenError is returned when a detector found a workspace root but
// could not load it.
type ProjectBrokenError struct {
	Cause LeafError
}

func (e *ProjectBrokenError) Error() string {
	return joinCause("We encountered an issue trying to read your workspace", e.Cause)
}

func (e *ProjectBrokenError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

func (e *ProjectBrokenError) Code() diag.Code { return diag.AggProjectBroken }

func (e *ProjectBrokenError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code(), "We encountered an issue trying to read your workspace")
	if e.Cause == nil {
		return d
	}
	return d.WithCause(e.Cause.Diagnostic())
}

func (*ProjectBrokenError) projectError() {}

// Attempt is one detector's outcome. Found means a root manifest of that
// ecosystem exists; Err is the failure, if any.
type Attempt struct {
	Ecosystem string
	Found     bool
	Err       LeafError
}

// Aggregate folds attempts, given in detector priority order, into a single
// outcome. The first attempt that found a root decides: a clean one wins and
// its index is returned, a failing one yields ProjectBroken. With no root at
// all every failure becomes a sibling of ProjectMissing, order kept.
// On failure the index is -1.
func Aggregate(attempts []Attempt) (int, ProjectError) {
	for i, a := range attempts {
		if !a.Found {
			continue
		}
		if a.Err != nil {
			return -1, &ProjectBrokenError{Cause: a.Err}
		}
		return i, nil
	}
	missing := &ProjectMissingError{}
	for _, a := range attempts {
		if a.Err != nil {
			missing.Sources = append(missing.Sources, a.Err)
		}
	}
	return -1, missing
}
