package projecterr

import (
	"axoproject/internal/diag"
)

// transparent forwards message, cause chain and rendering to the wrapped error.
type transparent struct {
	err error
}

func (t *transparent) Error() string { return t.err.Error() }

func (t *transparent) Unwrap() error { return t.err }

// Foreign returns the wrapped value unchanged.
func (t *transparent) Foreign() error { return t.err }

func (t *transparent) render(code diag.Code) diag.Diagnostic {
	if d, ok := t.err.(Diagnoser); ok {
		return d.Diagnostic()
	}
	return renderForeign(code, t.err)
}

// AssetError forwards a file loading or searching failure.
type AssetError struct{ transparent }

// FromAsset wraps a file access error. It returns nil for a nil error.
func FromAsset(err error) LeafError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AssetError); ok {
		return ae
	}
	return &AssetError{transparent{err}}
}

func (e *AssetError) Code() diag.Code { return diag.FwdAsset }
func (e *AssetError) Diagnostic() diag.Diagnostic { return e.render(diag.FwdAsset) }
func (*AssetError) leafError() {}

// ProcessError forwards a failure to run an external command.
type ProcessError struct{ transparent }

// FromProcess wraps a process execution error. It returns nil for a nil error.
func FromProcess(err error) LeafError {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ProcessError); ok {
		return pe
	}
	return &ProcessError{transparent{err}}
}

func (e *ProcessError) Code() diag.Code { return diag.FwdProcess }
func (e *ProcessError) Diagnostic() diag.Diagnostic { return e.render(diag.FwdProcess) }
func (*ProcessError) leafError() {}

// CargoMetadataError forwards a failure to query or decode cargo metadata.
type CargoMetadataError struct{ transparent }

// FromCargoMetadata wraps a dependency-metadata error. It returns nil for a nil error.
func FromCargoMetadata(err error) LeafError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CargoMetadataError); ok {
		return ce
	}
	return &CargoMetadataError{transparent{err}}
}

func (e *CargoMetadataError) Code() diag.Code { return diag.FwdCargoMetadata }
func (e *CargoMetadataError) Diagnostic() diag.Diagnostic { return e.render(diag.FwdCargoMetadata) }
func (*CargoMetadataError) leafError() {}

// ChangelogParseError forwards a failure of the changelog parser.
type ChangelogParseError struct{ transparent }

// FromChangelogParse wraps a changelog parse error. It returns nil for a nil error.
func FromChangelogParse(err error) LeafError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*ChangelogParseError); ok {
		return ce
	}
	return &ChangelogParseError{transparent{err}}
}

func (e *ChangelogParseError) Code() diag.Code { return diag.FwdChangelogParse }
func (e *ChangelogParseError) Diagnostic() diag.Diagnostic { return e.render(diag.FwdChangelogParse) }
func (*ChangelogParseError) leafError() {}

// UTF8Error forwards a failure to decode bytes as UTF-8 text.
type UTF8Error struct{ transparent }

// FromUTF8 wraps a decoding error. It returns nil for a nil error.
func FromUTF8(err error) LeafError {
	if err == nil {
		return nil
	}
	if ue, ok := err.(*UTF8Error); ok {
		return ue
	}
	return &UTF8Error{transparent{err}}
}

func (e *UTF8Error) Code() diag.Code { return diag.FwdUTF8 }
func (e *UTF8Error) Diagnostic() diag.Diagnostic { return e.render(diag.FwdUTF8) }
func (*UTF8Error) leafError() {}

// URLParseError forwards a URL grammar error.
type URLParseError struct{ transparent }

// FromURLParse wraps a URL grammar error. It returns nil for a nil error.
func FromURLParse(err error) LeafError {
	if err == nil {
		return nil
	}
	if ue, ok := err.(*URLParseError); ok {
		return ue
	}
	return &URLParseError{transparent{err}}
}

func (e *URLParseError) Code() diag.Code { return diag.FwdURLParse }
func (e *URLParseError) Diagnostic() diag.Diagnostic { return e.render(diag.FwdURLParse) }
func (*URLParseError) leafError() {}

// GenericManifestError lifts a GenericManifestParseError into the leaf union.
type GenericManifestError struct {
	parse GenericManifestParseError
}

// FromGeneric wraps a workspace member parse error. It returns nil for a nil error.
func FromGeneric(err GenericManifestParseError) LeafError {
	if err == nil {
		return nil
	}
	return &GenericManifestError{parse: err}
}

func (e *GenericManifestError) Error() string { return e.parse.Error() }
func (e *GenericManifestError) Unwrap() error { return e.parse }

// Parse returns the wrapped member parse error.
func (e *GenericManifestError) Parse() GenericManifestParseError { return e.parse }

func (e *GenericManifestError) Code() diag.Code { return e.parse.Code() }
func (e *GenericManifestError) Diagnostic() diag.Diagnostic { return e.parse.Diagnostic() }
func (*GenericManifestError) leafError() {}
