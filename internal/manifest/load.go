package manifest

import (
	"fmt"

	"axoproject/internal/projecterr"
	"axoproject/internal/source"
)

// EncodingError reports a manifest whose bytes are not valid UTF-8.
type EncodingError struct {
	Path   string
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: invalid utf-8 sequence at byte %d", e.Path, e.Offset)
}

// loadText reads path into fset and checks that it is text.
func loadText(fset *source.FileSet, path string) (*source.File, projecterr.LeafError) {
	id, err := fset.Load(path)
	if err != nil {
		return nil, projecterr.FromAsset(err)
	}
	file := fset.Get(id)
	if off, bad := source.InvalidUTF8(file.Content); bad {
		return nil, projecterr.FromUTF8(&EncodingError{Path: path, Offset: off})
	}
	return file, nil
}
