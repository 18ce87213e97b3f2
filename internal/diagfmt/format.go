package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"axoproject/internal/diag"
)

// Format selects an output encoding.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
	FormatMsgPack
	FormatSarif
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	case FormatMsgPack:
		return "msgpack"
	case FormatSarif:
		return "sarif"
	}
	return "unknown"
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pretty", "":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgPack, nil
	case "sarif":
		return FormatSarif, nil
	}
	return FormatPretty, fmt.Errorf("unknown format %q (expected: pretty|short|json|msgpack|sarif)", s)
}

// Options bundles the per-format options.
type Options struct {
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
}

// Write encodes bag in opts.Format.
func Write(w io.Writer, bag *diag.Bag, opts Options) error {
	switch opts.Format {
	case FormatPretty:
		Pretty(w, bag, opts.Pretty)
		return nil
	case FormatShort:
		return Short(w, bag, opts.Pretty.BaseDir)
	case FormatJSON:
		return JSON(w, bag, opts.JSON)
	case FormatMsgPack:
		return MsgPack(w, bag, opts.JSON)
	case FormatSarif:
		return Sarif(w, bag, opts.Sarif)
	}
	return fmt.Errorf("unsupported format: %v", opts.Format)
}
