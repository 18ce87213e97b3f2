package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"axoproject/internal/diag"
)

// MsgPack writes the same structure as JSON, encoded as MessagePack.
func MsgPack(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}

// DecodeMsgPack reads output written by MsgPack.
func DecodeMsgPack(r io.Reader) (DiagnosticsOutput, error) {
	var out DiagnosticsOutput
	err := msgpack.NewDecoder(r).Decode(&out)
	return out, err
}
