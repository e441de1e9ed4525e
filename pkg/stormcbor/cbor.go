package stormcbor

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

const name = "cbor"

// Codec that encodes to and decodes from CBOR (Concise Binary Object Representation).
// Time values are encoded with the CBOR time tag and map keys are sorted so
// identical values always produce identical bytes.
// http://cbor.io/
// https://tools.ietf.org/html/rfc7049
var Codec = new(cborCodec)

type cborCodec int

func handle() *codec.CborHandle {
	h := &codec.CborHandle{TimeRFC3339: true}
	h.Canonical = true
	return h
}

// Marshal encodes v.
func (c cborCodec) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := codec.NewEncoder(&b, handle()).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Unmarshal decodes b into v.
func (c cborCodec) Unmarshal(b []byte, v any) error {
	return codec.NewDecoderBytes(b, handle()).Decode(v)
}

// Name returns the codec name stored by Storm.
func (c cborCodec) Name() string {
	return name
}
