package stormbinc

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

const name = "binc"

// Codec that encodes to and decodes from Binc.
// Map keys are sorted so identical values always produce identical bytes.
// See https://github.com/ugorji/binc
var Codec = new(bincCodec)

type bincCodec int

func handle() *codec.BincHandle {
	h := new(codec.BincHandle)
	h.Canonical = true
	return h
}

// Marshal encodes v.
func (c bincCodec) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := codec.NewEncoder(&b, handle()).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Unmarshal decodes b into v.
func (c bincCodec) Unmarshal(b []byte, v any) error {
	return codec.NewDecoderBytes(b, handle()).Decode(v)
}

// Name returns the codec name stored by Storm.
func (c bincCodec) Name() string {
	return name
}
