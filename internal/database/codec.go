package database

import (
	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/mdouchement/novatech/pkg/stormbinc"
	"github.com/mdouchement/novatech/pkg/stormcbor"
	"github.com/pkg/errors"
)

// DefaultCodec is the name of the codec used when none is configured.
const DefaultCodec = "msgpack"

var codecs = map[string]codec.MarshalUnmarshaler{
	"msgpack": msgpack.Codec,
	"json":    json.Codec,
	"cbor":    stormcbor.Codec,
	"binc":    stormbinc.Codec,
}

// Codec returns the Storm codec option for the given name.
// An empty name returns the default codec.
func Codec(name string) (func(*storm.Options) error, error) {
	if name == "" {
		name = DefaultCodec
	}

	c, ok := codecs[name]
	if !ok {
		return nil, errors.Errorf("unsupported database codec: %s", name)
	}
	return storm.Codec(c), nil
}
