package cache

import (
	"github.com/klauspost/compress/zstd"
)

var enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
var dec, _ = zstd.NewReader(nil)

// EncodeValue compresses a serialized payload for the medium.
func EncodeValue(in []byte) []byte {
	return enc.EncodeAll(in, make([]byte, 0, len(in)))
}

// DecodeValue reverses EncodeValue.
func DecodeValue(in []byte) ([]byte, error) {
	out, err := dec.DecodeAll(in, nil)
	if err != nil {
		return []byte{}, err
	}
	return out, nil
}
