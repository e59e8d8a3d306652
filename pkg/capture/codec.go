package capture

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// Record is one captured ground truth sample: the frame bytes plus the state
// and position of the light the simulator reported for it.
type Record struct {
	State  string
	LightX float64
	LightY float64
	Frame  []byte
}

func Encode(r Record) ([]byte, error) {
	encoded, err := binary.Marshal(&r)
	if err != nil {
		return nil, err
	}
	return Compress(encoded)
}

func Decode(bb []byte) (Record, error) {
	var r Record
	decompressed, err := Decompress(bb)
	if err != nil {
		return r, err
	}
	err = binary.Unmarshal(decompressed, &r)
	return r, err
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
