package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 block compression.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 data.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

// DecompressedSize reads the varint length prefix of an S2 block.
func (c S2Compressor) DecompressedSize(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return 0, fmt.Errorf("s2 block header: %w", err)
	}

	return n, nil
}
