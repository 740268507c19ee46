package compress

import (
	"fmt"

	"github.com/arloliu/devimg/errs"
	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression, the codec device image
// producers use for compressed-at-rest payloads.
//
// Payloads compressed with EncodeAll carry their content size in the frame
// header, so DecompressedSize is answered without touching the blocks.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// DecompressedSize reads the frame content size from the zstd frame header.
//
// Returns:
//   - int: Decompressed size in bytes (0 for empty input)
//   - error: Header decoding error, or errs.ErrUnknownDecompressedSize when the
//     frame does not record its content size
func (c ZstdCompressor) DecompressedSize(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	var hdr zstd.Header
	if err := hdr.Decode(data); err != nil {
		return 0, fmt.Errorf("zstd frame header: %w", err)
	}

	if !hdr.HasFCS {
		return 0, errs.ErrUnknownDecompressedSize
	}

	return int(hdr.FrameContentSize), nil //nolint: gosec
}
