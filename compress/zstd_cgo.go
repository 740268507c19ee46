//go:build cgo && gozstd

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses data with the cgo libzstd binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses data with the cgo libzstd binding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var dst []byte
	if size, err := c.DecompressedSize(data); err == nil && size > 0 {
		dst = make([]byte, 0, size)
	}

	return gozstd.Decompress(dst, data)
}
