package compress

import (
	"fmt"

	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
)

// Compressor compresses a device image payload.
type Compressor interface {
	// Compress compresses data and returns a newly allocated slice owned by the caller.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload compressed with the matching Compressor.
//
// Example:
//
//	payload, err := compress.NewZstdCompressor().Decompress(compressed)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress validates and decompresses data. The returned slice is newly
	// allocated and owned by the caller; data is not modified.
	//
	// Returns an error if data is corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// SizePeeker reports the decompressed size of a stream without decompressing it.
type SizePeeker interface {
	// DecompressedSize reads the size recorded in the stream header.
	//
	// Returns errs.ErrUnknownDecompressedSize when the stream does not record it.
	DecompressedSize(data []byte) (int, error)
}

// Codec combines compression, decompression and size peeking.
type Codec interface {
	Compressor
	Decompressor
	SizePeeker
}

// CreateCodec creates a Codec for compressionType.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrUnsupportedCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}
