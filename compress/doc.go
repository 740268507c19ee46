// Package compress provides the codecs used for compressed-at-rest device
// image payloads.
//
// A container whose producer compressed the payload declares
// format.FormatCompressedNone together with a format.CompressionType. The
// image layer picks the matching codec with GetCodec, asks it for the
// decompressed size up front (SizePeeker) and decompresses once, on demand.
//
// # Supported Algorithms
//
//   - format.CompressionNone: NoOpCompressor, returns input unchanged
//   - format.CompressionZstd: ZstdCompressor, the producer default; the frame
//     header records the content size
//   - format.CompressionS2: S2Compressor; the block starts with a varint length
//   - format.CompressionLZ4: LZ4Compressor; no size is recorded
//
// The zstd codec is pure Go (klauspost/compress) by default. Building with
// the `gozstd` tag and cgo enabled switches Compress/Decompress to the
// valyala/gozstd libzstd binding.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool and are safe for
// concurrent use.
package compress
