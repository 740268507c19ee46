// Package errs defines the sentinel errors shared by the devimg packages.
//
// Recoverable failures are returned as errors wrapping one of these values and
// can be matched with errors.Is. Contract violations (a malformed in-memory
// descriptor or a misuse of the decoding API) are raised as panics carrying an
// error that wraps ErrContractViolation.
package errs

import "errors"

// Contract violations.
var (
	// ErrContractViolation is wrapped by every panic raised on API misuse or producer bugs.
	ErrContractViolation = errors.New("contract violation")
)

// Container parsing errors.
var (
	ErrInvalidHeaderSize   = errors.New("invalid container header size")
	ErrInvalidMagic        = errors.New("invalid container magic")
	ErrInvalidHeaderFlags  = errors.New("invalid container header flags")
	ErrUnsupportedVersion  = errors.New("unsupported container version")
	ErrTruncated           = errors.New("container metadata is truncated")
	ErrInvalidOffset       = errors.New("container section offset out of range")
	ErrChecksumMismatch    = errors.New("container payload checksum mismatch")
	ErrNamelessPropertySet = errors.New("nameless property set")
	ErrInvalidPropertyType = errors.New("invalid property type")
	ErrInvalidPropertySize = errors.New("invalid property size")
	ErrStringTooLong       = errors.New("string exceeds container limit")
)

// Container building errors.
var (
	ErrDuplicatePropertySet = errors.New("duplicate property set name")
	ErrDuplicateProperty    = errors.New("duplicate property name")
	ErrInvalidPropertyName  = errors.New("invalid property name")
	ErrPayloadTooLarge      = errors.New("payload exceeds container limit")
)

// Image lifecycle errors.
var (
	ErrNilDescriptor            = errors.New("nil binary descriptor")
	ErrNotCompressed            = errors.New("image is not compressed")
	ErrNotDecompressed          = errors.New("image payload is not decompressed yet")
	ErrAlreadyDecompressed      = errors.New("image payload is already decompressed")
	ErrDecompression            = errors.New("image decompression failed")
	ErrUnknownDecompressedSize  = errors.New("decompressed size is not recorded in the stream")
	ErrUnsupportedCompression   = errors.New("unsupported compression type")
	ErrDecompressedSizeMismatch = errors.New("decompressed size differs from the recorded size")
	ErrImageClosed              = errors.New("image is closed")
)
