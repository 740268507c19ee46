package section

import (
	"github.com/arloliu/devimg/endian"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
)

// Header is the fixed-size header at the start of a container.
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|-----------------------------------------
//	0-3    | Magic            | [4]u8  | "DBIN"
//	4-5    | Version          | uint16 | container layout version
//	6      | Kind             | uint8  | format.OffloadKind
//	7      | Format           | uint8  | format.BinaryFormat declared by producer
//	8      | Compression      | uint8  | format.CompressionType of the payload
//	9      | Flags            | uint8  | Flag* bits
//	10-11  | reserved         |        | must be zero
//	12-15  | EntryCount       | uint32 | offload entries
//	16-19  | PropertySetCount | uint32 | property sets
//	20-23  | PropertyCount    | uint32 | properties over all sets
//	24-27  | ManifestOffset   | uint32 | absolute offset of the manifest
//	28-31  | ManifestSize     | uint32 |
//	32-35  | BinaryOffset     | uint32 | absolute offset of the device payload
//	36-39  | BinarySize       | uint32 |
//	40-47  | Checksum         | uint64 | xxHash64 of the stored payload
type Header struct {
	Version          uint16
	Kind             format.OffloadKind
	Format           format.BinaryFormat
	Compression      format.CompressionType
	Flags            uint8
	EntryCount       uint32
	PropertySetCount uint32
	PropertyCount    uint32
	ManifestOffset   uint32
	ManifestSize     uint32
	BinaryOffset     uint32
	BinarySize       uint32
	Checksum         uint64
}

// NewHeader creates a little-endian header for the current layout version.
func NewHeader() *Header {
	return &Header{
		Version:     CurrentVersion,
		Kind:        format.OffloadKindSYCL,
		Compression: format.CompressionNone,
	}
}

// IsBigEndian reports whether metadata fields are big-endian.
func (h *Header) IsBigEndian() bool {
	return h.Flags&FlagBigEndian != 0
}

// Engine returns the endian engine selected by the header flags.
func (h *Header) Engine() endian.EndianEngine {
	return endian.Engine(h.IsBigEndian())
}

func (h *Header) HasCompileOptions() bool { return h.Flags&FlagCompileOptions != 0 }
func (h *Header) HasLinkOptions() bool    { return h.Flags&FlagLinkOptions != 0 }
func (h *Header) HasManifest() bool       { return h.Flags&FlagManifest != 0 }

// SetFlag sets or clears the given flag bits.
func (h *Header) SetFlag(mask uint8, enabled bool) {
	if enabled {
		h.Flags |= mask
	} else {
		h.Flags &^= mask
	}
}

// Parse parses the header from exactly HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic or ErrUnsupportedVersion
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	if string(data[0:4]) != Magic {
		return errs.ErrInvalidMagic
	}

	// Flags decide the byte order of every multi-byte field, so read them first.
	h.Flags = data[9]
	if h.Flags&FlagReservedMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	engine := h.Engine()

	h.Version = engine.Uint16(data[4:6])
	h.Kind = format.OffloadKind(data[6])
	h.Format = format.BinaryFormat(data[7])
	h.Compression = format.CompressionType(data[8])
	h.EntryCount = engine.Uint32(data[12:16])
	h.PropertySetCount = engine.Uint32(data[16:20])
	h.PropertyCount = engine.Uint32(data[20:24])
	h.ManifestOffset = engine.Uint32(data[24:28])
	h.ManifestSize = engine.Uint32(data[28:32])
	h.BinaryOffset = engine.Uint32(data[32:36])
	h.BinarySize = engine.Uint32(data[36:40])
	h.Checksum = engine.Uint64(data[40:48])

	if h.Version == 0 || h.Version > CurrentVersion {
		return errs.ErrUnsupportedVersion
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Engine()

	copy(b[0:4], Magic)
	engine.PutUint16(b[4:6], h.Version)
	b[6] = uint8(h.Kind)
	b[7] = uint8(h.Format)
	b[8] = uint8(h.Compression)
	b[9] = h.Flags
	engine.PutUint32(b[12:16], h.EntryCount)
	engine.PutUint32(b[16:20], h.PropertySetCount)
	engine.PutUint32(b[20:24], h.PropertyCount)
	engine.PutUint32(b[24:28], h.ManifestOffset)
	engine.PutUint32(b[28:32], h.ManifestSize)
	engine.PutUint32(b[32:36], h.BinaryOffset)
	engine.PutUint32(b[36:40], h.BinarySize)
	engine.PutUint64(b[40:48], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
