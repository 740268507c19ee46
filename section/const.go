package section

import "math"

const (
	// Magic identifies a device image container.
	Magic = "DBIN"

	// CurrentVersion is the container layout version written by producers.
	CurrentVersion uint16 = 1

	// Header flag bits (byte 9).
	FlagCompileOptions = 0x01 // compile options string present
	FlagLinkOptions    = 0x02 // link options string present
	FlagManifest       = 0x04 // manifest section present
	FlagBigEndian      = 0x08 // metadata fields are big-endian
	FlagReservedMask   = 0xF0 // must be zero
)

const (
	HeaderSize       = 48             // fixed header size in bytes
	PropertySlotSize = 8              // inline value slot of a property record
	ByteArrayPrefix  = 8              // size prefix at the start of every byte-array blob
	SectionAlignment = 8              // manifest and binary sections start 8-byte aligned
	MaxSectionSize   = math.MaxUint32 // offsets and sizes are stored as uint32
	MaxStringLength  = 1 << 20        // sanity bound for names and option strings
)
