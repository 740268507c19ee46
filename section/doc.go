// Package section defines the physical layout of a device image container.
//
// A container is a fixed header followed by a metadata region and two raw
// sections:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (48 bytes, fixed)                     │
//	├──────────────────────────────────────────────┤
//	│ Metadata region                              │
//	│  - target spec string                        │
//	│  - compile options string (flag bit 0)       │
//	│  - link options string (flag bit 1)          │
//	│  - offload entries                           │
//	│      name, addr u64, size u64, flags u32     │
//	│  - property sets                             │
//	│      name, count u32, then count properties  │
//	│      name, type u32, slot [8]u8, blob        │
//	├──────────────────────────────────────────────┤
//	│ Padding (0-7 bytes)                          │
//	├──────────────────────────────────────────────┤
//	│ Manifest (optional, flag bit 2)              │
//	├──────────────────────────────────────────────┤
//	│ Padding (0-7 bytes)                          │
//	├──────────────────────────────────────────────┤
//	│ Binary payload (possibly compressed)         │
//	└──────────────────────────────────────────────┘
//
// Strings are a uint32 length followed by the bytes. Every multi-byte field
// uses the byte order selected by FlagBigEndian, except the property slot:
// it is copied verbatim, and producers pack it little-endian. A uint32
// property keeps its value in slot bytes 0..3; for byte-array and string
// properties the slot holds the blob length and the blob follows the record.
package section
