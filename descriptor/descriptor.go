// Package descriptor models the parsed content of a device image container.
//
// A BinaryDescriptor produced by Parse is a borrowed view: its byte slices
// (the payload, the manifest and every property blob) alias the container
// buffer and must never be written to. Descriptors built in memory follow the
// same rule once handed to an image.
package descriptor

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/section"
)

// CurrentVersion is the descriptor version written by this package.
const CurrentVersion = section.CurrentVersion

// Property is one raw metadata record.
//
// Uint32 values live inline in Slot (little-endian, bytes 0..3) and have a nil
// Addr. Byte-array and string values live in Addr and Slot holds their
// little-endian length.
type Property struct {
	Name string
	Type format.PropertyType
	Addr []byte
	Slot [section.PropertySlotSize]byte
}

// ValSize interprets the inline slot as a little-endian size.
func (p *Property) ValSize() uint64 {
	return binary.LittleEndian.Uint64(p.Slot[:])
}

// IsInline reports whether the value is stored in the slot.
func (p *Property) IsInline() bool {
	return p.Addr == nil
}

// NewUint32Property creates an inline uint32 property.
func NewUint32Property(name string, v uint32) Property {
	p := Property{Name: name, Type: format.PropertyUint32}
	p.Slot[0] = byte(v)
	p.Slot[1] = byte(v >> 8)
	p.Slot[2] = byte(v >> 16)
	p.Slot[3] = byte(v >> 24)

	return p
}

// NewByteArrayProperty creates a byte-array property.
//
// The stored blob is the payload prefixed with its size in bits as a
// little-endian uint64, which is how producers lay out byte arrays.
func NewByteArrayProperty(name string, payload []byte) Property {
	blob := make([]byte, section.ByteArrayPrefix+len(payload))
	binary.LittleEndian.PutUint64(blob, uint64(len(payload))*8)
	copy(blob[section.ByteArrayPrefix:], payload)

	return newBlobProperty(name, format.PropertyByteArray, blob)
}

// NewStringProperty creates a NUL-terminated string property.
func NewStringProperty(name string, s string) Property {
	blob := make([]byte, len(s)+1)
	copy(blob, s)

	return newBlobProperty(name, format.PropertyString, blob)
}

// NewRawProperty creates a property with a caller-provided blob and type.
// The blob is used as-is.
func NewRawProperty(name string, typ format.PropertyType, blob []byte) Property {
	return newBlobProperty(name, typ, blob)
}

func newBlobProperty(name string, typ format.PropertyType, blob []byte) Property {
	p := Property{Name: name, Type: typ, Addr: blob}
	binary.LittleEndian.PutUint64(p.Slot[:], uint64(len(blob)))

	return p
}

// PropertySet is a named, ordered group of properties.
type PropertySet struct {
	Name       string
	Properties []Property
}

// OffloadEntry is a named symbol record listed in the container.
type OffloadEntry struct {
	Name  string
	Addr  uint64
	Size  uint64
	Flags uint32
}

// BinaryDescriptor is the parsed representation of one container.
type BinaryDescriptor struct {
	Version     uint16
	Kind        format.OffloadKind
	Format      format.BinaryFormat
	Compression format.CompressionType
	TargetSpec  string
	// CompileOptions and LinkOptions are nil when the producer recorded none.
	CompileOptions *string
	LinkOptions    *string
	// Manifest is nil when absent.
	Manifest     []byte
	Binary       []byte
	Entries      []OffloadEntry
	PropertySets []PropertySet
}

// Clone returns a shallow copy: fields are copied, slices still point at the
// same backing arrays.
func (d *BinaryDescriptor) Clone() *BinaryDescriptor {
	c := *d
	return &c
}

// BinarySize returns the payload length.
func (d *BinaryDescriptor) BinarySize() int {
	return len(d.Binary)
}

// AllEntries iterates over the offload entries in container order.
func (d *BinaryDescriptor) AllEntries() iter.Seq[*OffloadEntry] {
	return func(yield func(*OffloadEntry) bool) {
		for i := range d.Entries {
			if !yield(&d.Entries[i]) {
				return
			}
		}
	}
}

// AllPropertySets iterates over the property sets in container order.
func (d *BinaryDescriptor) AllPropertySets() iter.Seq[*PropertySet] {
	return func(yield func(*PropertySet) bool) {
		for i := range d.PropertySets {
			if !yield(&d.PropertySets[i]) {
				return
			}
		}
	}
}

// PropertyCount returns the number of properties over all sets.
func (d *BinaryDescriptor) PropertyCount() int {
	n := 0
	for i := range d.PropertySets {
		n += len(d.PropertySets[i].Properties)
	}

	return n
}

// StringOption returns a pointer to s, for the nullable option fields.
func StringOption(s string) *string {
	return &s
}
