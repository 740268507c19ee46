// Package progmeta normalises program metadata properties into records a
// runtime adapter can consume.
package progmeta

import (
	"fmt"

	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/property"
)

// RecordType tags the value carried by a Record.
type RecordType uint8

const (
	MetadataUint32 RecordType = iota + 1
	MetadataPointer
	MetadataString
)

func (t RecordType) String() string {
	switch t {
	case MetadataUint32:
		return "uint32"
	case MetadataPointer:
		return "pointer"
	case MetadataString:
		return "string"
	default:
		return "unknown"
	}
}

// Record is one normalised program metadata entry.
//
// Exactly one of the value fields is meaningful, selected by Type. Data
// aliases the property blob.
type Record struct {
	Name   string
	Type   RecordType
	Uint32 uint32
	Data   []byte
	Text   string
	// Size is the blob size for pointer records.
	Size uint64
}

// Mapper converts a program metadata property into a Record.
type Mapper interface {
	Map(v property.Value) Record
}

// MapperFunc adapts a plain function to Mapper.
type MapperFunc func(v property.Value) Record

// Map calls f(v).
func (f MapperFunc) Map(v property.Value) Record {
	return f(v)
}

type defaultMapper struct{}

// Default maps uint32 properties to MetadataUint32, byte arrays to
// MetadataPointer over the whole blob and strings to MetadataString.
var Default Mapper = defaultMapper{}

func (defaultMapper) Map(v property.Value) Record {
	rec := Record{Name: v.Name()}

	switch v.Type() {
	case format.PropertyUint32:
		rec.Type = MetadataUint32
		rec.Uint32 = v.AsUint32()
	case format.PropertyByteArray:
		rec.Type = MetadataPointer
		rec.Data = v.AsByteArray().Bytes()
		rec.Size = v.Size()
	case format.PropertyString:
		rec.Type = MetadataString
		rec.Text = v.AsCString()
	default:
		panic(fmt.Errorf("%w: program metadata %q has unsupported property type %d",
			errs.ErrContractViolation, v.Name(), uint32(v.Type())))
	}

	return rec
}
