package property

import (
	"bytes"
	"fmt"

	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/section"
)

// Value is a read-only view over one property record.
type Value struct {
	prop *descriptor.Property
}

// Wrap returns a Value over p. The record must outlive the Value.
func Wrap(p *descriptor.Property) Value {
	if p == nil {
		violation("nil property")
	}

	return Value{prop: p}
}

// Name returns the property name.
func (v Value) Name() string {
	return v.prop.Name
}

// Type returns the property type.
func (v Value) Type() format.PropertyType {
	return v.prop.Type
}

// Property returns the underlying record.
func (v Value) Property() *descriptor.Property {
	return v.prop
}

// Size returns the blob size recorded in the slot. It is meaningless for
// uint32 records.
func (v Value) Size() uint64 {
	return v.prop.ValSize()
}

// AsUint32 decodes an inline uint32 value.
//
// The value is reassembled byte by byte from the slot, so the result does not
// depend on the host byte order.
func (v Value) AsUint32() uint32 {
	if v.prop.Type != format.PropertyUint32 {
		violation("property %q: type mismatch: want %s, have %s", v.prop.Name, format.PropertyUint32, v.prop.Type)
	}
	if v.prop.Addr != nil {
		violation("property %q: primitive types must be stored inline", v.prop.Name)
	}

	s := &v.prop.Slot

	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}

// AsByteArray returns the whole byte-array blob, size prefix included.
func (v Value) AsByteArray() ByteArray {
	if v.prop.Type != format.PropertyByteArray {
		violation("property %q: type mismatch: want %s, have %s", v.prop.Name, format.PropertyByteArray, v.prop.Type)
	}

	return ByteArray{data: v.blob()}
}

// AsCStringBytes returns the string stored in a string or byte-array record,
// without its terminator. The result aliases the blob.
//
// Byte-array records keep their size in the first 8 bytes, which are skipped.
// The view ends at the first NUL or at the end of the blob.
func (v Value) AsCStringBytes() []byte {
	if v.prop.Type != format.PropertyString && v.prop.Type != format.PropertyByteArray {
		violation("property %q: type mismatch: want %s or %s, have %s",
			v.prop.Name, format.PropertyString, format.PropertyByteArray, v.prop.Type)
	}

	blob := v.blob()
	if v.prop.Type == format.PropertyByteArray {
		if len(blob) < section.ByteArrayPrefix {
			violation("property %q: byte array of %d bytes has no size prefix", v.prop.Name, len(blob))
		}
		blob = blob[section.ByteArrayPrefix:]
	}

	if i := bytes.IndexByte(blob, 0); i >= 0 {
		return blob[:i:i]
	}

	return blob
}

// AsCString is AsCStringBytes converted to a string.
func (v Value) AsCString() string {
	return string(v.AsCStringBytes())
}

// blob returns the external value, checking the size invariants.
func (v Value) blob() []byte {
	size := v.prop.ValSize()
	if size == 0 {
		violation("property %q: property size mismatch", v.prop.Name)
	}
	if uint64(len(v.prop.Addr)) < size {
		violation("property %q: blob of %d bytes, record says %d", v.prop.Name, len(v.prop.Addr), size)
	}

	return v.prop.Addr[:size:size]
}

// String renders the record as "[TYPE] name=value". Byte arrays are shown
// as space-separated hex octets, size prefix included.
func (v Value) String() string {
	var sb bytes.Buffer
	v.writeTo(&sb)

	return sb.String()
}

func (v Value) writeTo(buf *bytes.Buffer) {
	if !v.prop.Type.IsValid() {
		violation("property %q: unsupported property type %d", v.prop.Name, uint32(v.prop.Type))
	}

	fmt.Fprintf(buf, "[%s] %s=", v.prop.Type, v.prop.Name)

	switch v.prop.Type {
	case format.PropertyUint32:
		fmt.Fprintf(buf, "%d", v.AsUint32())
	case format.PropertyByteArray:
		for _, b := range v.AsByteArray().Bytes() {
			fmt.Fprintf(buf, "0x%x ", b)
		}
	case format.PropertyString:
		buf.Write(v.AsCStringBytes())
	}
}

func violation(msg string, args ...any) {
	panic(fmt.Errorf("%w: "+msg, append([]any{errs.ErrContractViolation}, args...)...))
}
