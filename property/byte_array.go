package property

import (
	"encoding/binary"

	"github.com/arloliu/devimg/section"
)

// ByteArray is a cursor over a byte-array blob.
//
// The blob starts with the payload size in bits as a little-endian uint64.
// Consume* and DropBytes advance the cursor; Bytes returns what is left.
type ByteArray struct {
	data []byte
}

// NewByteArray wraps data without copying.
func NewByteArray(data []byte) ByteArray {
	return ByteArray{data: data}
}

// Bytes returns the unread bytes.
func (ba ByteArray) Bytes() []byte {
	return ba.data
}

// Len returns the number of unread bytes.
func (ba ByteArray) Len() int {
	return len(ba.data)
}

// Empty reports whether all bytes were consumed.
func (ba ByteArray) Empty() bool {
	return len(ba.data) == 0
}

// BitSize returns the size prefix of an unread blob.
func (ba ByteArray) BitSize() uint64 {
	ba.need(section.ByteArrayPrefix)

	return binary.LittleEndian.Uint64(ba.data)
}

// Payload returns the blob with its size prefix skipped.
func (ba ByteArray) Payload() []byte {
	ba.need(section.ByteArrayPrefix)

	return ba.data[section.ByteArrayPrefix:]
}

// DropBytes skips n bytes.
func (ba *ByteArray) DropBytes(n int) {
	ba.need(n)
	ba.data = ba.data[n:]
}

// ConsumeUint32 reads a little-endian uint32 and advances past it.
func (ba *ByteArray) ConsumeUint32() uint32 {
	ba.need(4)
	v := binary.LittleEndian.Uint32(ba.data)
	ba.data = ba.data[4:]

	return v
}

// ConsumeUint64 reads a little-endian uint64 and advances past it.
func (ba *ByteArray) ConsumeUint64() uint64 {
	ba.need(8)
	v := binary.LittleEndian.Uint64(ba.data)
	ba.data = ba.data[8:]

	return v
}

func (ba ByteArray) need(n int) {
	if n < 0 || n > len(ba.data) {
		violation("byte array: need %d bytes, have %d", n, len(ba.data))
	}
}
