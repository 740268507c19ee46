package section

import (
	"fmt"

	"github.com/arloliu/devimg/endian"
	"github.com/arloliu/devimg/errs"
)

// Cursor reads metadata records sequentially from a container.
//
// Byte slices returned by Cursor alias the container; they are capped so
// that appending to them can never write into the container.
type Cursor struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewCursor creates a cursor positioned at offset.
func NewCursor(data []byte, offset int, engine endian.EndianEngine) *Cursor {
	return &Cursor{data: data, off: offset, engine: engine}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

func (c *Cursor) need(n int) error {
	if n < 0 || c.off+n > len(c.data) || c.off+n < c.off {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncated, n, c.off, len(c.data)-c.off)
	}

	return nil
}

// Uint32 reads a 4-byte field.
func (c *Cursor) Uint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := c.engine.Uint32(c.data[c.off : c.off+4])
	c.off += 4

	return v, nil
}

// Uint64 reads an 8-byte field.
func (c *Cursor) Uint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := c.engine.Uint64(c.data[c.off : c.off+8])
	c.off += 8

	return v, nil
}

// Bytes returns the next n bytes without copying.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.off : c.off+n : c.off+n]
	c.off += n

	return b, nil
}

// Slot returns the next inline property slot. Slots are stored verbatim.
func (c *Cursor) Slot() ([PropertySlotSize]byte, error) {
	var slot [PropertySlotSize]byte
	b, err := c.Bytes(PropertySlotSize)
	if err != nil {
		return slot, err
	}
	copy(slot[:], b)

	return slot, nil
}

// String reads a uint32 length-prefixed string.
func (c *Cursor) String() (string, error) {
	n, err := c.Uint32()
	if err != nil {
		return "", err
	}
	if n > MaxStringLength {
		return "", fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, n)
	}

	b, err := c.Bytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}
