package section

import (
	"fmt"

	"github.com/arloliu/devimg/endian"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/internal/pool"
)

// Writer appends metadata records to a pooled buffer.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a writer over buf.
func NewWriter(buf *pool.ByteBuffer, engine endian.EndianEngine) *Writer {
	return &Writer{buf: buf, engine: engine}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) PutUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

func (w *Writer) PutUint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

// PutSlot writes an inline property slot verbatim.
func (w *Writer) PutSlot(slot [PropertySlotSize]byte) {
	w.buf.MustWrite(slot[:])
}

// PutBytes writes raw bytes.
func (w *Writer) PutBytes(b []byte) {
	w.buf.MustWrite(b)
}

// PutString writes a uint32 length-prefixed string.
func (w *Writer) PutString(s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, len(s))
	}

	w.buf.Grow(4 + len(s))
	w.PutUint32(uint32(len(s))) //nolint: gosec
	_, _ = w.buf.WriteString(s)

	return nil
}

// Align pads with zeros up to the next SectionAlignment boundary.
func (w *Writer) Align() {
	w.buf.Pad(SectionAlignment)
}
