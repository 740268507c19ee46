package property

import (
	"testing"

	"github.com/arloliu/devimg/descriptor"
	"github.com/stretchr/testify/require"
)

func TestByteArray_Consume(t *testing.T) {
	payload := []byte{
		0x2A, 0x00, 0x00, 0x00, // uint32 42
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // uint64
		0xEE,
	}
	p := descriptor.NewByteArrayProperty("ba", payload)
	ba := Wrap(&p).AsByteArray()

	require.Equal(t, uint64(len(payload)*8), ba.BitSize())
	ba.DropBytes(8)
	require.Equal(t, uint32(42), ba.ConsumeUint32())
	require.Equal(t, uint64(0x0102030405060708), ba.ConsumeUint64())
	require.Equal(t, 1, ba.Len())
	require.False(t, ba.Empty())
	require.Equal(t, []byte{0xEE}, ba.Bytes())

	ba.DropBytes(1)
	require.True(t, ba.Empty())
}

func TestByteArray_Overrun(t *testing.T) {
	ba := NewByteArray([]byte{1, 2, 3})

	requireViolation(t, func() { ba.ConsumeUint32() })
	requireViolation(t, func() { ba.ConsumeUint64() })
	requireViolation(t, func() { ba.DropBytes(4) })
	requireViolation(t, func() { ba.DropBytes(-1) })
	requireViolation(t, func() { ba.BitSize() })
	requireViolation(t, func() { ba.Payload() })

	require.Equal(t, 3, ba.Len())
}
