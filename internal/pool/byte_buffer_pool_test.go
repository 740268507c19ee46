package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.MustWrite([]byte("DB"))
	require.NoError(t, bb.WriteByte('I'))
	n, err := bb.WriteString("N")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = bb.Write([]byte{0x00})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	assert.Equal(t, []byte("DBIN\x00"), bb.Bytes())
}

func TestByteBuffer_Pad(t *testing.T) {
	tests := []struct {
		name     string
		initial  int
		align    int
		expected int
	}{
		{"already aligned", 8, 8, 8},
		{"pad to 8", 5, 8, 8},
		{"no alignment", 5, 1, 5},
		{"zero alignment", 5, 0, 5},
		{"empty buffer", 0, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(16)
			bb.MustWrite(make([]byte, tt.initial))
			bb.Pad(tt.align)
			require.Equal(t, tt.expected, bb.Len())
		})
	}
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("abcd"))

	bb.Grow(10)
	assert.GreaterOrEqual(t, bb.Cap()-bb.Len(), 10)
	assert.Equal(t, []byte("abcd"), bb.Bytes())

	capBefore := bb.Cap()
	bb.Grow(1)
	assert.Equal(t, capBefore, bb.Cap(), "grow should be a no-op with enough room")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", out.String())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("reset on put", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		bb.MustWrite([]byte("data"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		bb := NewByteBuffer(128)
		require.NotPanics(t, func() { p.Put(bb) })
	})

	t.Run("concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				bb := GetContainerBuffer()
				bb.MustWrite([]byte{byte(i)})
				PutContainerBuffer(bb)
			}(i)
		}
		wg.Wait()
	})
}
