package property

import (
	"fmt"
	"testing"

	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/stretchr/testify/require"
)

// requireViolation asserts that fn panics with a contract violation.
func requireViolation(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, errs.ErrContractViolation)
	}()

	fn()
}

func TestAsUint32_RoundTrip(t *testing.T) {
	for _, want := range []uint32{0, 1, 42, 0x01020304, 0xFFFFFFFF} {
		t.Run(fmt.Sprint(want), func(t *testing.T) {
			p := descriptor.NewUint32Property("v", want)
			require.Equal(t, want, Wrap(&p).AsUint32())
		})
	}
}

func TestAsUint32_IgnoresUpperSlotBytes(t *testing.T) {
	p := descriptor.NewUint32Property("v", 7)
	p.Slot[4] = 0xFF
	p.Slot[7] = 0xFF

	require.Equal(t, uint32(7), Wrap(&p).AsUint32())
}

func TestAsUint32_Violations(t *testing.T) {
	str := descriptor.NewStringProperty("s", "x")
	requireViolation(t, func() { Wrap(&str).AsUint32() })

	external := descriptor.NewUint32Property("u", 1)
	external.Addr = []byte{1, 0, 0, 0}
	requireViolation(t, func() { Wrap(&external).AsUint32() })
}

func TestAsByteArray(t *testing.T) {
	p := descriptor.NewByteArrayProperty("ba", []byte{0x01, 0xFF})
	ba := Wrap(&p).AsByteArray()

	require.Equal(t, 10, ba.Len())
	require.Equal(t, uint64(16), ba.BitSize())
	require.Equal(t, []byte{0x01, 0xFF}, ba.Payload())
	require.Same(t, &p.Addr[0], &ba.Bytes()[0])
}

func TestAsByteArray_Violations(t *testing.T) {
	u := descriptor.NewUint32Property("u", 1)
	requireViolation(t, func() { Wrap(&u).AsByteArray() })

	str := descriptor.NewStringProperty("s", "x")
	requireViolation(t, func() { Wrap(&str).AsByteArray() })

	empty := descriptor.Property{Name: "e", Type: format.PropertyByteArray, Addr: []byte{}}
	requireViolation(t, func() { Wrap(&empty).AsByteArray() })
}

func TestAsCString(t *testing.T) {
	t.Run("string record", func(t *testing.T) {
		p := descriptor.NewStringProperty("s", "spir64_gen")
		v := Wrap(&p)
		require.Equal(t, "spir64_gen", v.AsCString())
		require.Same(t, &p.Addr[0], &v.AsCStringBytes()[0])
	})

	t.Run("byte array record skips the size prefix", func(t *testing.T) {
		p := descriptor.NewByteArrayProperty("ba", []byte("kernel\x00tail"))
		b := Wrap(&p).AsCStringBytes()
		require.Equal(t, []byte("kernel"), b)
		require.Same(t, &p.Addr[8], &b[0])
	})

	t.Run("unterminated blob ends at blob end", func(t *testing.T) {
		p := descriptor.NewRawProperty("raw", format.PropertyString, []byte("abc"))
		require.Equal(t, "abc", Wrap(&p).AsCString())
	})

	t.Run("violations", func(t *testing.T) {
		u := descriptor.NewUint32Property("u", 1)
		requireViolation(t, func() { Wrap(&u).AsCString() })

		short := descriptor.NewRawProperty("short", format.PropertyByteArray, []byte{1, 2})
		requireViolation(t, func() { Wrap(&short).AsCString() })
	})
}

func TestWrap_Nil(t *testing.T) {
	requireViolation(t, func() { Wrap(nil) })
}

func TestValue_String(t *testing.T) {
	u := descriptor.NewUint32Property("n", 42)
	ba := descriptor.NewRawProperty("n", format.PropertyByteArray, []byte{0x01, 0xFF})
	s := descriptor.NewStringProperty("n", "text")

	require.Equal(t, "[UINT32] n=42", Wrap(&u).String())
	require.Equal(t, "[Byte array] n=0x1 0xff ", Wrap(&ba).String())
	require.Equal(t, "[String] n=text", Wrap(&s).String())
	require.Equal(t, "[UINT32] n=42", fmt.Sprint(Wrap(&u)))

	bad := descriptor.Property{Name: "x", Type: format.PropertyType(9)}
	requireViolation(t, func() { _ = Wrap(&bad).String() })
}

func TestValue_Accessors(t *testing.T) {
	p := descriptor.NewStringProperty("name", "v")
	v := Wrap(&p)

	require.Equal(t, "name", v.Name())
	require.Equal(t, format.PropertyString, v.Type())
	require.Equal(t, uint64(2), v.Size())
	require.Same(t, &p, v.Property())
}

func BenchmarkAsUint32(b *testing.B) {
	p := descriptor.NewUint32Property("v", 0xCAFEBABE)
	v := Wrap(&p)

	b.ReportAllocs()
	for b.Loop() {
		_ = v.AsUint32()
	}
}

func BenchmarkAsCStringBytes(b *testing.B) {
	p := descriptor.NewByteArrayProperty("v", []byte("some_kernel_name\x00"))
	v := Wrap(&p)

	b.ReportAllocs()
	for b.Loop() {
		_ = v.AsCStringBytes()
	}
}
