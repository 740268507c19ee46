package image

import (
	"errors"
	"testing"

	"github.com/arloliu/devimg/compress"
	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/stretchr/testify/require"
)

func compressedDescriptor(t *testing.T, comp format.CompressionType) *descriptor.BinaryDescriptor {
	t.Helper()

	b, err := descriptor.NewBuilder(descriptor.WithCompression(comp))
	require.NoError(t, err)
	b.SetBinary(spirvPayload)
	require.NoError(t, b.AddPropertySet(SetMiscProperties, descriptor.NewUint32Property("optLevel", 1)))

	data, err := b.Build()
	require.NoError(t, err)

	bin, err := descriptor.Parse(data)
	require.NoError(t, err)
	require.Equal(t, format.FormatCompressedNone, bin.Format)

	return bin
}

func TestNewCompressed_Decompress(t *testing.T) {
	for _, comp := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(comp.String(), func(t *testing.T) {
			bin := compressedDescriptor(t, comp)
			compressedLen := len(bin.Binary)

			img, err := NewCompressed(bin)
			require.NoError(t, err)

			require.Equal(t, StorageCompressed, img.Storage())
			require.True(t, img.IsCompressed())
			require.Equal(t, format.FormatNone, img.Format())
			require.Equal(t, compressedLen, img.Size())
			if comp != format.CompressionLZ4 {
				require.Equal(t, len(spirvPayload), img.DecompressedSize())
			} else {
				require.Zero(t, img.DecompressedSize(), "lz4 blocks do not record their size")
			}
			require.True(t, img.MiscProperties().IsAvailable())

			_, err = img.Content()
			require.ErrorIs(t, err, errs.ErrNotDecompressed)

			require.NoError(t, img.Decompress())

			require.False(t, img.IsCompressed())
			require.Equal(t, format.FormatSPIRV, img.Format())
			require.Equal(t, len(spirvPayload), img.Size())
			require.Equal(t, len(spirvPayload), img.DecompressedSize())

			content, err := img.Content()
			require.NoError(t, err)
			require.Equal(t, spirvPayload, content)

			require.ErrorIs(t, img.Decompress(), errs.ErrAlreadyDecompressed)
		})
	}
}

func TestNewCompressed_DoesNotTouchSource(t *testing.T) {
	bin := compressedDescriptor(t, format.CompressionZstd)
	source := bin.Binary

	img, err := NewCompressed(bin)
	require.NoError(t, err)
	require.NotSame(t, bin, img.Descriptor())
	require.NoError(t, img.Decompress())

	require.Equal(t, format.FormatCompressedNone, bin.Format)
	require.Same(t, &source[0], &bin.Binary[0])
	require.NoError(t, img.Close())
	require.NotNil(t, bin.Binary)
}

func TestNewCompressed_DefaultsToZstd(t *testing.T) {
	bin := compressedDescriptor(t, format.CompressionZstd)
	bin.Compression = 0

	img, err := NewCompressed(bin)
	require.NoError(t, err)
	require.NoError(t, img.Decompress())
	require.Equal(t, spirvPayload, img.Bytes())
}

func TestNewCompressed_UnsupportedCompression(t *testing.T) {
	bin := compressedDescriptor(t, format.CompressionZstd)
	bin.Compression = format.CompressionType(99)

	_, err := NewCompressed(bin)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestNewCompressed_CorruptPayload(t *testing.T) {
	bin := compressedDescriptor(t, format.CompressionZstd)
	bin.Binary = []byte("not a zstd frame")

	img, err := NewCompressed(bin)
	require.NoError(t, err)

	err = img.Decompress()
	require.ErrorIs(t, err, errs.ErrDecompression)
	require.True(t, img.IsCompressed())
}

type stubDecompressor struct {
	out []byte
	err error
}

func (s stubDecompressor) Decompress([]byte) ([]byte, error) { return s.out, s.err }

func TestNewCompressed_InjectedDecompressor(t *testing.T) {
	bin := compressedDescriptor(t, format.CompressionZstd)

	t.Run("no size peeking", func(t *testing.T) {
		img, err := NewCompressed(bin, WithDecompressor(stubDecompressor{out: []byte("\x7fELF")}))
		require.NoError(t, err)
		require.Zero(t, img.DecompressedSize())

		require.NoError(t, img.Decompress())
		require.Equal(t, format.FormatNative, img.Format())
	})

	t.Run("codec error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		img, err := NewCompressed(bin, WithDecompressor(stubDecompressor{err: boom}))
		require.NoError(t, err)

		err = img.Decompress()
		require.ErrorIs(t, err, errs.ErrDecompression)
		require.ErrorIs(t, err, boom)
	})
}

type lyingCodec struct {
	compress.Codec
}

func (lyingCodec) DecompressedSize([]byte) (int, error) { return 1, nil }

func TestNewCompressed_SizeMismatch(t *testing.T) {
	bin := compressedDescriptor(t, format.CompressionZstd)

	img, err := NewCompressed(bin, WithDecompressor(lyingCodec{Codec: compress.NewZstdCompressor()}))
	require.NoError(t, err)
	require.Equal(t, 1, img.DecompressedSize())

	require.ErrorIs(t, img.Decompress(), errs.ErrDecompressedSizeMismatch)
}

func TestNewCompressed_PassThroughCodecCopies(t *testing.T) {
	bin := &descriptor.BinaryDescriptor{
		Format:      format.FormatCompressedNone,
		Compression: format.CompressionNone,
		Binary:      append([]byte(nil), spirvPayload...),
	}

	img, err := NewCompressed(bin)
	require.NoError(t, err)
	require.NoError(t, img.Decompress())

	require.Equal(t, bin.Binary, img.Bytes())
	require.NotSame(t, &bin.Binary[0], &img.Bytes()[0])
}

func TestDecompress_Errors(t *testing.T) {
	owned, err := NewOwned([]byte{1})
	require.NoError(t, err)
	require.ErrorIs(t, owned.Decompress(), errs.ErrNotCompressed)

	img, err := NewCompressed(compressedDescriptor(t, format.CompressionZstd))
	require.NoError(t, err)
	require.NoError(t, img.Close())
	require.ErrorIs(t, img.Decompress(), errs.ErrImageClosed)
}
