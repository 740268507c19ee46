package image

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/progmeta"
	"github.com/arloliu/devimg/property"
	"github.com/arloliu/devimg/sniff"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var spirvPayload = append([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}, bytes.Repeat([]byte{0x11}, 56)...)

func requireViolation(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, errs.ErrContractViolation)
	}()

	fn()
}

func testDescriptor(t *testing.T) *descriptor.BinaryDescriptor {
	t.Helper()

	b, err := descriptor.NewBuilder(
		descriptor.WithTargetSpec(format.TargetSPIRV64),
		descriptor.WithCompileOptions("-O3"),
	)
	require.NoError(t, err)

	b.SetBinary(spirvPayload)
	b.AddEntry(descriptor.OffloadEntry{Name: "vadd"})
	b.AddEntry(descriptor.OffloadEntry{Name: "vmul"})
	require.NoError(t, b.AddPropertySet(SetProgramMetadata,
		descriptor.NewUint32Property("vadd@reqd_sub_group_size", 16),
		descriptor.NewStringProperty("vadd@name", "vadd"),
	))
	require.NoError(t, b.AddPropertySet(SetMiscProperties,
		descriptor.NewUint32Property("optLevel", 2),
		descriptor.NewByteArrayProperty("blob", []byte{0x01, 0xFF}),
	))
	require.NoError(t, b.AddPropertySet(SetAssertUsed,
		descriptor.NewUint32Property("vadd", 1),
	))

	data, err := b.Build()
	require.NoError(t, err)

	bin, err := descriptor.Parse(data)
	require.NoError(t, err)

	return bin
}

func TestNewImage(t *testing.T) {
	bin := testDescriptor(t)
	img, err := NewImage(bin)
	require.NoError(t, err)

	require.Positive(t, img.ID())
	require.Equal(t, StorageBorrowed, img.Storage())
	require.Equal(t, format.FormatSPIRV, img.Format(), "sniffed from the payload")
	require.Equal(t, len(spirvPayload), img.Size())
	require.Equal(t, img.Size(), img.DecompressedSize())
	require.False(t, img.IsCompressed())
	require.Same(t, bin, img.Descriptor())
	require.Equal(t, format.TargetSPIRV64, img.TargetSpec())

	opts, ok := img.CompileOptions()
	require.True(t, ok)
	require.Equal(t, "-O3", opts)
	_, ok = img.LinkOptions()
	require.False(t, ok)

	require.True(t, img.AssertUsed().IsAvailable())
	require.Equal(t, 1, img.AssertUsed().Len())
	require.True(t, img.ProgramMetadata().IsAvailable())
	require.False(t, img.SpecConstIDMap().IsAvailable())

	p, ok := img.LookupMiscProperty("optLevel")
	require.True(t, ok)
	require.Equal(t, uint32(2), property.Wrap(p).AsUint32())
	_, ok = img.LookupMiscProperty("vadd")
	require.False(t, ok, "lookup is restricted to the misc properties set")

	records := img.ProgramMetadataRecords()
	require.Len(t, records, 2)
	require.Equal(t, progmeta.Record{Name: "vadd@reqd_sub_group_size", Type: progmeta.MetadataUint32, Uint32: 16}, records[0])
	require.Equal(t, progmeta.MetadataString, records[1].Type)
	require.Equal(t, "vadd", records[1].Text)

	content, err := img.Content()
	require.NoError(t, err)
	require.Same(t, &bin.Binary[0], &content[0])
}

func TestNewImage_NilDescriptor(t *testing.T) {
	_, err := NewImage(nil)
	require.ErrorIs(t, err, errs.ErrNilDescriptor)

	_, err = NewCompressed(nil)
	require.ErrorIs(t, err, errs.ErrNilDescriptor)
}

func TestNewImage_InvalidOptions(t *testing.T) {
	bin := testDescriptor(t)

	_, err := NewImage(bin, WithSniffer(nil))
	require.Error(t, err)
	_, err = NewImage(bin, WithMapper(nil))
	require.Error(t, err)
	_, err = NewImage(bin, WithDecompressor(nil))
	require.Error(t, err)
}

func TestImage_FormatResolution(t *testing.T) {
	native := sniff.Func(func([]byte) format.BinaryFormat { return format.FormatNative })

	tests := []struct {
		name     string
		declared format.BinaryFormat
		want     format.BinaryFormat
	}{
		{"declared format is trusted", format.FormatLLVMIRBitcode, format.FormatLLVMIRBitcode},
		{"none is sniffed", format.FormatNone, format.FormatNative},
		{"unknown value is sniffed", format.BinaryFormat(42), format.FormatNative},
		{"compressed marker stays none", format.FormatCompressedNone, format.FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := &descriptor.BinaryDescriptor{Format: tt.declared, Binary: []byte("payload")}
			img, err := NewImage(bin, WithSniffer(native))
			require.NoError(t, err)
			require.Equal(t, tt.want, img.Format())
		})
	}
}

func TestImage_MissingCategory(t *testing.T) {
	img, err := NewImage(&descriptor.BinaryDescriptor{Binary: []byte{1}})
	require.NoError(t, err)

	for _, c := range Categories() {
		r := img.Range(c)
		require.False(t, r.IsAvailable(), c.String())
		require.Zero(t, r.Len())

		n := 0
		for range r.All() {
			n++
		}
		for range r.Values() {
			n++
		}
		require.Zero(t, n)
	}
	require.Empty(t, img.ProgramMetadataRecords())
}

func TestImage_CategoryAccessors(t *testing.T) {
	var sets []descriptor.PropertySet
	for _, c := range Categories() {
		sets = append(sets, descriptor.PropertySet{
			Name:       c.String(),
			Properties: []descriptor.Property{descriptor.NewUint32Property("c", uint32(c))},
		})
	}
	img, err := NewImage(&descriptor.BinaryDescriptor{PropertySets: sets})
	require.NoError(t, err)

	accessors := map[Category]*PropertyRange{
		CategorySpecConstants:              img.SpecConstIDMap(),
		CategorySpecConstantsDefaultValues: img.SpecConstDefaultValuesMap(),
		CategoryDeviceLibReqMask:           img.DeviceLibReqMask(),
		CategoryDeviceLibMetadata:          img.DeviceLibMetadata(),
		CategoryKernelParamOptInfo:         img.KernelParamOptInfo(),
		CategoryAssertUsed:                 img.AssertUsed(),
		CategoryImplicitLocalArg:           img.ImplicitLocalArg(),
		CategoryProgramMetadata:            img.ProgramMetadata(),
		CategoryExportedSymbols:            img.ExportedSymbols(),
		CategoryImportedSymbols:            img.ImportedSymbols(),
		CategoryDeviceGlobals:              img.DeviceGlobals(),
		CategoryDeviceRequirements:         img.DeviceRequirements(),
		CategoryHostPipes:                  img.HostPipes(),
		CategoryVirtualFunctions:           img.VirtualFunctions(),
		CategoryRegisteredKernels:          img.RegisteredKernels(),
		CategoryMiscProperties:             img.MiscProperties(),
	}
	require.Len(t, accessors, len(Categories()))

	for c, r := range accessors {
		require.True(t, r.IsAvailable(), c.String())
		p, ok := r.Lookup("c")
		require.True(t, ok)
		require.Equal(t, uint32(c), property.Wrap(p).AsUint32(), c.String())
	}

	requireViolation(t, func() { img.Range(numCategories) })
}

func TestImage_NamelessPropertySet(t *testing.T) {
	bin := &descriptor.BinaryDescriptor{PropertySets: []descriptor.PropertySet{{Name: ""}}}
	requireViolation(t, func() { _, _ = NewImage(bin) })
}

func TestImage_UniqueIDs(t *testing.T) {
	const workers = 8
	const perWorker = 64

	var mu sync.Mutex
	seen := make(map[uint64]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				img, err := NewOwned([]byte{0})
				if err != nil {
					panic(err)
				}
				mu.Lock()
				seen[img.ID()] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
	for id := range seen {
		require.GreaterOrEqual(t, id, uint64(1))
	}
}

func TestImage_Dump(t *testing.T) {
	img, err := NewImage(testDescriptor(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, img.Dump(&buf))
	require.Equal(t, spirvPayload, buf.Bytes())

	failing := failingWriter{}
	require.ErrorIs(t, img.Dump(failing), errWrite)
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestImage_Close(t *testing.T) {
	bin := testDescriptor(t)
	img, err := NewImage(bin)
	require.NoError(t, err)

	require.NoError(t, img.Close())
	require.NoError(t, img.Close())
	require.NotNil(t, bin.Binary, "borrowed bytes are left alone")

	_, err = img.Content()
	require.ErrorIs(t, err, errs.ErrImageClosed)
	require.ErrorIs(t, img.Dump(&bytes.Buffer{}), errs.ErrImageClosed)
}

func TestImage_Print(t *testing.T) {
	img, err := NewImage(testDescriptor(t))
	require.NoError(t, err)

	var sb strings.Builder
	img.Print(&sb)
	out := sb.String()

	require.Contains(t, out, "    Version  : 1\n")
	require.Contains(t, out, "    Format   : 2 (SPIR-V)\n")
	require.Contains(t, out, "    Target   : spir64\n")
	require.Contains(t, out, "    Compile options : -O3\n")
	require.Contains(t, out, "    Link options    : NULL\n")
	require.Contains(t, out, "    Entries  : vadd vmul \n")
	require.Contains(t, out, "      Category SYCL/misc properties [2]:\n")
	require.Contains(t, out, "        [UINT32] optLevel=2\n")
	require.Contains(t, out, "        [Byte array] blob=0x10 0x0 0x0 0x0 0x0 0x0 0x0 0x0 0x1 0xff \n")
	require.Contains(t, out, "        [String] vadd@name=vadd\n")

	sb.Reset()
	var nilImg *Image
	nilImg.Print(&sb)
	require.Equal(t, "  --- Image <nil>\n", sb.String())
}

func TestImage_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	img, err := NewOwned([]byte("0123456789abcdef"), WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("image initialized").All()
	require.Len(t, entries, 1)
	require.Equal(t, img.ID(), entries[0].ContextMap()["id"])
}

func TestPackageLogger(t *testing.T) {
	require.NotNil(t, Logger())

	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	l := zap.NewExample()
	SetLogger(l)
	require.Same(t, l, Logger())
}
