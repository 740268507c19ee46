package image

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/progmeta"
	"go.uber.org/zap"
)

// Storage tells who owns the payload bytes of an image.
type Storage uint8

const (
	StorageBorrowed Storage = iota
	StorageOwned
	StorageCompressed
)

func (s Storage) String() string {
	switch s {
	case StorageBorrowed:
		return "borrowed"
	case StorageOwned:
		return "owned"
	case StorageCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// lastImageID holds the most recently assigned image id; ids start at 1.
var lastImageID atomic.Uint64

func nextImageID() uint64 {
	return lastImageID.Add(1)
}

// Image is a device binary image with its metadata indexed by category.
type Image struct {
	bin     *descriptor.BinaryDescriptor
	format  format.BinaryFormat
	id      uint64
	storage Storage
	cfg     *config

	ranges          [numCategories]PropertyRange
	programMetadata []progmeta.Record

	// compressed variant state
	sizeHint     int
	decompressed bool

	closed bool
}

// NewImage creates an image over a borrowed descriptor, typically the result
// of descriptor.Parse. The descriptor and the bytes it references must stay
// unmodified for the lifetime of the image.
//
// Returns:
//   - *Image: Indexed image
//   - error: errs.ErrNilDescriptor or an option error
func NewImage(bin *descriptor.BinaryDescriptor, opts ...Option) (*Image, error) {
	if bin == nil {
		return nil, errs.ErrNilDescriptor
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newImage(bin, StorageBorrowed, cfg), nil
}

// newImage builds the image and runs the shared indexing.
func newImage(bin *descriptor.BinaryDescriptor, storage Storage, cfg *config) *Image {
	img := &Image{bin: bin, storage: storage, cfg: cfg}
	img.init()

	return img
}

func (img *Image) init() {
	img.format = img.resolveFormat()

	for c := range numCategories {
		img.ranges[c].bind(img.bin, categoryNames[c])
	}

	meta := &img.ranges[CategoryProgramMetadata]
	if meta.Len() > 0 {
		img.programMetadata = make([]progmeta.Record, 0, meta.Len())
		for v := range meta.Values() {
			img.programMetadata = append(img.programMetadata, img.cfg.mapper.Map(v))
		}
	}

	img.id = nextImageID()

	img.cfg.logger.Debug("image initialized",
		zap.Uint64("id", img.id),
		zap.Stringer("format", img.format),
		zap.Stringer("storage", img.storage),
		zap.Int("size", img.Size()),
	)
}

func (img *Image) resolveFormat() format.BinaryFormat {
	declared := img.bin.Format
	if img.storage == StorageCompressed || declared == format.FormatCompressedNone {
		return format.FormatNone
	}
	if declared != format.FormatNone && declared.IsKnown() {
		return declared
	}

	return img.cfg.sniffer.Detect(img.bin.Binary)
}

// ID returns the process-unique image id. Ids are positive.
func (img *Image) ID() uint64 {
	return img.id
}

// Format returns the resolved payload format.
func (img *Image) Format() format.BinaryFormat {
	return img.format
}

// Storage returns the storage variant of the image.
func (img *Image) Storage() Storage {
	return img.storage
}

// Descriptor returns the descriptor the image reads from. It must not be modified.
func (img *Image) Descriptor() *descriptor.BinaryDescriptor {
	return img.bin
}

// TargetSpec returns the device target specification.
func (img *Image) TargetSpec() string {
	return img.bin.TargetSpec
}

// CompileOptions returns the compile options recorded by the producer.
func (img *Image) CompileOptions() (string, bool) {
	return optionString(img.bin.CompileOptions)
}

// LinkOptions returns the link options recorded by the producer.
func (img *Image) LinkOptions() (string, bool) {
	return optionString(img.bin.LinkOptions)
}

func optionString(s *string) (string, bool) {
	if s == nil {
		return "", false
	}

	return *s, true
}

// Size returns the length of the current payload. For a compressed image that
// is the compressed length until Decompress succeeds.
func (img *Image) Size() int {
	return len(img.bin.Binary)
}

// DecompressedSize returns the payload length once decompressed. For a
// compressed image awaiting decompression it is the size recorded in the
// stream, or 0 if the stream does not record it.
func (img *Image) DecompressedSize() int {
	if img.IsCompressed() {
		return img.sizeHint
	}

	return img.Size()
}

// IsCompressed reports whether the payload still awaits decompression.
func (img *Image) IsCompressed() bool {
	return img.storage == StorageCompressed && !img.decompressed
}

// Bytes returns the current payload without any state check: compressed bytes
// before decompression. The slice must not be modified.
func (img *Image) Bytes() []byte {
	return img.bin.Binary
}

// Content returns the real payload.
//
// Returns:
//   - []byte: Payload, must not be modified
//   - error: errs.ErrNotDecompressed or errs.ErrImageClosed
func (img *Image) Content() ([]byte, error) {
	if err := img.checkContent(); err != nil {
		return nil, err
	}

	return img.bin.Binary, nil
}

// Dump writes the payload to w verbatim.
func (img *Image) Dump(w io.Writer) error {
	data, err := img.Content()
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("dump image %d: %w", img.id, err)
	}

	return nil
}

func (img *Image) checkContent() error {
	if img.closed {
		return errs.ErrImageClosed
	}
	if img.IsCompressed() {
		return errs.ErrNotDecompressed
	}

	return nil
}

// Range returns the property range of category c.
func (img *Image) Range(c Category) *PropertyRange {
	if c >= numCategories {
		violation("unknown category %d", c)
	}

	return &img.ranges[c]
}

// LookupMiscProperty finds a property of the "SYCL/misc properties" set.
func (img *Image) LookupMiscProperty(name string) (*descriptor.Property, bool) {
	return img.ranges[CategoryMiscProperties].Lookup(name)
}

// ProgramMetadataRecords returns the mapped program metadata, in property order.
func (img *Image) ProgramMetadataRecords() []progmeta.Record {
	return img.programMetadata
}

// SpecConstIDMap returns the "SYCL/specialization constants" property set.
func (img *Image) SpecConstIDMap() *PropertyRange {
	return &img.ranges[CategorySpecConstants]
}

// SpecConstDefaultValuesMap returns the "SYCL/specialization constants default values" property set.
func (img *Image) SpecConstDefaultValuesMap() *PropertyRange {
	return &img.ranges[CategorySpecConstantsDefaultValues]
}

// DeviceLibReqMask returns the "SYCL/devicelib req mask" property set.
func (img *Image) DeviceLibReqMask() *PropertyRange {
	return &img.ranges[CategoryDeviceLibReqMask]
}

// DeviceLibMetadata returns the "SYCL/devicelib metadata" property set.
func (img *Image) DeviceLibMetadata() *PropertyRange {
	return &img.ranges[CategoryDeviceLibMetadata]
}

// KernelParamOptInfo returns the "SYCL/kernel param opt" property set.
func (img *Image) KernelParamOptInfo() *PropertyRange {
	return &img.ranges[CategoryKernelParamOptInfo]
}

// AssertUsed returns the "SYCL/assert used" property set.
func (img *Image) AssertUsed() *PropertyRange {
	return &img.ranges[CategoryAssertUsed]
}

// ImplicitLocalArg returns the "SYCL/implicit local arg" property set.
func (img *Image) ImplicitLocalArg() *PropertyRange {
	return &img.ranges[CategoryImplicitLocalArg]
}

// ProgramMetadata returns the "SYCL/program metadata" property set.
func (img *Image) ProgramMetadata() *PropertyRange {
	return &img.ranges[CategoryProgramMetadata]
}

// ExportedSymbols returns the "SYCL/exported symbols" property set.
func (img *Image) ExportedSymbols() *PropertyRange {
	return &img.ranges[CategoryExportedSymbols]
}

// ImportedSymbols returns the "SYCL/imported symbols" property set.
func (img *Image) ImportedSymbols() *PropertyRange {
	return &img.ranges[CategoryImportedSymbols]
}

// DeviceGlobals returns the "SYCL/device globals" property set.
func (img *Image) DeviceGlobals() *PropertyRange {
	return &img.ranges[CategoryDeviceGlobals]
}

// DeviceRequirements returns the "SYCL/device requirements" property set.
func (img *Image) DeviceRequirements() *PropertyRange {
	return &img.ranges[CategoryDeviceRequirements]
}

// HostPipes returns the "SYCL/host pipes" property set.
func (img *Image) HostPipes() *PropertyRange {
	return &img.ranges[CategoryHostPipes]
}

// VirtualFunctions returns the "SYCL/virtual functions" property set.
func (img *Image) VirtualFunctions() *PropertyRange {
	return &img.ranges[CategoryVirtualFunctions]
}

// RegisteredKernels returns the "SYCL/registered kernels" property set.
func (img *Image) RegisteredKernels() *PropertyRange {
	return &img.ranges[CategoryRegisteredKernels]
}

// MiscProperties returns the "SYCL/misc properties" property set.
func (img *Image) MiscProperties() *PropertyRange {
	return &img.ranges[CategoryMiscProperties]
}

// Close releases the payload of owned and compressed images. Borrowed bytes
// are left to their owner. Content operations fail after Close.
func (img *Image) Close() error {
	if img.closed {
		return nil
	}
	img.closed = true

	if img.storage != StorageBorrowed {
		img.bin.Binary = nil
	}

	return nil
}

func violation(msg string, args ...any) {
	panic(fmt.Errorf("%w: "+msg, append([]any{errs.ErrContractViolation}, args...)...))
}
