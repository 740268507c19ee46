// Package devimg reads device binary images: self-describing containers that
// carry a compiled device payload (SPIR-V, LLVM IR bitcode or native code)
// together with named property sets emitted by the offload wrapper.
//
// # Core Features
//
//   - Zero-copy parsing of the container format (descriptor.Parse)
//   - Typed access to uint32, byte-array and string properties (property.Value)
//   - Lazy per-category property views (image.PropertyRange)
//   - Borrowed, heap-owned and compressed-at-rest image variants
//   - Payload format detection from magic numbers (sniff.Default)
//   - Zstd, S2 and LZ4 compressed payloads (compress)
//
// # Basic Usage
//
// Opening a container and reading its metadata:
//
//	img, err := devimg.Open(data)
//	if err != nil {
//	    return err
//	}
//	if img.IsCompressed() {
//	    if err := img.Decompress(); err != nil {
//	        return err
//	    }
//	}
//	if p, ok := img.LookupMiscProperty("optLevel"); ok {
//	    fmt.Println(property.Wrap(p).AsUint32())
//	}
//	for v := range img.AssertUsed().Values() {
//	    fmt.Println(v)
//	}
//
// Wrapping a bare payload:
//
//	img, _ := devimg.FromBytes(spirv)
//	fmt.Println(img.Format(), img.TargetSpec()) // SPIR-V spir64
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the descriptor
// and image packages. Producers build containers with descriptor.NewBuilder.
package devimg

import (
	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/image"
)

// Open parses a container and returns an image over it.
//
// The image borrows data: the caller must keep it alive and unmodified while
// the image is in use. Containers that declare a compressed payload yield a
// compressed image that must be decompressed before its content is read.
//
// Parameters:
//   - data: Complete container bytes
//   - opts: Image options (sniffer, decompressor, mapper, logger)
//
// Returns:
//   - *image.Image: Borrowed or compressed image
//   - error: Container parse error or option error
func Open(data []byte, opts ...image.Option) (*image.Image, error) {
	bin, err := descriptor.Parse(data)
	if err != nil {
		return nil, err
	}

	if bin.Format == format.FormatCompressedNone {
		return image.NewCompressed(bin, opts...)
	}

	return image.NewImage(bin, opts...)
}

// FromBytes wraps a bare device payload in a heap-owned image. The image
// takes ownership of data.
func FromBytes(data []byte, opts ...image.Option) (*image.Image, error) {
	return image.NewOwned(data, opts...)
}

// NewBuilder creates a container builder.
func NewBuilder(opts ...descriptor.BuilderOption) (*descriptor.Builder, error) {
	return descriptor.NewBuilder(opts...)
}
