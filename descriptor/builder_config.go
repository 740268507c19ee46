package descriptor

import (
	"fmt"

	"github.com/arloliu/devimg/compress"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/internal/options"
	"github.com/arloliu/devimg/section"
)

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*Builder]

// WithVersion sets the container version (1..section.CurrentVersion).
func WithVersion(v uint16) BuilderOption {
	return options.New(func(b *Builder) error {
		if v == 0 || v > section.CurrentVersion {
			return fmt.Errorf("invalid container version: %d", v)
		}
		b.header.Version = v

		return nil
	})
}

// WithKind sets the offload kind.
func WithKind(kind format.OffloadKind) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.header.Kind = kind
	})
}

// WithFormat declares the payload format. Leave it unset (FormatNone) to let
// readers sniff the payload.
func WithFormat(f format.BinaryFormat) BuilderOption {
	return options.New(func(b *Builder) error {
		if !f.IsKnown() {
			return fmt.Errorf("invalid binary format: %d", f)
		}
		b.header.Format = f

		return nil
	})
}

// WithTargetSpec sets the device target specification string.
func WithTargetSpec(target string) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.targetSpec = target
	})
}

// WithCompileOptions records the compile options string.
func WithCompileOptions(opts string) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.compileOptions = &opts
	})
}

// WithLinkOptions records the link options string.
func WithLinkOptions(opts string) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.linkOptions = &opts
	})
}

// WithManifest attaches a manifest section.
func WithManifest(manifest []byte) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.manifest = manifest
	})
}

// WithCompression compresses the payload at build time. Any type other than
// format.CompressionNone marks the container format.FormatCompressedNone.
func WithCompression(comp format.CompressionType) BuilderOption {
	return options.New(func(b *Builder) error {
		codec, err := compress.CreateCodec(comp, "payload")
		if err != nil {
			return err
		}
		b.header.Compression = comp
		b.codec = codec

		return nil
	})
}

// WithBigEndian writes metadata fields big-endian.
func WithBigEndian() BuilderOption {
	return options.NoError(func(b *Builder) {
		b.header.SetFlag(section.FlagBigEndian, true)
	})
}
