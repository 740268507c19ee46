package image

import (
	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/format"
)

// NewOwned creates an image that takes ownership of data, a bare device
// payload with no container around it. The caller must not touch data
// afterwards.
//
// The synthesized descriptor has no entries, property sets or manifest and
// empty compile and link options. The format is detected from data and the
// target is "spir64" for SPIR-V payloads, "<unknown>" otherwise.
func NewOwned(data []byte, opts ...Option) (*Image, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	detected := cfg.sniffer.Detect(data)
	target := format.TargetUnknown
	if detected == format.FormatSPIRV {
		target = format.TargetSPIRV64
	}

	bin := &descriptor.BinaryDescriptor{
		Version:        descriptor.CurrentVersion,
		Kind:           format.OffloadKindSYCL,
		Format:         detected,
		Compression:    format.CompressionNone,
		TargetSpec:     target,
		CompileOptions: descriptor.StringOption(""),
		LinkOptions:    descriptor.StringOption(""),
		Binary:         data,
	}

	return newImage(bin, StorageOwned, cfg), nil
}
