package format

type (
	BinaryFormat    uint8
	PropertyType    uint32
	OffloadKind     uint8
	CompressionType uint8
)

const (
	FormatNone           BinaryFormat = 0x0 // FormatNone means the format is unknown or not resolved yet.
	FormatNative         BinaryFormat = 0x1 // FormatNative represents a target-native object (ELF or archive).
	FormatSPIRV          BinaryFormat = 0x2 // FormatSPIRV represents a SPIR-V module.
	FormatLLVMIRBitcode  BinaryFormat = 0x3 // FormatLLVMIRBitcode represents an LLVM IR bitcode module.
	FormatCompressedNone BinaryFormat = 0x4 // FormatCompressedNone marks a compressed payload of not yet known format.

	PropertyUnknown   PropertyType = 0x0 // PropertyUnknown is never written by a valid producer.
	PropertyUint32    PropertyType = 0x1 // PropertyUint32 stores a 32-bit value inline.
	PropertyByteArray PropertyType = 0x2 // PropertyByteArray stores a size-prefixed blob.
	PropertyString    PropertyType = 0x3 // PropertyString stores a NUL-terminated string.

	OffloadKindUnknown OffloadKind = 0x0 // OffloadKindUnknown is the zero value.
	OffloadKindHost    OffloadKind = 0x1 // OffloadKindHost marks host code.
	OffloadKindOpenMP  OffloadKind = 0x2 // OffloadKindOpenMP marks OpenMP offload code.
	OffloadKindCUDA    OffloadKind = 0x3 // OffloadKindCUDA marks CUDA offload code.
	OffloadKindSYCL    OffloadKind = 0x4 // OffloadKindSYCL marks SYCL offload code.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Known device target specifications written by producers.
const (
	TargetUnknown     = "<unknown>"
	TargetSPIRV64     = "spir64"
	TargetSPIRV64X86  = "spir64_x86_64"
	TargetSPIRV64Gen  = "spir64_gen"
	TargetSPIRV64FPGA = "spir64_fpga"
	TargetNVPTX64     = "nvptx64"
	TargetAMDGCN      = "amdgcn"
)

// IsKnown reports whether f is one of the defined binary formats.
func (f BinaryFormat) IsKnown() bool {
	return f <= FormatCompressedNone
}

func (f BinaryFormat) String() string {
	switch f {
	case FormatNone:
		return "None"
	case FormatNative:
		return "Native"
	case FormatSPIRV:
		return "SPIR-V"
	case FormatLLVMIRBitcode:
		return "LLVM IR bitcode"
	case FormatCompressedNone:
		return "Compressed"
	default:
		return "Unknown"
	}
}

// IsValid reports whether t is a property type a producer may emit.
func (t PropertyType) IsValid() bool {
	return t >= PropertyUint32 && t <= PropertyString
}

func (t PropertyType) String() string {
	switch t {
	case PropertyUint32:
		return "UINT32"
	case PropertyByteArray:
		return "Byte array"
	case PropertyString:
		return "String"
	default:
		return "Unknown"
	}
}

func (k OffloadKind) String() string {
	switch k {
	case OffloadKindHost:
		return "Host"
	case OffloadKindOpenMP:
		return "OpenMP"
	case OffloadKindCUDA:
		return "CUDA"
	case OffloadKindSYCL:
		return "SYCL"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
