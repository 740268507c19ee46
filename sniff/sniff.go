// Package sniff detects the format of a device payload from its leading bytes.
package sniff

import (
	"bytes"
	"encoding/binary"

	"github.com/arloliu/devimg/format"
)

// Sniffer inspects payload bytes and reports their format.
//
// Implementations must not modify data and must be safe for concurrent use.
// format.FormatNone means the format was not recognised.
type Sniffer interface {
	Detect(data []byte) format.BinaryFormat
}

// Func adapts a plain function to Sniffer.
type Func func(data []byte) format.BinaryFormat

// Detect calls f(data).
func (f Func) Detect(data []byte) format.BinaryFormat {
	return f(data)
}

const (
	spirvMagic          uint32 = 0x07230203
	bitcodeWrapperMagic uint32 = 0x0B17C0DE
)

var (
	bitcodeMagic = []byte("BC\xC0\xDE")
	elfMagic     = []byte("\x7fELF")
	arMagic      = []byte("!<arch>\n")
)

type magicSniffer struct{}

// Default recognises SPIR-V modules (either byte order), LLVM IR bitcode
// (raw or wrapped) and native ELF objects or ar archives.
var Default Sniffer = magicSniffer{}

func (magicSniffer) Detect(data []byte) format.BinaryFormat {
	if len(data) >= 4 {
		le := binary.LittleEndian.Uint32(data)
		be := binary.BigEndian.Uint32(data)

		switch {
		case le == spirvMagic || be == spirvMagic:
			return format.FormatSPIRV
		case le == bitcodeWrapperMagic:
			return format.FormatLLVMIRBitcode
		case bytes.HasPrefix(data, bitcodeMagic):
			return format.FormatLLVMIRBitcode
		case bytes.HasPrefix(data, elfMagic):
			return format.FormatNative
		}
	}

	if bytes.HasPrefix(data, arMagic) {
		return format.FormatNative
	}

	return format.FormatNone
}
