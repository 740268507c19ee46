package compress

import (
	"fmt"
	"testing"
)

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	sizes := []int{4096, 65536, 1024 * 1024}

	for name, codec := range getAllCodecs() {
		for _, size := range sizes {
			data := spirvLikePayload(size / 4)
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%dKB", name, size/1024), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ResetTimer()
				for b.Loop() {
					if _, err := codec.Decompress(compressed); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkZstd_DecompressedSize(b *testing.B) {
	codec := NewZstdCompressor()
	compressed, err := codec.Compress(spirvLikePayload(16384))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := codec.DecompressedSize(compressed); err != nil {
			b.Fatal(err)
		}
	}
}
