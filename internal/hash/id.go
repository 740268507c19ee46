package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a name. Builders use it to detect duplicate
// property set and property names.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a payload as stored in the container header.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
