// Package property decodes the typed values of device image property records.
//
// A property record stores a uint32 inline in its 8-byte slot, or points at an
// external blob holding a byte array or a NUL-terminated string:
//
//	Type        | Storage                                  | Accessors
//	------------|------------------------------------------|-------------------------------
//	UINT32      | Slot[0..3], little-endian                | AsUint32
//	Byte array  | blob = u64 LE size in bits + payload     | AsByteArray, AsCString(Bytes)
//	String      | blob = bytes + NUL                       | AsCString, AsCStringBytes
//
// Accessors alias the record's blob and never copy it. Requesting a value of
// the wrong type is a programming error and panics with an error wrapping
// errs.ErrContractViolation.
package property
