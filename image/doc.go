// Package image exposes a parsed device binary image: its payload, resolved
// format and the well-known property sets embedded by the offload wrapper.
//
// Three storage variants share one Image type:
//
//   - NewImage borrows a descriptor whose bytes belong to someone else. The
//     image never writes to them.
//   - NewOwned takes a raw payload and synthesizes the descriptor around it.
//   - NewCompressed wraps a descriptor whose payload is compressed. The payload
//     stays compressed until Decompress is called; the format is FormatNone
//     until then.
//
// Images are read-only after construction, except for Decompress, which must
// not run concurrently with readers of the same image.
package image
