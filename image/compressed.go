package image

import (
	"bytes"
	"fmt"

	"github.com/arloliu/devimg/compress"
	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"go.uber.org/zap"
)

// NewCompressed creates an image over a descriptor whose payload is
// compressed. The descriptor is copied; its bytes are still borrowed until
// Decompress replaces the payload with an owned buffer.
//
// The decompressor is resolved from bin.Compression unless WithDecompressor
// is given; an unset compression type means zstd.
//
// Returns:
//   - *Image: Image with format FormatNone, awaiting decompression
//   - error: errs.ErrNilDescriptor, errs.ErrUnsupportedCompression or an option error
func NewCompressed(bin *descriptor.BinaryDescriptor, opts ...Option) (*Image, error) {
	if bin == nil {
		return nil, errs.ErrNilDescriptor
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.decompressor == nil {
		comp := bin.Compression
		if comp == 0 {
			comp = format.CompressionZstd
		}
		codec, err := compress.GetCodec(comp)
		if err != nil {
			return nil, err
		}
		cfg.decompressor = codec
	}

	img := newImage(bin.Clone(), StorageCompressed, cfg)
	img.sizeHint = img.peekSize()

	return img, nil
}

func (img *Image) peekSize() int {
	peeker, ok := img.cfg.decompressor.(compress.SizePeeker)
	if !ok {
		img.cfg.logger.Debug("decompressor cannot report the decompressed size", zap.Uint64("id", img.id))
		return 0
	}

	size, err := peeker.DecompressedSize(img.bin.Binary)
	if err != nil {
		img.cfg.logger.Debug("decompressed size unknown", zap.Uint64("id", img.id), zap.Error(err))
		return 0
	}

	return size
}

// Decompress replaces the compressed payload with its decompressed form and
// detects the payload format. It succeeds at most once.
//
// Returns:
//   - errs.ErrNotCompressed for images of other storage variants
//   - errs.ErrAlreadyDecompressed on a second call
//   - errs.ErrImageClosed after Close
//   - errs.ErrDecompression wrapping the codec error
//   - errs.ErrDecompressedSizeMismatch if the stream recorded another size
func (img *Image) Decompress() error {
	switch {
	case img.closed:
		return errs.ErrImageClosed
	case img.storage != StorageCompressed:
		return errs.ErrNotCompressed
	case img.decompressed:
		return errs.ErrAlreadyDecompressed
	}

	compressed := img.bin.Binary
	out, err := img.cfg.decompressor.Decompress(compressed)
	if err != nil {
		return fmt.Errorf("%w: image %d: %w", errs.ErrDecompression, img.id, err)
	}

	if img.sizeHint > 0 && len(out) != img.sizeHint {
		return fmt.Errorf("%w: image %d: got %d bytes, want %d", errs.ErrDecompressedSizeMismatch, img.id, len(out), img.sizeHint)
	}

	// Pass-through codecs return the input; the payload must not alias borrowed bytes.
	if len(out) > 0 && len(compressed) > 0 && &out[0] == &compressed[0] {
		out = bytes.Clone(out)
	}

	img.bin.Binary = out
	img.bin.Format = img.cfg.sniffer.Detect(out)
	img.format = img.bin.Format
	img.decompressed = true

	img.cfg.logger.Debug("image decompressed",
		zap.Uint64("id", img.id),
		zap.Int("compressed", len(compressed)),
		zap.Int("decompressed", len(out)),
		zap.Stringer("format", img.format),
	)

	return nil
}
