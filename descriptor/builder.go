package descriptor

import (
	"fmt"

	"github.com/arloliu/devimg/compress"
	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/internal/collision"
	"github.com/arloliu/devimg/internal/hash"
	"github.com/arloliu/devimg/internal/options"
	"github.com/arloliu/devimg/internal/pool"
	"github.com/arloliu/devimg/section"
)

// Builder assembles device image containers. It plays the producer role in
// tools and tests.
//
// Note: Builder is NOT thread-safe.
type Builder struct {
	header         *section.Header
	targetSpec     string
	compileOptions *string
	linkOptions    *string
	manifest       []byte
	binary         []byte
	entries        []OffloadEntry
	sets           []PropertySet
	setNames       *collision.Tracker
	codec          compress.Compressor
}

// NewBuilder creates a builder for a SYCL container of the current version.
//
// Returns:
//   - *Builder: Builder ready to accept entries, property sets and a payload
//   - error: The first option error
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{
		header:     section.NewHeader(),
		targetSpec: format.TargetUnknown,
		setNames:   collision.NewTracker(errs.ErrDuplicatePropertySet),
	}

	if err := options.Apply(b, opts...); err != nil {
		return nil, err
	}

	return b, nil
}

// SetBinary sets the uncompressed device payload.
func (b *Builder) SetBinary(data []byte) {
	b.binary = data
}

// AddEntry appends an offload entry.
func (b *Builder) AddEntry(entry OffloadEntry) {
	b.entries = append(b.entries, entry)
}

// AddPropertySet appends a property set.
//
// Returns:
//   - errs.ErrInvalidPropertyName for an empty set or property name
//   - errs.ErrDuplicatePropertySet if a set with the same name was added
//   - errs.ErrDuplicateProperty if two properties share a name
//   - errs.ErrInvalidPropertyType / errs.ErrInvalidPropertySize for malformed records
func (b *Builder) AddPropertySet(name string, props ...Property) error {
	if name == "" {
		return fmt.Errorf("%w: empty property set name", errs.ErrInvalidPropertyName)
	}

	names := collision.NewTracker(errs.ErrDuplicateProperty)
	for i := range props {
		p := &props[i]
		if err := names.Track(p.Name); err != nil {
			return fmt.Errorf("property set %q: %w", name, err)
		}
		if err := validateProperty(p); err != nil {
			return fmt.Errorf("property set %q: %w", name, err)
		}
	}

	if err := b.setNames.Track(name); err != nil {
		return err
	}
	b.sets = append(b.sets, PropertySet{Name: name, Properties: props})

	return nil
}

func validateProperty(p *Property) error {
	if !p.Type.IsValid() {
		return fmt.Errorf("%w: %d for %q", errs.ErrInvalidPropertyType, p.Type, p.Name)
	}

	if p.Type == format.PropertyUint32 {
		if p.Addr != nil {
			return fmt.Errorf("%w: uint32 property %q must be inline", errs.ErrInvalidPropertySize, p.Name)
		}

		return nil
	}

	if len(p.Addr) == 0 || p.ValSize() != uint64(len(p.Addr)) {
		return fmt.Errorf("%w: %q records %d bytes, blob has %d", errs.ErrInvalidPropertySize, p.Name, p.ValSize(), len(p.Addr))
	}

	return nil
}

func (b *Builder) storedPayload() ([]byte, error) {
	if b.codec == nil || b.header.Compression == format.CompressionNone {
		return b.binary, nil
	}

	compressed, err := b.codec.Compress(b.binary)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	return compressed, nil
}

func (b *Builder) storedFormat() format.BinaryFormat {
	if b.codec != nil && b.header.Compression != format.CompressionNone {
		return format.FormatCompressedNone
	}

	return b.header.Format
}

// Descriptor returns the in-memory descriptor the builder describes, with the
// payload compressed when compression is configured. Property blobs are
// shared with the builder.
func (b *Builder) Descriptor() (*BinaryDescriptor, error) {
	payload, err := b.storedPayload()
	if err != nil {
		return nil, err
	}

	return &BinaryDescriptor{
		Version:        b.header.Version,
		Kind:           b.header.Kind,
		Format:         b.storedFormat(),
		Compression:    b.header.Compression,
		TargetSpec:     b.targetSpec,
		CompileOptions: b.compileOptions,
		LinkOptions:    b.linkOptions,
		Manifest:       b.manifest,
		Binary:         payload,
		Entries:        append([]OffloadEntry(nil), b.entries...),
		PropertySets:   append([]PropertySet(nil), b.sets...),
	}, nil
}

// Build serializes the container.
//
// Returns:
//   - []byte: Newly allocated container bytes owned by the caller
//   - error: Compression errors, errs.ErrStringTooLong or errs.ErrPayloadTooLarge
func (b *Builder) Build() ([]byte, error) {
	payload, err := b.storedPayload()
	if err != nil {
		return nil, err
	}

	hdr := *b.header
	hdr.Format = b.storedFormat()
	hdr.SetFlag(section.FlagCompileOptions, b.compileOptions != nil)
	hdr.SetFlag(section.FlagLinkOptions, b.linkOptions != nil)
	hdr.SetFlag(section.FlagManifest, b.manifest != nil)

	buf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(buf)

	buf.MustWrite(make([]byte, section.HeaderSize))
	w := section.NewWriter(buf, hdr.Engine())

	if err := b.writeMetadata(w, &hdr); err != nil {
		return nil, err
	}

	if b.manifest != nil {
		w.Align()
		if hdr.ManifestOffset, hdr.ManifestSize, err = sectionBounds(w.Len(), len(b.manifest)); err != nil {
			return nil, err
		}
		w.PutBytes(b.manifest)
	}

	w.Align()
	if hdr.BinaryOffset, hdr.BinarySize, err = sectionBounds(w.Len(), len(payload)); err != nil {
		return nil, err
	}
	w.PutBytes(payload)
	hdr.Checksum = hash.Checksum(payload)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	copy(out[:section.HeaderSize], hdr.Bytes())

	return out, nil
}

func sectionBounds(offset, size int) (uint32, uint32, error) {
	if uint64(offset)+uint64(size) > section.MaxSectionSize {
		return 0, 0, fmt.Errorf("%w: section of %d bytes at offset %d", errs.ErrPayloadTooLarge, size, offset)
	}

	return uint32(offset), uint32(size), nil //nolint: gosec
}

func (b *Builder) writeMetadata(w *section.Writer, hdr *section.Header) error {
	if err := w.PutString(b.targetSpec); err != nil {
		return fmt.Errorf("target spec: %w", err)
	}
	if b.compileOptions != nil {
		if err := w.PutString(*b.compileOptions); err != nil {
			return fmt.Errorf("compile options: %w", err)
		}
	}
	if b.linkOptions != nil {
		if err := w.PutString(*b.linkOptions); err != nil {
			return fmt.Errorf("link options: %w", err)
		}
	}

	hdr.EntryCount = uint32(len(b.entries)) //nolint: gosec
	for i := range b.entries {
		e := &b.entries[i]
		if err := w.PutString(e.Name); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		w.PutUint64(e.Addr)
		w.PutUint64(e.Size)
		w.PutUint32(e.Flags)
	}

	hdr.PropertySetCount = uint32(len(b.sets)) //nolint: gosec
	hdr.PropertyCount = 0
	for i := range b.sets {
		set := &b.sets[i]
		if err := w.PutString(set.Name); err != nil {
			return fmt.Errorf("property set %d: %w", i, err)
		}
		w.PutUint32(uint32(len(set.Properties)))         //nolint: gosec
		hdr.PropertyCount += uint32(len(set.Properties)) //nolint: gosec

		for j := range set.Properties {
			p := &set.Properties[j]
			if err := w.PutString(p.Name); err != nil {
				return fmt.Errorf("property set %q: %w", set.Name, err)
			}
			w.PutUint32(uint32(p.Type))
			w.PutSlot(p.Slot)
			if p.Type != format.PropertyUint32 {
				w.PutBytes(p.Addr)
			}
		}
	}

	return nil
}
