package descriptor

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/internal/hash"
	"github.com/arloliu/devimg/section"
)

// Parse decodes a container without copying its sections.
//
// The returned descriptor's Binary, Manifest and property blobs alias data;
// callers must keep data alive and unmodified for the descriptor's lifetime.
//
// Parameters:
//   - data: Complete container bytes
//
// Returns:
//   - *BinaryDescriptor: Borrowed view over data
//   - error: Header errors, errs.ErrTruncated, errs.ErrInvalidOffset,
//     errs.ErrChecksumMismatch, errs.ErrNamelessPropertySet,
//     errs.ErrInvalidPropertyType or errs.ErrInvalidPropertySize
func Parse(data []byte) (*BinaryDescriptor, error) {
	hdr, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	bin := &BinaryDescriptor{
		Version:     hdr.Version,
		Kind:        hdr.Kind,
		Format:      hdr.Format,
		Compression: hdr.Compression,
	}

	payload, err := sectionBytes(data, hdr.BinaryOffset, hdr.BinarySize, "binary")
	if err != nil {
		return nil, err
	}
	if hash.Checksum(payload) != hdr.Checksum {
		return nil, errs.ErrChecksumMismatch
	}
	bin.Binary = payload

	if hdr.HasManifest() {
		manifest, err := sectionBytes(data, hdr.ManifestOffset, hdr.ManifestSize, "manifest")
		if err != nil {
			return nil, err
		}
		bin.Manifest = manifest
	}

	cur := section.NewCursor(data, section.HeaderSize, hdr.Engine())
	if err := parseStrings(cur, &hdr, bin); err != nil {
		return nil, err
	}
	if err := parseEntries(cur, &hdr, bin); err != nil {
		return nil, err
	}
	if err := parsePropertySets(cur, &hdr, bin); err != nil {
		return nil, err
	}

	return bin, nil
}

func sectionBytes(data []byte, offset, size uint32, name string) ([]byte, error) {
	start := uint64(offset)
	end := start + uint64(size)
	if start < section.HeaderSize || end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %s section [%d, %d) in %d bytes", errs.ErrInvalidOffset, name, start, end, len(data))
	}

	return data[start:end:end], nil
}

func parseStrings(cur *section.Cursor, hdr *section.Header, bin *BinaryDescriptor) error {
	target, err := cur.String()
	if err != nil {
		return fmt.Errorf("target spec: %w", err)
	}
	bin.TargetSpec = target

	if hdr.HasCompileOptions() {
		opts, err := cur.String()
		if err != nil {
			return fmt.Errorf("compile options: %w", err)
		}
		bin.CompileOptions = &opts
	}

	if hdr.HasLinkOptions() {
		opts, err := cur.String()
		if err != nil {
			return fmt.Errorf("link options: %w", err)
		}
		bin.LinkOptions = &opts
	}

	return nil
}

func parseEntries(cur *section.Cursor, hdr *section.Header, bin *BinaryDescriptor) error {
	if hdr.EntryCount == 0 {
		return nil
	}

	// An entry takes at least 24 bytes; reject absurd counts before allocating.
	if uint64(hdr.EntryCount)*24 > uint64(cur.Remaining()) {
		return fmt.Errorf("%w: %d entries", errs.ErrTruncated, hdr.EntryCount)
	}

	bin.Entries = make([]OffloadEntry, 0, hdr.EntryCount)
	for i := range hdr.EntryCount {
		var e OffloadEntry
		var err error
		if e.Name, err = cur.String(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Addr, err = cur.Uint64(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Size, err = cur.Uint64(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Flags, err = cur.Uint32(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		bin.Entries = append(bin.Entries, e)
	}

	return nil
}

func parsePropertySets(cur *section.Cursor, hdr *section.Header, bin *BinaryDescriptor) error {
	if hdr.PropertySetCount == 0 {
		return nil
	}
	if uint64(hdr.PropertySetCount)*8 > uint64(cur.Remaining()) {
		return fmt.Errorf("%w: %d property sets", errs.ErrTruncated, hdr.PropertySetCount)
	}

	bin.PropertySets = make([]PropertySet, 0, hdr.PropertySetCount)
	total := uint32(0)
	for i := range hdr.PropertySetCount {
		name, err := cur.String()
		if err != nil {
			return fmt.Errorf("property set %d: %w", i, err)
		}
		if name == "" {
			return fmt.Errorf("%w: property set %d", errs.ErrNamelessPropertySet, i)
		}

		count, err := cur.Uint32()
		if err != nil {
			return fmt.Errorf("property set %q: %w", name, err)
		}
		total += count
		if total > hdr.PropertyCount {
			return fmt.Errorf("%w: property set %q exceeds the declared property count %d", errs.ErrTruncated, name, hdr.PropertyCount)
		}

		// A property record takes at least 16 bytes.
		if uint64(count)*16 > uint64(cur.Remaining()) {
			return fmt.Errorf("%w: property set %q declares %d properties", errs.ErrTruncated, name, count)
		}

		set := PropertySet{Name: name, Properties: make([]Property, 0, count)}
		for j := range count {
			p, err := parseProperty(cur)
			if err != nil {
				return fmt.Errorf("property set %q, property %d: %w", name, j, err)
			}
			set.Properties = append(set.Properties, p)
		}
		bin.PropertySets = append(bin.PropertySets, set)
	}

	if total != hdr.PropertyCount {
		return fmt.Errorf("%w: found %d properties, header declares %d", errs.ErrTruncated, total, hdr.PropertyCount)
	}

	return nil
}

func parseProperty(cur *section.Cursor) (Property, error) {
	var p Property

	name, err := cur.String()
	if err != nil {
		return p, err
	}
	p.Name = name

	typ, err := cur.Uint32()
	if err != nil {
		return p, err
	}
	p.Type = format.PropertyType(typ)
	if !p.Type.IsValid() {
		return p, fmt.Errorf("%w: %d for %q", errs.ErrInvalidPropertyType, typ, name)
	}

	if p.Slot, err = cur.Slot(); err != nil {
		return p, err
	}

	if p.Type == format.PropertyUint32 {
		return p, nil
	}

	size := binary.LittleEndian.Uint64(p.Slot[:])
	if size == 0 || size > section.MaxSectionSize {
		return p, fmt.Errorf("%w: %d bytes for %q", errs.ErrInvalidPropertySize, size, name)
	}
	if p.Addr, err = cur.Bytes(int(size)); err != nil {
		return p, err
	}

	return p, nil
}
