package devimg

import (
	"encoding/hex"

	"github.com/arloliu/devimg/format"
	"github.com/arloliu/devimg/image"
	"github.com/arloliu/devimg/property"
)

// Report is a serializable summary of an image.
type Report struct {
	ID               uint64              `json:"id" yaml:"id"`
	Version          uint16              `json:"version" yaml:"version"`
	Kind             string              `json:"kind" yaml:"kind"`
	Format           string              `json:"format" yaml:"format"`
	Storage          string              `json:"storage" yaml:"storage"`
	Compressed       bool                `json:"compressed" yaml:"compressed"`
	Compression      string              `json:"compression,omitempty" yaml:"compression,omitempty"`
	Target           string              `json:"target" yaml:"target"`
	Size             int                 `json:"size" yaml:"size"`
	DecompressedSize int                 `json:"decompressedSize" yaml:"decompressedSize"`
	CompileOptions   *string             `json:"compileOptions" yaml:"compileOptions"`
	LinkOptions      *string             `json:"linkOptions" yaml:"linkOptions"`
	Entries          []string            `json:"entries" yaml:"entries"`
	PropertySets     []PropertySetReport `json:"propertySets" yaml:"propertySets"`
}

// PropertySetReport lists the properties of one set.
type PropertySetReport struct {
	Name       string           `json:"name" yaml:"name"`
	Properties []PropertyReport `json:"properties" yaml:"properties"`
}

// PropertyReport is one decoded property. Value holds a uint32, a string, or
// the hex encoding of a byte array (size prefix included).
type PropertyReport struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// Inspect summarizes img.
func Inspect(img *image.Image) Report {
	bin := img.Descriptor()

	r := Report{
		ID:               img.ID(),
		Version:          bin.Version,
		Kind:             bin.Kind.String(),
		Format:           img.Format().String(),
		Storage:          img.Storage().String(),
		Compressed:       img.IsCompressed(),
		Target:           img.TargetSpec(),
		Size:             img.Size(),
		DecompressedSize: img.DecompressedSize(),
		CompileOptions:   bin.CompileOptions,
		LinkOptions:      bin.LinkOptions,
		Entries:          make([]string, 0, len(bin.Entries)),
		PropertySets:     make([]PropertySetReport, 0, len(bin.PropertySets)),
	}

	if img.Storage() == image.StorageCompressed {
		r.Compression = bin.Compression.String()
	}

	for e := range bin.AllEntries() {
		r.Entries = append(r.Entries, e.Name)
	}

	for set := range bin.AllPropertySets() {
		sr := PropertySetReport{Name: set.Name, Properties: make([]PropertyReport, 0, len(set.Properties))}
		for i := range set.Properties {
			sr.Properties = append(sr.Properties, propertyReport(property.Wrap(&set.Properties[i])))
		}
		r.PropertySets = append(r.PropertySets, sr)
	}

	return r
}

func propertyReport(v property.Value) PropertyReport {
	pr := PropertyReport{Name: v.Name(), Type: v.Type().String()}

	switch v.Type() {
	case format.PropertyUint32:
		pr.Value = v.AsUint32()
	case format.PropertyByteArray:
		pr.Value = hex.EncodeToString(v.AsByteArray().Bytes())
	case format.PropertyString:
		pr.Value = v.AsCString()
	}

	return pr
}
