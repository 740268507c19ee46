package image

import (
	"iter"

	"github.com/arloliu/devimg/descriptor"
	"github.com/arloliu/devimg/property"
)

// PropertyRange is the view of one named property set of an image.
//
// A range whose set is absent is empty and not available; iterating it
// yields nothing.
type PropertyRange struct {
	props     []descriptor.Property
	available bool
	bound     bool
}

// bind points the range at the first property set of bin named name.
func (r *PropertyRange) bind(bin *descriptor.BinaryDescriptor, name string) {
	if r.bound {
		violation("property range %q already initialized", name)
	}
	r.bound = true

	for i := range bin.PropertySets {
		set := &bin.PropertySets[i]
		if set.Name == "" {
			violation("nameless property set at index %d", i)
		}
		if set.Name == name {
			// A set without a property list binds the empty sentinel.
			if set.Properties != nil {
				r.props = set.Properties
				r.available = true
			}

			return
		}
	}
}

// IsAvailable reports whether the image contains the property set.
func (r *PropertyRange) IsAvailable() bool {
	return r.available
}

// Len returns the number of properties in the range.
func (r *PropertyRange) Len() int {
	return len(r.props)
}

// All iterates over the raw property records in container order.
func (r *PropertyRange) All() iter.Seq[*descriptor.Property] {
	return func(yield func(*descriptor.Property) bool) {
		for i := range r.props {
			if !yield(&r.props[i]) {
				return
			}
		}
	}
}

// Values iterates over decoded property values in container order.
func (r *PropertyRange) Values() iter.Seq[property.Value] {
	return func(yield func(property.Value) bool) {
		for i := range r.props {
			if !yield(property.Wrap(&r.props[i])) {
				return
			}
		}
	}
}

// Lookup returns the first property named name.
func (r *PropertyRange) Lookup(name string) (*descriptor.Property, bool) {
	for i := range r.props {
		if r.props[i].Name == name {
			return &r.props[i], true
		}
	}

	return nil, false
}
