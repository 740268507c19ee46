package collision

import (
	"fmt"

	"github.com/arloliu/devimg/errs"
	"github.com/arloliu/devimg/internal/hash"
)

// Tracker detects duplicate names while a container is being built.
//
// Names are bucketed by their xxHash64 id. Two different names sharing an id
// are a hash collision and are both accepted; only an exact repeat is
// rejected.
type Tracker struct {
	byID       map[uint64][]string
	names      []string
	duplicate  error
	collisions int
}

// NewTracker creates a tracker that reports repeats with the given sentinel error.
func NewTracker(duplicate error) *Tracker {
	return &Tracker{
		byID:      make(map[uint64][]string),
		names:     make([]string, 0),
		duplicate: duplicate,
	}
}

// Track records name.
//
// Returns:
//   - errs.ErrInvalidPropertyName if name is empty
//   - the tracker's duplicate error if name was already tracked
func (t *Tracker) Track(name string) error {
	if name == "" {
		return errs.ErrInvalidPropertyName
	}

	id := hash.ID(name)
	bucket := t.byID[id]
	for _, existing := range bucket {
		if existing == name {
			return fmt.Errorf("%w: %q", t.duplicate, name)
		}
	}
	if len(bucket) > 0 {
		t.collisions++
	}

	t.byID[id] = append(bucket, name)
	t.names = append(t.names, name)

	return nil
}

// Has reports whether name was tracked.
func (t *Tracker) Has(name string) bool {
	for _, existing := range t.byID[hash.ID(name)] {
		if existing == name {
			return true
		}
	}

	return false
}

// HasCollision reports whether two distinct names shared a hash id.
func (t *Tracker) HasCollision() bool {
	return t.collisions > 0
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked names.
func (t *Tracker) Reset() {
	clear(t.byID)
	t.names = t.names[:0]
	t.collisions = 0
}
