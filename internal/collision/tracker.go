package collision

import (
	"github.com/arloliu/wxf/errs"
)

// Tracker records discriminator names by hash and rejects duplicates and collisions.
//
// Registries key their decoders by hash so lookups never compare strings on the
// hot path; the tracker guarantees the hash is a faithful stand-in for the name.
type Tracker struct {
	names map[uint64]string
	order []string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
		order: make([]string, 0),
	}
}

// Track records name under hash.
//
// Returns:
//   - ErrInvalidDiscriminator if name is empty
//   - ErrDuplicateDiscriminator if name was already tracked
//   - ErrDiscriminatorCollision if a different name already owns hash
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidDiscriminator
	}

	if existing, ok := t.names[hash]; ok {
		if existing == name {
			return errs.ErrDuplicateDiscriminator
		}

		return errs.ErrDiscriminatorCollision
	}

	t.names[hash] = name
	t.order = append(t.order, name)

	return nil
}

// Name returns the name tracked under hash.
func (t *Tracker) Name(hash uint64) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// Names returns the tracked names in registration order.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}
