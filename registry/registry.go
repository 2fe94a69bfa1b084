// Package registry maps discriminator names to record decoders.
//
// WXF carries no type information beyond its tags, so a stream that holds
// records of several shapes names each shape with a String discriminator. A
// Registry resolves that name to the stream.DecodeFunc that knows the shape:
//
//	reg := registry.New[Shape]()
//	reg.MustRegister("Circle", readCircle)
//	reg.MustRegister("Polygon", readPolygon)
//
//	name, shape, err := reg.ReadTagged(r)
//
// Names are keyed by their xxHash64. Registering two names that hash alike is
// rejected, so a lookup by hash always identifies exactly one name.
//
// # Thread Safety
//
// A Registry is safe for concurrent use. Registration normally happens once at
// start-up, after which lookups only take a read lock.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/internal/collision"
	"github.com/arloliu/wxf/internal/hash"
	"github.com/arloliu/wxf/stream"
)

// Registry holds the decoders of one abstract record type T.
type Registry[T any] struct {
	mu       sync.RWMutex
	decoders map[uint64]stream.DecodeFunc[T]
	tracker  *collision.Tracker
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		decoders: make(map[uint64]stream.DecodeFunc[T]),
		tracker:  collision.NewTracker(),
	}
}

// Register binds name to fn.
//
// Returns:
//   - ErrInvalidDiscriminator: name is empty or fn is nil
//   - ErrDuplicateDiscriminator: name is already registered
//   - ErrDiscriminatorCollision: a different name has the same hash
func (reg *Registry[T]) Register(name string, fn stream.DecodeFunc[T]) error {
	if fn == nil {
		return fmt.Errorf("%w: nil decoder for %q", errs.ErrInvalidDiscriminator, name)
	}

	id := hash.ID(name)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if err := reg.tracker.Track(name, id); err != nil {
		if existing, ok := reg.tracker.Name(id); ok && existing != name {
			return fmt.Errorf("%w: %q and %q", err, name, existing)
		}

		return fmt.Errorf("%w: %q", err, name)
	}
	reg.decoders[id] = fn

	return nil
}

// MustRegister is like Register but panics on error.
func (reg *Registry[T]) MustRegister(name string, fn stream.DecodeFunc[T]) {
	if err := reg.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the decoder registered under name.
func (reg *Registry[T]) Lookup(name string) (stream.DecodeFunc[T], bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	fn, ok := reg.decoders[hash.ID(name)]

	return fn, ok
}

// Names returns the registered names in registration order.
func (reg *Registry[T]) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return slices.Clone(reg.tracker.Names())
}

// Len returns the number of registered names.
func (reg *Registry[T]) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return reg.tracker.Count()
}

// Decode decodes the next value of r with the decoder registered under name.
//
// An unknown name fails with ErrUnknownDiscriminator without consuming input,
// and r stays usable.
func (reg *Registry[T]) Decode(name string, r *stream.Reader) (T, error) {
	fn, ok := reg.Lookup(name)
	if !ok {
		var zero T
		return zero, errs.At("Decode", r.Offset(), errs.ErrUnknownDiscriminator, fmt.Sprintf("%q", name))
	}

	return fn(r)
}

// ReadTagged reads a String discriminator and decodes the value that follows it.
//
// Unlike Decode, every failure here ends the session: once the name has been
// consumed, the payload after an unknown discriminator cannot be skipped.
func (reg *Registry[T]) ReadTagged(r *stream.Reader) (string, T, error) {
	var zero T

	off := r.Offset()
	name, err := r.ReadString()
	if err != nil {
		return "", zero, err
	}

	fn, ok := reg.Lookup(name)
	if !ok {
		return name, zero, r.Fail(errs.At("ReadTagged", off, errs.ErrUnknownDiscriminator, fmt.Sprintf("%q", name)))
	}

	v, err := fn(r)
	if err != nil {
		return name, zero, r.Fail(err)
	}

	return name, v, nil
}

// DecodeFunc adapts reg.ReadTagged into a stream.DecodeFunc, so tagged records
// can be nested in stream.ReadList.
func (reg *Registry[T]) DecodeFunc() stream.DecodeFunc[T] {
	return func(r *stream.Reader) (T, error) {
		_, v, err := reg.ReadTagged(r)
		return v, err
	}
}
