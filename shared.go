package owned

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// block is the control block behind shared ownership. Every co-owner,
// including re-typed ones produced by casts, points at the same block,
// so the owner count and the destruction decision stay in one place.
type block struct {
	core      *core
	value     any
	owners    atomic.Int64
	destroyed atomic.Bool
}

func (b *block) releaseOwner(h AnyHandle) (int64, error) {
	n := b.owners.Add(-1)

	b.core.record(EventReleased, fmt.Sprintf("owners=%d", n))
	for _, obs := range b.core.observers {
		obs.OnRelease(h, n)
	}

	if n > 0 {
		return n, nil
	}
	if !b.destroyed.CompareAndSwap(false, true) {
		return n, nil
	}

	err := b.core.runTeardowns()

	b.core.record(EventDestroyed, "")
	for _, obs := range b.core.observers {
		obs.OnDestroy(h)
	}

	return n, err
}

// addOwner mints a co-owning handle view of the block
func (b *block) addOwner(h AnyHandle, detail string) {
	n := b.owners.Add(1)

	b.core.record(EventCloned, fmt.Sprintf("%s owners=%d", detail, n))
	for _, obs := range b.core.observers {
		obs.OnClone(h, n)
	}
	if b.core.arena != nil {
		b.core.arena.adopt(h)
	}
}

// Shared is a reference-counted owning handle: any number of co-owners,
// with the value destroyed only when the last owner releases it.
type Shared[T any] struct {
	blk      *block
	released atomic.Bool
}

// NewShared places a value under shared ownership with a single owner
func NewShared[T any](value T, opts ...HandleOption) *Shared[T] {
	blk := &block{
		core:  newCore(opts...),
		value: value,
	}
	blk.owners.Store(1)

	s := &Shared[T]{blk: blk}

	blk.core.record(EventCreated, "shared owner")
	for _, obs := range blk.core.observers {
		obs.OnCreate(s)
	}
	if blk.core.arena != nil {
		blk.core.arena.adopt(s)
	}

	return s
}

// Get returns the owned value, or an error if this owner released it
func (s *Shared[T]) Get() (T, error) {
	if s.released.Load() || s.blk.destroyed.Load() {
		var zero T
		return zero, newHandleError(s.blk.core.label, "get", ErrReleased)
	}

	val, ok := s.blk.value.(T)
	if !ok {
		var zero T
		return zero, newHandleError(s.blk.core.label, "get",
			fmt.Errorf("owned value is %T, not %s", s.blk.value, typeName[T]()))
	}
	return val, nil
}

// MustGet returns the owned value or panics if this owner released it
func (s *Shared[T]) MustGet() T {
	val, err := s.Get()
	if err != nil {
		panic(err)
	}
	return val
}

// Clone adds a co-owner of the same underlying value.
// Returns nil if this handle already released its ownership.
func (s *Shared[T]) Clone() *Shared[T] {
	if s.released.Load() || s.blk.destroyed.Load() {
		return nil
	}

	clone := &Shared[T]{blk: s.blk}
	s.blk.addOwner(clone, "clone")
	return clone
}

// UseCount returns the current number of live co-owners.
// It is safe to read at any point; after destruction it reports 0.
func (s *Shared[T]) UseCount() int64 {
	n := s.blk.owners.Load()
	if n < 0 {
		return 0
	}
	return n
}

// OnTeardown registers a teardown function for the owned value.
// Teardowns run in reverse registration order when the last owner lets go.
func (s *Shared[T]) OnTeardown(fn func() error) {
	s.blk.core.onTeardown(fn)
}

// Release drops this owner. The value is destroyed only when the owner
// count reaches zero; destruction happens exactly once.
func (s *Shared[T]) Release() error {
	if !s.released.CompareAndSwap(false, true) {
		return newHandleError(s.blk.core.label, "release", ErrReleased)
	}

	_, err := s.blk.releaseOwner(s)
	return err
}

// Label returns the handle's label
func (s *Shared[T]) Label() string {
	return s.blk.core.label
}

// Identity returns the owned value's identity marker.
// All co-owners of one value report the same identity.
func (s *Shared[T]) Identity() uuid.UUID {
	return s.blk.core.identity
}

// Kind returns KindShared
func (s *Shared[T]) Kind() HandleKind {
	return KindShared
}

// Live reports whether this owner still co-owns the value
func (s *Shared[T]) Live() bool {
	return !s.released.Load() && !s.blk.destroyed.Load()
}

// GetTag retrieves a metadata value from the handle
func (s *Shared[T]) GetTag(tag any) (any, bool) {
	return s.blk.core.getTag(tag)
}

// SetTag stores a metadata value on the handle
func (s *Shared[T]) SetTag(tag any, val any) {
	s.blk.core.setTag(tag, val)
}
