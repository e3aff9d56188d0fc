package owned

import (
	"sync"

	"github.com/google/uuid"
)

type uniqueState int

const (
	stateLive uniqueState = iota
	stateMoved
	stateReleased
)

// Unique is a move-only owning handle: exactly one live owner at a
// time. Releasing the owner destroys the value; moving transfers
// ownership and leaves the source empty. Ownership is never duplicated.
type Unique[T any] struct {
	mu    sync.Mutex
	value T
	state uniqueState
	core  *core
}

// NewUnique places a value under exclusive ownership
func NewUnique[T any](value T, opts ...HandleOption) *Unique[T] {
	u := &Unique[T]{
		value: value,
		state: stateLive,
		core:  newCore(opts...),
	}

	u.core.record(EventCreated, "exclusive owner")
	for _, obs := range u.core.observers {
		obs.OnCreate(u)
	}
	if u.core.arena != nil {
		u.core.arena.adopt(u)
	}

	return u
}

// Get returns the owned value, or an error if the handle is empty
func (u *Unique[T]) Get() (T, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch u.state {
	case stateMoved:
		var zero T
		return zero, newHandleError(u.core.label, "get", ErrEmpty)
	case stateReleased:
		var zero T
		return zero, newHandleError(u.core.label, "get", ErrReleased)
	}
	return u.value, nil
}

// MustGet returns the owned value or panics if the handle is empty
func (u *Unique[T]) MustGet() T {
	val, err := u.Get()
	if err != nil {
		panic(err)
	}
	return val
}

// Move transfers ownership to a new handle, leaving this one empty.
// Returns nil if the handle is not live.
func (u *Unique[T]) Move() *Unique[T] {
	u.mu.Lock()
	if u.state != stateLive {
		u.mu.Unlock()
		return nil
	}

	dst := &Unique[T]{
		value: u.value,
		state: stateLive,
		core:  u.core,
	}
	u.state = stateMoved
	var zero T
	u.value = zero
	u.mu.Unlock()

	dst.core.record(EventMoved, "ownership transferred")
	for _, obs := range dst.core.observers {
		obs.OnMove(u, dst)
	}
	if dst.core.arena != nil {
		dst.core.arena.adopt(dst)
	}

	return dst
}

// Swap exchanges the owned values of two live handles, teardown stacks
// and identities included
func (u *Unique[T]) Swap(other *Unique[T]) {
	if u == other {
		return
	}

	u.mu.Lock()
	other.mu.Lock()
	defer other.mu.Unlock()
	defer u.mu.Unlock()

	if u.state != stateLive || other.state != stateLive {
		return
	}

	u.value, other.value = other.value, u.value
	u.core, other.core = other.core, u.core
}

// OnTeardown registers a teardown function for the owned value.
// Teardowns run in reverse registration order on destruction.
func (u *Unique[T]) OnTeardown(fn func() error) {
	u.core.onTeardown(fn)
}

// Release destroys the owned value: the teardown stack runs in reverse
// registration order, then the destruction event fires. Releasing an
// empty handle reports ErrEmpty or ErrReleased.
func (u *Unique[T]) Release() error {
	u.mu.Lock()
	switch u.state {
	case stateMoved:
		u.mu.Unlock()
		return newHandleError(u.core.label, "release", ErrEmpty)
	case stateReleased:
		u.mu.Unlock()
		return newHandleError(u.core.label, "release", ErrReleased)
	}
	u.state = stateReleased
	var zero T
	u.value = zero
	u.mu.Unlock()

	u.core.record(EventReleased, "sole owner released")
	for _, obs := range u.core.observers {
		obs.OnRelease(u, 0)
	}

	err := u.core.runTeardowns()

	u.core.record(EventDestroyed, "")
	for _, obs := range u.core.observers {
		obs.OnDestroy(u)
	}

	return err
}

// Label returns the handle's label
func (u *Unique[T]) Label() string {
	return u.core.label
}

// Identity returns the owned value's identity marker
func (u *Unique[T]) Identity() uuid.UUID {
	return u.core.identity
}

// Kind returns KindUnique
func (u *Unique[T]) Kind() HandleKind {
	return KindUnique
}

// Live reports whether the handle still owns its value
func (u *Unique[T]) Live() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state == stateLive
}

// GetTag retrieves a metadata value from the handle
func (u *Unique[T]) GetTag(tag any) (any, bool) {
	return u.core.getTag(tag)
}

// SetTag stores a metadata value on the handle
func (u *Unique[T]) SetTag(tag any, val any) {
	u.core.setTag(tag, val)
}
