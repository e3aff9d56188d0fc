package owned

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// HandleKind identifies the ownership discipline of a handle
type HandleKind string

const (
	// KindUnique marks a move-only, exclusively owning handle
	KindUnique HandleKind = "unique"
	// KindShared marks a reference-counted, co-owning handle
	KindShared HandleKind = "shared"
)

// AnyHandle is a type-erased view over owning handles
type AnyHandle interface {
	Label() string
	Identity() uuid.UUID
	Kind() HandleKind
	Live() bool
	Release() error
	GetTag(tag any) (any, bool)
	SetTag(tag any, val any)
}

type teardownEntry struct {
	fn    func() error
	order int
}

// core carries the per-value state every handle needs regardless of
// discipline. For exclusive ownership it travels with the owner; for
// shared ownership it lives on the control block.
type core struct {
	mu        sync.Mutex
	label     string
	identity  uuid.UUID
	tags      map[any]any
	teardowns []teardownEntry
	recorder  *Recorder
	observers []Observer
	arena     *Arena
}

func newCore(opts ...HandleOption) *core {
	c := &core{
		identity: uuid.New(),
		tags:     make(map[any]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.arena != nil {
		if c.recorder == nil {
			c.recorder = c.arena.recorder
		}
		c.observers = append(c.observers, c.arena.observers...)
	}
	sortObservers(c.observers)

	return c
}

func (c *core) onTeardown(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.teardowns = append(c.teardowns, teardownEntry{
		fn:    fn,
		order: len(c.teardowns),
	})
}

// runTeardowns executes the stack in reverse registration order: the
// most recently constructed layer is torn down first.
func (c *core) runTeardowns() error {
	c.mu.Lock()
	entries := c.teardowns
	c.teardowns = nil
	c.mu.Unlock()

	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		if err := entries[i].fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *core) record(kind EventKind, detail string) {
	if c.recorder != nil {
		c.recorder.Record(kind, c.identity, c.label, detail)
	}
}

func (c *core) getTag(tag any) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.tags[tag]
	return val, ok
}

func (c *core) setTag(tag any, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = val
}

// HandleOption configures a handle at construction
type HandleOption func(*core)

// WithLabel sets a human-readable label on the handle
func WithLabel(label string) HandleOption {
	return func(c *core) {
		c.label = label
	}
}

// WithTeardown registers a teardown function for the owned value.
// Teardowns run in reverse registration order on destruction, so
// register base-layer teardowns before derived-layer ones.
func WithTeardown(fn func() error) HandleOption {
	return func(c *core) {
		c.teardowns = append(c.teardowns, teardownEntry{
			fn:    fn,
			order: len(c.teardowns),
		})
	}
}

// WithRecorder attaches a lifecycle trace recorder to the handle
func WithRecorder(r *Recorder) HandleOption {
	return func(c *core) {
		c.recorder = r
	}
}

// WithObserver registers an observer on the handle
func WithObserver(obs Observer) HandleOption {
	return func(c *core) {
		c.observers = append(c.observers, obs)
	}
}

// WithArena places the handle under an arena. The handle inherits the
// arena's recorder (unless one was set explicitly) and observers, and
// is released by Arena.Dispose if still live.
func WithArena(a *Arena) HandleOption {
	return func(c *core) {
		c.arena = a
	}
}
