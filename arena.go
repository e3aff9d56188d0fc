package owned

import (
	"errors"
	"sync"
)

// Arena tracks handles so that everything still live can be released
// together, in reverse creation order, when the arena is disposed.
type Arena struct {
	mu        sync.Mutex
	handles   []AnyHandle
	tags      sync.Map
	observers []Observer
	recorder  *Recorder
}

// ArenaOption is a modifier for arenas
type ArenaOption func(*Arena)

// WithArenaObserver registers an observer inherited by every handle
// created under the arena
func WithArenaObserver(obs Observer) ArenaOption {
	return func(a *Arena) {
		a.observers = append(a.observers, obs)
	}
}

// WithArenaRecorder sets the trace recorder inherited by handles
// created under the arena
func WithArenaRecorder(r *Recorder) ArenaOption {
	return func(a *Arena) {
		a.recorder = r
	}
}

// WithArenaTag returns an option that sets a tag on an arena
func WithArenaTag[T any](tag Tag[T], val T) ArenaOption {
	return func(a *Arena) {
		tag.SetOnArena(a, val)
	}
}

// NewArena creates a new arena with optional configuration
func NewArena(opts ...ArenaOption) *Arena {
	a := &Arena{}

	for _, opt := range opts {
		opt(a)
	}
	sortObservers(a.observers)

	return a
}

// UseObserver registers an observer for handles created after this call
func (a *Arena) UseObserver(obs Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.observers = append(a.observers, obs)
	sortObservers(a.observers)
}

func (a *Arena) adopt(h AnyHandle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handles = append(a.handles, h)
}

// Live returns the number of adopted handles that still own a value
func (a *Arena) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := 0
	for _, h := range a.handles {
		if h.Live() {
			count++
		}
	}
	return count
}

// Dispose releases every still-live handle in reverse creation order.
// Handles already released or moved are skipped. Errors from individual
// releases are joined; disposal continues past them.
func (a *Arena) Dispose() error {
	a.mu.Lock()
	handles := make([]AnyHandle, len(a.handles))
	copy(handles, a.handles)
	a.handles = nil
	a.mu.Unlock()

	var errs []error
	for i := len(handles) - 1; i >= 0; i-- {
		if !handles[i].Live() {
			continue
		}
		if err := handles[i].Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetTag retrieves a tag value from the arena
func (a *Arena) GetTag(tag any) (any, bool) {
	return a.tags.Load(tag)
}

// SetTag stores a tag value on the arena
func (a *Arena) SetTag(tag any, val any) {
	a.tags.Store(tag, val)
}
