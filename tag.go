package owned

// Tag is a type-safe key for metadata on handles and arenas
type Tag[T any] struct {
	key string
}

// NewTag creates a new tag with the given key
func NewTag[T any](key string) Tag[T] {
	return Tag[T]{key: key}
}

// Key returns the tag's key (for debugging)
func (t Tag[T]) Key() string {
	return t.key
}

// Get retrieves the tag value from a handle
func (t Tag[T]) Get(h AnyHandle) (T, bool) {
	val, ok := h.GetTag(t)
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGet retrieves the tag value or panics if not found
func (t Tag[T]) MustGet(h AnyHandle) T {
	val, ok := t.Get(h)
	if !ok {
		panic("tag " + t.key + " not found")
	}
	return val
}

// GetOrDefault retrieves the tag value or returns a default
func (t Tag[T]) GetOrDefault(h AnyHandle, defaultVal T) T {
	if val, ok := t.Get(h); ok {
		return val
	}
	return defaultVal
}

// Set stores the tag value on a handle
func (t Tag[T]) Set(h AnyHandle, val T) {
	h.SetTag(t, val)
}

// GetFromArena retrieves the tag value from an arena
func (t Tag[T]) GetFromArena(a *Arena) (T, bool) {
	val, ok := a.GetTag(t)
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// SetOnArena stores the tag value on an arena
func (t Tag[T]) SetOnArena(a *Arena, val T) {
	a.SetTag(t, val)
}
