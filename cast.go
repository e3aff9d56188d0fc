package owned

import "reflect"

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// UpcastShared re-types a shared owner at a broader type B without
// copying the value. The result co-owns the same control block, so the
// owner count and the single-destruction guarantee are preserved.
// Returns (nil, false) if the handle is empty or the value does not
// implement B.
func UpcastShared[B any, T any](s *Shared[T]) (*Shared[B], bool) {
	if s.released.Load() || s.blk.destroyed.Load() {
		return nil, false
	}
	if _, ok := s.blk.value.(B); !ok {
		return nil, false
	}

	dst := &Shared[B]{blk: s.blk}
	s.blk.addOwner(dst, "upcast")
	return dst, true
}

// DowncastShared attempts to recover a narrower typing D from a shared
// owner. The conversion is runtime-checked: it succeeds only when the
// underlying value actually is (or implements) D, in which case the
// result is a new co-owner of the same control block. On mismatch it
// returns (nil, false) and the source owner is untouched.
func DowncastShared[D any, B any](s *Shared[B]) (*Shared[D], bool) {
	if s.released.Load() || s.blk.destroyed.Load() {
		return nil, false
	}
	if _, ok := s.blk.value.(D); !ok {
		s.blk.core.record(EventCastFailed, "want "+typeName[D]())
		for _, obs := range s.blk.core.observers {
			obs.OnCastFail(s, typeName[D]())
		}
		return nil, false
	}

	dst := &Shared[D]{blk: s.blk}
	s.blk.addOwner(dst, "downcast")
	return dst, true
}

// UpcastUnique re-types an exclusive owner at a broader type B. On
// success ownership transfers to the returned handle and the source is
// emptied; ownership is never duplicated. Returns (nil, false) if the
// handle is empty or the value does not implement B, leaving the source
// untouched.
func UpcastUnique[B any, T any](u *Unique[T]) (*Unique[B], bool) {
	return retypeUnique[B](u, false)
}

// DowncastUnique attempts to recover a narrower typing D from an
// exclusive owner. Runtime-checked: on match ownership transfers to the
// returned handle and the source is emptied; on mismatch it returns
// (nil, false) and the source keeps ownership.
func DowncastUnique[D any, B any](u *Unique[B]) (*Unique[D], bool) {
	return retypeUnique[D](u, true)
}

func retypeUnique[R any, T any](u *Unique[T], checked bool) (*Unique[R], bool) {
	u.mu.Lock()
	if u.state != stateLive {
		u.mu.Unlock()
		return nil, false
	}

	val, ok := any(u.value).(R)
	if !ok {
		u.mu.Unlock()
		if checked {
			u.core.record(EventCastFailed, "want "+typeName[R]())
			for _, obs := range u.core.observers {
				obs.OnCastFail(u, typeName[R]())
			}
		}
		return nil, false
	}

	dst := &Unique[R]{
		value: val,
		state: stateLive,
		core:  u.core,
	}
	u.state = stateMoved
	var zero T
	u.value = zero
	u.mu.Unlock()

	dst.core.record(EventMoved, "ownership transferred by cast")
	for _, obs := range dst.core.observers {
		obs.OnMove(u, dst)
	}
	if dst.core.arena != nil {
		dst.core.arena.adopt(dst)
	}

	return dst, true
}
