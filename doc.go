// Package owned provides explicit ownership handles for Go: move-only
// exclusive owners and reference-counted shared owners over polymorphic
// values, with observable lifecycle events.
//
// # Overview
//
// Owned organizes code around three core concepts:
//
//  1. Handles: owning references with an explicit discipline (Unique, Shared)
//  2. Arenas: trackers that dispose leftover handles in reverse creation order
//  3. Recorders: bounded traces of lifecycle events (create, clone, release, destroy)
//
// # Exclusive Ownership
//
// A Unique handle has exactly one live owner at a time. Releasing the
// owner destroys the value; moving transfers ownership and leaves the
// source empty:
//
//	u := owned.NewUnique[Animal](&Dog{},
//	    owned.WithLabel("rex"),
//	    owned.WithTeardown(func() error { fmt.Println("gone"); return nil }),
//	)
//
//	dog, err := u.Get()
//	dst := u.Move()   // u is now empty; dst owns the value
//	err = dst.Release()
//
// # Shared Ownership
//
// A Shared handle co-owns its value with any number of clones. The value
// is destroyed exactly once, when the last owner releases it:
//
//	a := owned.NewShared[Animal](&Dog{})
//	b := a.Clone()
//
//	a.UseCount()          // 2
//	a.Identity() == b.Identity()  // co-owners report one identity
//
//	a.Release()           // value survives, count drops to 1
//	b.Release()           // teardown runs now
//
// # Teardown Ordering
//
// Teardown functions run in reverse registration order on destruction.
// Register base-layer teardowns before derived-layer ones and the
// derived layer is torn down first, mirroring construction:
//
//	owned.NewUnique[Animal](&Dog{},
//	    owned.WithTeardown(baseTeardown),     // runs second
//	    owned.WithTeardown(derivedTeardown),  // runs first
//	)
//
// # Casting
//
// Handles can be re-typed without copying the value. Upward conversions
// broaden the typing; downward conversions are runtime-checked and
// return (nil, false) on mismatch rather than failing loudly:
//
//	base, ok := owned.UpcastShared[Animal](dogHandle)
//	base.MustGet().Describe()   // still dispatches the Dog override
//
//	dog, ok := owned.DowncastShared[*Dog](base)
//	if !ok {
//	    // the underlying value was not a *Dog; base is untouched
//	}
//
// A shared cast mints a co-owner of the same control block; a unique
// cast transfers ownership on success and leaves the source live on
// mismatch.
//
// # Arenas
//
// Arenas release whatever is still live, in reverse creation order:
//
//	arena := owned.NewArena(
//	    owned.WithArenaRecorder(rec),
//	)
//	defer arena.Dispose()
//
//	u := owned.NewUnique(conn, owned.WithArena(arena))
//
// # Observers
//
// Observers see lifecycle operations without being able to veto them.
// Embed BaseObserver and override the hooks you care about:
//
//	type auditor struct {
//	    owned.BaseObserver
//	}
//
//	func (a *auditor) OnDestroy(h owned.AnyHandle) {
//	    log.Printf("destroyed %s", h.Label())
//	}
//
//	arena := owned.NewArena(owned.WithArenaObserver(&auditor{
//	    BaseObserver: owned.NewBaseObserver("audit"),
//	}))
//
// # Tracing
//
// A Recorder keeps a bounded, ordered trace of events for querying or
// JSON export:
//
//	rec := owned.NewRecorder(256)
//	u := owned.NewUnique(val, owned.WithRecorder(rec))
//	u.Release()
//
//	for _, ev := range rec.ForEntity(u.Identity()) {
//	    fmt.Println(ev.Kind, ev.Detail)
//	}
//
// # Thread Safety
//
// The shared owner count is atomic and safe to read at any point;
// cloning and releasing from multiple goroutines still destroys the
// value exactly once. Handle metadata is mutex-guarded.
package owned
