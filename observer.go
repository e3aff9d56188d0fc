package owned

import "sort"

// Observer provides hooks into the ownership lifecycle.
// Observers see operations; they never veto them.
type Observer interface {
	// Name returns the observer's name
	Name() string

	// Order determines notification order (lower = earlier)
	Order() int

	// OnCreate fires when a value comes under ownership
	OnCreate(h AnyHandle)

	// OnClone fires when a co-owner is added, with the new owner count
	OnClone(h AnyHandle, owners int64)

	// OnMove fires when exclusive ownership transfers between handles
	OnMove(from, to AnyHandle)

	// OnRelease fires when an owner lets go, with the remaining owner count
	OnRelease(h AnyHandle, remaining int64)

	// OnDestroy fires after the owned value's teardown stack has run
	OnDestroy(h AnyHandle)

	// OnCastFail fires when a checked downward conversion misses
	OnCastFail(h AnyHandle, want string)
}

// BaseObserver provides default implementations for Observer methods
type BaseObserver struct {
	name string
}

// NewBaseObserver creates a new base observer with the given name
func NewBaseObserver(name string) BaseObserver {
	return BaseObserver{name: name}
}

func (o *BaseObserver) Name() string {
	return o.name
}

func (o *BaseObserver) Order() int {
	return 100
}

func (o *BaseObserver) OnCreate(h AnyHandle) {
}

func (o *BaseObserver) OnClone(h AnyHandle, owners int64) {
}

func (o *BaseObserver) OnMove(from, to AnyHandle) {
}

func (o *BaseObserver) OnRelease(h AnyHandle, remaining int64) {
}

func (o *BaseObserver) OnDestroy(h AnyHandle) {
}

func (o *BaseObserver) OnCastFail(h AnyHandle, want string) {
}

func sortObservers(observers []Observer) {
	sort.SliceStable(observers, func(i, j int) bool {
		return observers[i].Order() < observers[j].Order()
	})
}
