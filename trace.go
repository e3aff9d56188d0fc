package owned

import (
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EventKind represents the type of lifecycle event
type EventKind string

const (
	// EventCreated indicates a value came under ownership
	EventCreated EventKind = "created"
	// EventCloned indicates a co-owner was added
	EventCloned EventKind = "cloned"
	// EventMoved indicates exclusive ownership was transferred
	EventMoved EventKind = "moved"
	// EventReleased indicates an owner released its handle
	EventReleased EventKind = "released"
	// EventDestroyed indicates the owned value was torn down
	EventDestroyed EventKind = "destroyed"
	// EventDescribed indicates a polymorphic dispatch on the owned value
	EventDescribed EventKind = "described"
	// EventCastFailed indicates a checked downward conversion missed
	EventCastFailed EventKind = "cast-failed"
)

// Event is a single entry in a lifecycle trace
type Event struct {
	Seq    uint64    `json:"seq"`
	Kind   EventKind `json:"kind"`
	Entity uuid.UUID `json:"entity"`
	Label  string    `json:"label,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Recorder keeps a bounded, ordered trace of lifecycle events
type Recorder struct {
	mu     sync.Mutex
	events []Event
	seq    uint64
	limit  int
}

// NewRecorder creates a recorder that keeps at most limit events.
// limit <= 0 falls back to 1000.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 1000
	}
	return &Recorder{limit: limit}
}

// Record appends an event to the trace, evicting the oldest past the limit
func (r *Recorder) Record(kind EventKind, entity uuid.UUID, label, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.events = append(r.events, Event{
		Seq:    r.seq,
		Kind:   kind,
		Entity: entity,
		Label:  label,
		Detail: detail,
		At:     time.Now(),
	})

	if len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
}

// Events returns a copy of the current trace in order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of retained events
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Filter returns the events matching the predicate, in order
func (r *Recorder) Filter(predicate func(Event) bool) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, ev := range r.events {
		if predicate(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// ForEntity returns the events of a single owned value, in order
func (r *Recorder) ForEntity(entity uuid.UUID) []Event {
	return r.Filter(func(ev Event) bool {
		return ev.Entity == entity
	})
}

// MarshalJSON exports the retained trace as a JSON array
func (r *Recorder) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Events())
}
