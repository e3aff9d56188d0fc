package owned

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

func TestRecorderLifecycleSequence(t *testing.T) {
	rec := NewRecorder(32)

	s := NewShared("traced", WithLabel("traced"), WithRecorder(rec))
	clone := s.Clone()
	s.Release()
	clone.Release()

	events := rec.Events()
	want := []EventKind{EventCreated, EventCloned, EventReleased, EventReleased, EventDestroyed}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Errorf("event %d: expected %s, got %s", i, kind, events[i].Kind)
		}
	}

	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Error("expected strictly increasing sequence numbers")
		}
	}
}

func TestRecorderEviction(t *testing.T) {
	rec := NewRecorder(3)
	entity := uuid.New()

	for i := 0; i < 5; i++ {
		rec.Record(EventDescribed, entity, "x", "")
	}

	if n := rec.Len(); n != 3 {
		t.Fatalf("expected 3 retained events, got %d", n)
	}
	events := rec.Events()
	if events[0].Seq != 3 {
		t.Errorf("expected oldest retained seq 3, got %d", events[0].Seq)
	}
}

func TestRecorderForEntity(t *testing.T) {
	rec := NewRecorder(32)

	a := NewUnique("a", WithRecorder(rec))
	b := NewUnique("b", WithRecorder(rec))
	a.Release()
	b.Release()

	forA := rec.ForEntity(a.Identity())
	for _, ev := range forA {
		if ev.Entity != a.Identity() {
			t.Errorf("expected only events for a, got entity %s", ev.Entity)
		}
	}
	if len(forA) != 3 {
		t.Errorf("expected created/released/destroyed for a, got %d events", len(forA))
	}
}

func TestRecorderJSONExport(t *testing.T) {
	rec := NewRecorder(8)
	u := NewUnique(1, WithLabel("exported"), WithRecorder(rec))
	u.Release()

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded []Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("expected valid JSON, got %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 events, got %d", len(decoded))
	}
	if decoded[0].Kind != EventCreated || decoded[0].Label != "exported" {
		t.Errorf("unexpected first event: %+v", decoded[0])
	}
}
