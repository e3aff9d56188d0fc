package owned

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSharedCoOwners(t *testing.T) {
	destroyed := 0

	first := NewShared("v",
		WithLabel("value"),
		WithTeardown(func() error {
			destroyed++
			return nil
		}),
	)

	second := first.Clone()
	if second == nil {
		t.Fatal("expected clone to succeed")
	}

	if first.Identity() != second.Identity() {
		t.Error("expected co-owners to report one identity")
	}
	if n := first.UseCount(); n != 2 {
		t.Errorf("expected use count 2, got %d", n)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if destroyed != 0 {
		t.Error("value must survive while a co-owner is live")
	}
	if n := second.UseCount(); n != 1 {
		t.Errorf("expected use count 1, got %d", n)
	}

	if err := second.Release(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if destroyed != 1 {
		t.Errorf("expected exactly one destruction, got %d", destroyed)
	}
	if n := second.UseCount(); n != 0 {
		t.Errorf("expected use count 0, got %d", n)
	}
}

func TestSharedDoubleRelease(t *testing.T) {
	s := NewShared(1)

	if err := s.Release(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := s.Release(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
}

func TestSharedCloneAfterRelease(t *testing.T) {
	s := NewShared(1)
	s.Release()

	if s.Clone() != nil {
		t.Error("expected clone of released handle to return nil")
	}
	if _, err := s.Get(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
}

func TestSharedTeardownOrder(t *testing.T) {
	var order []string

	s := NewShared("layered",
		WithTeardown(func() error {
			order = append(order, "base")
			return nil
		}),
		WithTeardown(func() error {
			order = append(order, "derived")
			return nil
		}),
	)

	clone := s.Clone()
	s.Release()

	if len(order) != 0 {
		t.Fatal("teardown must wait for the last owner")
	}

	clone.Release()
	if len(order) != 2 || order[0] != "derived" || order[1] != "base" {
		t.Errorf("expected derived-first teardown, got %v", order)
	}
}

func TestSharedConcurrentCloneRelease(t *testing.T) {
	destroyed := 0
	root := NewShared(0, WithTeardown(func() error {
		destroyed++
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := root.Clone()
			if c == nil {
				t.Error("clone failed while root was live")
				return
			}
			_ = c.UseCount()
			if err := c.Release(); err != nil {
				t.Errorf("release failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if destroyed != 0 {
		t.Fatal("root still owns the value")
	}
	if n := root.UseCount(); n != 1 {
		t.Errorf("expected use count 1, got %d", n)
	}

	root.Release()
	if destroyed != 1 {
		t.Errorf("expected exactly one destruction, got %d", destroyed)
	}
}
