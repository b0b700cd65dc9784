package userlock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_SerializesSameUser(t *testing.T) {
	m := NewManager()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(context.Background(), "42")
			if err != nil {
				t.Errorf("Lock() error = %v", err)
				return
			}
			n := inside.Add(1)
			for {
				cur := maxInside.Load()
				if n <= cur || maxInside.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	if got := maxInside.Load(); got != 1 {
		t.Errorf("concurrent holders got = %d, want 1", got)
	}
	if got := m.Active(); got != 0 {
		t.Errorf("Active() after release = %d, want 0", got)
	}
}

func TestManager_IndependentUsers(t *testing.T) {
	m := NewManager()
	unlockA, err := m.Lock(context.Background(), "a")
	if err != nil {
		t.Fatalf("Lock(a) error = %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := m.Lock(ctx, "b")
	if err != nil {
		t.Fatalf("Lock(b) blocked by a: %v", err)
	}
	unlockB()
}

func TestManager_ContextCancel(t *testing.T) {
	m := NewManager()
	unlock, _ := m.Lock(context.Background(), "42")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := m.Lock(ctx, "42"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Lock() error = %v, want DeadlineExceeded", err)
	}
	if !m.IsLocked("42") {
		t.Errorf("IsLocked() = false while held")
	}

	unlock()
	unlock()
	if m.IsLocked("42") || m.Active() != 0 {
		t.Errorf("lock not released: locked=%v active=%d", m.IsLocked("42"), m.Active())
	}
}

func TestManager_SlowHold(t *testing.T) {
	m := NewManager()
	var reported atomic.Bool
	m.OnSlowHold(time.Millisecond, func(string, time.Duration) { reported.Store(true) })

	unlock, _ := m.Lock(context.Background(), "42")
	time.Sleep(5 * time.Millisecond)
	unlock()

	if !reported.Load() {
		t.Errorf("slow hold was not reported")
	}
}
