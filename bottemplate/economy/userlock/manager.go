package userlock

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	sem    chan struct{}
	refs   int
	heldAt time.Time
}

// Manager serializes actions per user. Entries live only while someone
// holds or waits for them.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*entry
	// slow is the hold time after which a release is reported to onSlow.
	slow   time.Duration
	onSlow func(userID string, held time.Duration)
}

func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]*entry),
		slow:  5 * time.Second,
	}
}

// OnSlowHold registers a hook for locks held longer than d.
func (m *Manager) OnSlowHold(d time.Duration, fn func(userID string, held time.Duration)) {
	m.slow = d
	m.onSlow = fn
}

// Lock blocks until userID is free or ctx is done. The returned func
// releases the lock and is safe to call more than once.
func (m *Manager) Lock(ctx context.Context, userID string) (func(), error) {
	m.mu.Lock()
	e, ok := m.locks[userID]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.locks[userID] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		m.release(userID, e)
		return nil, ctx.Err()
	}

	m.mu.Lock()
	e.heldAt = time.Now()
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			held := time.Since(e.heldAt)
			m.mu.Unlock()

			<-e.sem
			m.release(userID, e)

			if m.onSlow != nil && held > m.slow {
				m.onSlow(userID, held)
			}
		})
	}, nil
}

func (m *Manager) release(userID string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, userID)
	}
}

// IsLocked reports whether userID currently holds the lock.
func (m *Manager) IsLocked(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.locks[userID]
	return ok && len(e.sem) > 0
}

// Active returns the number of users holding or waiting for a lock.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
