package clock

import (
	"sort"
	"sync"
	"time"
)

// Mock is a controllable clock for tests. Callbacks registered with
// AfterFunc run synchronously inside Advance/Set, in deadline order.
type Mock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*mockTimer
}

type mockTimer struct {
	m       *Mock
	at      time.Time
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

// NewMock creates a mock clock starting at start.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Mock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &mockTimer{m: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due callbacks.
func (m *Mock) Advance(d time.Duration) {
	m.Set(m.Now().Add(d))
}

// Set moves the clock to t, firing every callback due at or before t.
// Callbacks scheduled by callbacks are honored when they also fall due.
func (m *Mock) Set(t time.Time) {
	for {
		m.mu.Lock()
		next := m.nextDueLocked(t)
		if next == nil {
			if t.After(m.now) {
				m.now = t
			}
			m.mu.Unlock()
			return
		}
		if next.at.After(m.now) {
			m.now = next.at
		}
		next.fired = true
		m.removeLocked(next)
		m.mu.Unlock()
		next.f()
	}
}

// Pending reports how many callbacks are registered and not yet fired.
func (m *Mock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Mock) nextDueLocked(t time.Time) *mockTimer {
	due := make([]*mockTimer, 0, len(m.timers))
	for _, tm := range m.timers {
		if !tm.at.After(t) {
			due = append(due, tm)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (m *Mock) removeLocked(t *mockTimer) {
	for i, tm := range m.timers {
		if tm == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

func (t *mockTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	t.m.removeLocked(t)
	return true
}
