package quotes

import (
	"sync"
	"time"
)

// session pairs a builder with its own mutex. A session is single-actor by
// contract, but the HTTP layer may deliver overlapping requests; the mutex
// serializes them without any cross-session locking.
type session struct {
	mu         sync.Mutex
	builder    *Builder
	lastAccess time.Time
}

// Manager owns the live wizard sessions. Abandoned sessions are discarded,
// never persisted; a janitor goroutine sweeps expired entries.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewManager(ttl, cleanupInterval time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go m.janitor(cleanupInterval)
	return m
}

// Put registers a builder under its session ID.
func (m *Manager) Put(id string, b *Builder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &session{builder: b, lastAccess: time.Now()}
}

// With runs fn with exclusive access to the session's builder and refreshes
// its expiry.
func (m *Manager) With(id string, fn func(*Builder) error) error {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return fn(s.builder)
}

// Delete drops a session, typically after finalize.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the janitor.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Manager) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.lastAccess.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
