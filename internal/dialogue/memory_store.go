package dialogue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// memoryEntry pairs a user's state with its per-user turn lock and the last
// time it was touched, for idle eviction.
type memoryEntry struct {
	mu       sync.Mutex
	manager  *Manager
	lastSeen time.Time
}

// MemoryStore is the default in-process conversation store. State is
// partitioned by user id; a per-user mutex serializes turns and a
// background sweep evicts conversations idle past the TTL.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a memory store evicting conversations idle longer
// than ttl. sweepInterval controls how often eviction runs; zero disables
// the sweeper (useful in tests).
func NewMemoryStore(ttl, sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

// Lock acquires the per-user turn lock. The sweeper can evict an idle entry
// between the map lookup and the mutex acquisition, which would leave this
// turn holding an orphaned lock while the next turn gets a fresh one, so
// after locking we confirm the entry is still the registered one and retry
// otherwise.
func (s *MemoryStore) Lock(userID string) func() {
	for {
		e := s.entry(userID)
		e.mu.Lock()

		s.mu.Lock()
		registered := s.entries[userID] == e
		s.mu.Unlock()
		if registered {
			return e.mu.Unlock
		}
		e.mu.Unlock()
	}
}

// Get returns the user's manager, creating an idle one if absent or if the
// previous conversation sat idle past the TTL.
func (s *MemoryStore) Get(_ context.Context, userID string) (*Manager, error) {
	e := s.entry(userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if e.manager == nil || (s.ttl > 0 && time.Since(e.lastSeen) > s.ttl) {
		e.manager = NewManager()
	}
	e.lastSeen = time.Now()
	return e.manager, nil
}

// Put saves the manager and refreshes its idle TTL.
func (s *MemoryStore) Put(_ context.Context, userID string, m *Manager) error {
	e := s.entry(userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	e.manager = m
	e.lastSeen = time.Now()
	return nil
}

// Close stops the sweeper.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// ActiveConversations counts users with live state, for gauge metrics.
func (s *MemoryStore) ActiveConversations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.manager != nil {
			n++
		}
	}
	return n
}

func (s *MemoryStore) entry(userID string) *memoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &memoryEntry{}
		s.entries[userID] = e
	}
	return e
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep drops entries idle past the TTL. Entries whose turn lock is held
// are skipped; the in-flight turn will refresh them anyway.
func (s *MemoryStore) sweep() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for userID, e := range s.entries {
		if e.lastSeen.Before(cutoff) && e.mu.TryLock() {
			e.mu.Unlock()
			delete(s.entries, userID)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("swept idle conversations", "removed", removed, "remaining", len(s.entries))
	}
}

var _ Store = (*MemoryStore)(nil)
