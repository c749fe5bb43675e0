package settings

import (
	"context"
	"sync"
	"time"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/jonboulle/clockwork"
)

type memoryEntry struct {
	values   map[string]string
	lastSeen time.Time
}

// MemoryStore is the in-process Store used when no Redis is configured.
// Entries idle for longer than ttl are dropped by Prune.
type MemoryStore struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	ttl     time.Duration
	entries map[string]*memoryEntry
}

func NewMemoryStore(clock clockwork.Clock, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || s.expired(e) {
		delete(s.entries, sessionID)
		return models.DefaultSettings(), nil
	}
	e.lastSeen = s.clock.Now()
	return Parse(e.values), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = &memoryEntry{values: Encode(settings), lastSeen: s.clock.Now()}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// Prune drops expired sessions and returns how many were removed.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(e *memoryEntry) bool {
	return s.ttl > 0 && s.clock.Since(e.lastSeen) > s.ttl
}
