package cache

import (
	"context"
	"sync"
	"time"

	"github.com/brightlist/sitescout/internal/config"
	"github.com/brightlist/sitescout/internal/model"
)

// memoryEntry is one cached result. The pages slice is never mutated
// after the entry is created; Put installs a fresh entry instead.
type memoryEntry struct {
	pages     []model.PageRecord
	createdAt time.Time
}

// MemoryStore is a process-local Store backed by a map.
// Expired entries are not evicted in the background; they are shadowed
// by the next Put or simply reported as misses.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	ttl time.Duration
	now func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithTTL sets the freshness window for cached entries.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects the time source used for entry age checks.
// Tests use this to simulate expiry without real delays.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a MemoryStore with the default TTL.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     config.DefaultCacheTTL,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the cached pages for the key if present and fresh.
// The returned slice is a copy; callers may mutate it freely.
func (s *MemoryStore) Get(_ context.Context, key string) ([]model.PageRecord, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().Sub(entry.createdAt) >= s.ttl {
		return nil, false, nil
	}

	pages := make([]model.PageRecord, len(entry.pages))
	copy(pages, entry.pages)
	return pages, true, nil
}

// Put stores a copy of pages under the key, replacing any existing entry.
func (s *MemoryStore) Put(_ context.Context, key string, pages []model.PageRecord) error {
	stored := make([]model.PageRecord, len(pages))
	copy(stored, pages)

	s.mu.Lock()
	s.entries[key] = memoryEntry{pages: stored, createdAt: s.now()}
	s.mu.Unlock()
	return nil
}

// Purge drops every entry.
func (s *MemoryStore) Purge() {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
}

// Len returns the number of entries currently held, fresh or stale.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
