package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is an in-process CacheService with the same semantics as the
// redis implementation. Used in tests and as a fallback when redis is not
// configured. Entries are removed lazily on expired lookups or by explicit
// invalidation; there is no size cap and no background eviction.
type MemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]memoryEntry
	userKeys map[uint]map[string]struct{}
	now      func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]memoryEntry),
		userKeys: make(map[uint]map[string]struct{}),
		now:      time.Now,
	}
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{data: data, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryCache) SetForUser(ctx context.Context, userID uint, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{data: data, expiresAt: m.now().Add(ttl)}
	if m.userKeys[userID] == nil {
		m.userKeys[userID] = make(map[string]struct{})
	}
	m.userKeys[userID][key] = struct{}{}
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return ErrCacheMiss
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return ErrCacheMiss
	}

	return json.Unmarshal(entry.data, dest)
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryCache) InvalidateUser(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.userKeys[userID] {
		delete(m.entries, key)
	}
	delete(m.userKeys, userID)
	return nil
}

// Stats describes the current cache contents, for the debug endpoint.
type Stats struct {
	TotalEntries   int `json:"total_entries"`
	ValidEntries   int `json:"valid_entries"`
	ExpiredEntries int `json:"expired_entries"`
}

func (m *MemoryCache) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	valid := 0
	for _, entry := range m.entries {
		if entry.expiresAt.After(now) {
			valid++
		}
	}

	return Stats{
		TotalEntries:   len(m.entries),
		ValidEntries:   valid,
		ExpiredEntries: len(m.entries) - valid,
	}
}
