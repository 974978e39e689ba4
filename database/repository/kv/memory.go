package kvRepo

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

// MemoryStore is an in-process Store used in tests and single-instance development.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok && !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(entry.data, dest)
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Update runs fn with the store locked, so no other write can land between the
// read and the write.
func (s *MemoryStore) Update(_ context.Context, key string, ttl time.Duration, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || (!entry.expiresAt.IsZero() && s.now().After(entry.expiresAt)) {
		delete(s.entries, key)
		return ErrNotFound
	}
	value, err := fn(entry.data)
	if err != nil || value == nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	next := memoryEntry{data: data}
	if ttl > 0 {
		next.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = next
	return nil
}
