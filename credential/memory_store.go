package credential

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore holds the credential in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	value string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Location reports "memory"; there is no path.
func (s *MemoryStore) Location() string {
	return "memory"
}

// Save replaces the held value with the trimmed value. It never fails.
func (s *MemoryStore) Save(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = strings.TrimSpace(value)
	return nil
}

// Load returns the held value and whether it is non-empty.
func (s *MemoryStore) Load(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.value != ""
}
