package ranking

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. State is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert adds an entry in score order.
func (m *MemoryStore) Insert(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = insertSorted(m.entries, e)
	return nil
}

// Top returns the best entries.
func (m *MemoryStore) Top(_ context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return head(m.entries, limit), nil
}

// Clear removes every entry.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Trim keeps the first max entries.
func (m *MemoryStore) Trim(_ context.Context, max int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if max >= 0 && len(m.entries) > max {
		m.entries = m.entries[:max]
	}
	return nil
}
