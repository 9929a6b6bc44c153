package history

import (
	"sync"

	"renamer/pkg/types"
)

// MemoryStorage keeps entries in process memory
type MemoryStorage struct {
	mu      sync.Mutex
	entries []types.HistoryEntry
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage(entries ...types.HistoryEntry) *MemoryStorage {
	return &MemoryStorage{entries: entries}
}

func (m *MemoryStorage) Load() ([]types.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.HistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryStorage) Save(entries []types.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]types.HistoryEntry, len(entries))
	copy(m.entries, entries)
	return nil
}
