// Package history keeps the bounded, most-recent-first list of executed
// transformations and persists it through a pluggable Storage backend.
package history

import (
	"sync"
	"time"

	"renamer/internal/errors"
	"renamer/internal/log"
	"renamer/pkg/types"
)

// Storage loads and saves the complete entry list, most recent first.
// A missing store loads as an empty list without error.
type Storage interface {
	Load() ([]types.HistoryEntry, error)
	Save(entries []types.HistoryEntry) error
}

// Store is the in-process view of the history. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	entries  []types.HistoryEntry
	loaded   bool
	capacity int
	now      func() time.Time
	log      *log.Logger
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithCapacity bounds the number of entries kept (default 100)
func WithCapacity(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithClock replaces time.Now for entry timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over storage. Nothing is read until first use.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage:  storage,
		capacity: types.MaxHistoryEntries,
		now:      time.Now,
		log:      log.Component("history"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore is a Store that forgets everything on exit
func NewMemoryStore(opts ...StoreOption) *Store {
	return NewStore(NewMemoryStorage(), opts...)
}

// load must be called with mu held. A storage failure degrades to an empty
// history; the next successful Save replaces whatever was unreadable.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	entries, err := s.storage.Load()
	if err != nil {
		s.log.WithError(errors.NewHistoryError("load", err)).Warn("history unreadable, starting empty")
		s.entries = nil
		return
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
}

// List returns a copy of the entries, most recent first. It never fails.
func (s *Store) List() []types.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	out := make([]types.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return len(s.entries)
}

// Record puts spec at the front with a fresh timestamp. An equal spec already
// present is moved rather than duplicated; beyond capacity the oldest entry
// is dropped. Specs with an empty pattern are ignored.
//
// The in-memory list is always updated. A persistence failure is returned as
// a *errors.HistoryError for the caller to log.
func (s *Store) Record(spec types.TransformSpec) error {
	if spec.IsNoop() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	entry := types.HistoryEntry{TransformSpec: spec, Timestamp: s.now()}
	next := make([]types.HistoryEntry, 0, len(s.entries)+1)
	next = append(next, entry)
	for _, existing := range s.entries {
		if existing.TransformSpec == spec {
			continue
		}
		next = append(next, existing)
	}
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}
	s.entries = next

	return s.persist("save")
}

// Clear removes every entry
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.entries = nil
	return s.persist("clear")
}

func (s *Store) persist(op string) error {
	if err := s.storage.Save(s.entries); err != nil {
		return errors.NewHistoryError(op, err)
	}
	return nil
}
