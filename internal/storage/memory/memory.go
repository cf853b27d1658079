package memory

// Package memory provides a simple in-memory implementation used for
// development and tests. It mirrors the Postgres store's semantics while
// keeping code paths easy to follow.
import (
	"context"
	"sync"
	"time"

	"github.com/learningsteps/api/internal/errs"
	"github.com/learningsteps/api/internal/journal"
)

// Store is an in-memory implementation of the repository+writer used by the
// API. It is guarded by an RWMutex for concurrent reads/writes and keeps an
// insertion-order index so listings are deterministic.
type Store struct {
	mu      sync.RWMutex
	entries map[string]journal.Entry
	order   []string
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]journal.Entry)}
}

// Reset clears all stored entries. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = map[string]journal.Entry{}
	s.order = nil
	s.mu.Unlock()
}

// CreateEntry stores a copy of the entry and records its insertion position.
func (s *Store) CreateEntry(_ context.Context, e journal.Entry) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; ok {
		return journal.Entry{}, errs.ErrStorage
	}
	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)
	return e, nil
}

// Entry returns the entry with the given id.
func (s *Store) Entry(_ context.Context, id string) (journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return journal.Entry{}, errs.ErrNotFound
	}
	return e, nil
}

// Entries returns all entries in insertion order.
func (s *Store) Entries(_ context.Context) ([]journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]journal.Entry, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// UpdateEntry merges the partial update into the stored entry and refreshes
// updated_at. A missing id is not-found, never an upsert.
func (s *Store) UpdateEntry(_ context.Context, id string, upd journal.Update) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return journal.Entry{}, errs.ErrNotFound
	}
	upd.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	s.entries[id] = e
	return e, nil
}

// DeleteEntry removes an entry. Deleting a missing id is a no-op.
func (s *Store) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return nil
	}
	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAllEntries empties the store.
func (s *Store) DeleteAllEntries(_ context.Context) error {
	s.mu.Lock()
	s.entries = map[string]journal.Entry{}
	s.order = nil
	s.mu.Unlock()
	return nil
}

// Ready always succeeds for the in-memory store.
func (s *Store) Ready(context.Context) error { return nil }
