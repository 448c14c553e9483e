package ledger

import (
	"context"
	"sync"
)

// MemoryStore is an in-process ledger for tests and local runs. The mutex
// gives it the same allocation guarantee as the Postgres store.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[int]int
	entries  []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[int]int)}
}

// Provision seeds a year's counter at the given last number
func (s *MemoryStore) Provision(year, lastNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[year] = lastNumber
}

func (s *MemoryStore) ReserveNext(_ context.Context, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.counters[year]
	if !ok {
		return 0, ErrYearNotProvisioned
	}
	s.counters[year] = last + 1
	return last + 1, nil
}

func (s *MemoryStore) Record(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a copy of the recorded rows
func (s *MemoryStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
