package stats

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory Service for tests and ephemeral runs.
// Nothing survives the process.
type MemoryStore struct {
	mu              sync.Mutex
	lifetimeCorrect int
	lifetimeTotal   int
	gamesCount      int
	best            GameRecord
	now             func() time.Time
}

// NewMemoryStore creates an empty in-memory statistics store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Record folds one finished round into the counters.
func (s *MemoryStore) Record(correct, total int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := GameRecord{Correct: correct, Total: total, Date: s.now().UTC().Truncate(time.Second)}
	if record.Beats(s.best) {
		s.best = record
	}
	s.gamesCount++
	s.lifetimeCorrect += correct
	s.lifetimeTotal += total

	return s.snapshotLocked(), nil
}

// Snapshot returns the current statistics.
func (s *MemoryStore) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) snapshotLocked() Snapshot {
	return Snapshot{
		GamesCount:    s.gamesCount,
		BestGame:      s.best,
		TotalAccuracy: accuracy(s.lifetimeCorrect, s.lifetimeTotal),
	}
}
