package scoring

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. It backs games when no database is
// available and serves as a test double.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int64

	// Err, when set, is returned by every method.
	Err error
	// RecordErr, when set, is returned by RecordScore only.
	RecordErr error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(seed ...Entry) *MemoryStore {
	s := &MemoryStore{}
	for _, e := range seed {
		//nolint:errcheck // Seeding cannot fail without injected errors
		s.RecordScore(context.Background(), e)
	}
	return s
}

// RecordScore implements Sink.
func (s *MemoryStore) RecordScore(_ context.Context, e Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	if s.RecordErr != nil {
		return 0, s.RecordErr
	}

	s.nextID++
	e.ID = s.nextID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, e)
	return e.ID, nil
}

// PlayerScores implements Provider.
func (s *MemoryStore) PlayerScores(_ context.Context, player string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	var scores []int64
	for _, e := range s.entries {
		if strings.EqualFold(e.Player, player) {
			scores = append(scores, e.Score)
		}
	}
	slices.Sort(scores)
	return scores, nil
}

// HighestScore implements Provider.
func (s *MemoryStore) HighestScore(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}

	var best int64
	for _, e := range s.entries {
		best = max(best, e.Score)
	}
	return best, nil
}

// TopScores implements Leaderboard.
func (s *MemoryStore) TopScores(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if limit <= 0 {
		limit = 10
	}

	sorted := slices.Clone(s.entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// PlayerHistory returns the player's latest entries, newest first.
func (s *MemoryStore) PlayerHistory(_ context.Context, player string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if limit <= 0 {
		limit = 10
	}

	var history []Entry
	for i := len(s.entries) - 1; i >= 0 && len(history) < limit; i-- {
		if strings.EqualFold(s.entries[i].Player, player) {
			history = append(history, s.entries[i])
		}
	}
	return history, nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
