package metrics

import (
	"context"
	"time"

	"github.com/aestallon/minesweeper/internal/scoring"
	"github.com/aestallon/minesweeper/internal/storage"
)

// Store wraps a storage.Store and observes each call in StoreDuration.
type Store struct {
	next storage.Store
}

// Instrument wraps next.
func Instrument(next storage.Store) *Store {
	return &Store{next: next}
}

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

// PlayerScores implements storage.Store.
func (s *Store) PlayerScores(ctx context.Context, player string) ([]int64, error) {
	start := time.Now()
	scores, err := s.next.PlayerScores(ctx, player)
	observe("player_scores", start, err)
	return scores, err
}

// HighestScore implements storage.Store.
func (s *Store) HighestScore(ctx context.Context) (int64, error) {
	start := time.Now()
	score, err := s.next.HighestScore(ctx)
	observe("highest_score", start, err)
	return score, err
}

// RecordScore implements storage.Store.
func (s *Store) RecordScore(ctx context.Context, e scoring.Entry) (int64, error) {
	start := time.Now()
	id, err := s.next.RecordScore(ctx, e)
	observe("record_score", start, err)
	return id, err
}

// TopScores implements storage.Store.
func (s *Store) TopScores(ctx context.Context, limit int) ([]scoring.Entry, error) {
	start := time.Now()
	entries, err := s.next.TopScores(ctx, limit)
	observe("top_scores", start, err)
	return entries, err
}

// PlayerHistory implements storage.Store.
func (s *Store) PlayerHistory(ctx context.Context, player string, limit int) ([]scoring.Entry, error) {
	start := time.Now()
	entries, err := s.next.PlayerHistory(ctx, player, limit)
	observe("player_history", start, err)
	return entries, err
}

// PlayerStats implements storage.Store.
func (s *Store) PlayerStats(ctx context.Context, player string) (*storage.PlayerStats, error) {
	start := time.Now()
	stats, err := s.next.PlayerStats(ctx, player)
	observe("player_stats", start, err)
	return stats, err
}

// ClearScores implements storage.Store.
func (s *Store) ClearScores(ctx context.Context) error {
	start := time.Now()
	err := s.next.ClearScores(ctx)
	observe("clear_scores", start, err)
	return err
}

// Close implements storage.Store.
func (s *Store) Close() error {
	return s.next.Close()
}

var _ storage.Store = (*Store)(nil)
