package storage

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/aestallon/minesweeper/internal/scoring"
)

// runStoreTests exercises the Store contract. Both backends run it.
func runStoreTests(t *testing.T, open func(t *testing.T) Store) {
	t.Run("empty", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		highest, err := s.HighestScore(ctx)
		if err != nil {
			t.Fatalf("HighestScore() failed: %v", err)
		}
		if highest != 0 {
			t.Errorf("HighestScore() = %d, expected 0", highest)
		}

		scores, err := s.PlayerScores(ctx, "nobody")
		if err != nil {
			t.Fatalf("PlayerScores() failed: %v", err)
		}
		if len(scores) != 0 {
			t.Errorf("PlayerScores() = %v, expected none", scores)
		}

		stats, err := s.PlayerStats(ctx, "nobody")
		if err != nil {
			t.Fatalf("PlayerStats() failed: %v", err)
		}
		if stats.Games != 0 || stats.Best != 0 || !stats.LastPlayed.IsZero() {
			t.Errorf("PlayerStats() = %+v, expected zero stats", stats)
		}
	})

	t.Run("record and query", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		entries := []scoring.Entry{
			{Player: "Alice", Score: 100, Rows: 8, Cols: 8, Mines: 5, DurationMs: 5000, SessionID: "s1", CreatedAt: base},
			{Player: "alice", Score: 50, Rows: 8, Cols: 8, Mines: 5, DurationMs: 10000, SessionID: "s2", CreatedAt: base.Add(time.Minute)},
			{Player: "ALICE", Score: 200, Rows: 10, Cols: 10, Mines: 10, DurationMs: 5000, SessionID: "s3", CreatedAt: base.Add(2 * time.Minute)},
			{Player: "bob", Score: 500, Rows: 16, Cols: 16, Mines: 55, DurationMs: 11000, SessionID: "s4", CreatedAt: base.Add(3 * time.Minute)},
		}
		for _, e := range entries {
			id, err := s.RecordScore(ctx, e)
			if err != nil {
				t.Fatalf("RecordScore() failed: %v", err)
			}
			if id <= 0 {
				t.Errorf("RecordScore() returned id %d", id)
			}
		}

		// Player lookups ignore case and come back ascending.
		scores, err := s.PlayerScores(ctx, "aLiCe")
		if err != nil {
			t.Fatalf("PlayerScores() failed: %v", err)
		}
		if want := []int64{50, 100, 200}; !slices.Equal(scores, want) {
			t.Errorf("PlayerScores() = %v, expected %v", scores, want)
		}

		highest, err := s.HighestScore(ctx)
		if err != nil {
			t.Fatalf("HighestScore() failed: %v", err)
		}
		if highest != 500 {
			t.Errorf("HighestScore() = %d, expected 500", highest)
		}

		top, err := s.TopScores(ctx, 2)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if len(top) != 2 || top[0].Score != 500 || top[1].Score != 200 {
			t.Fatalf("TopScores(2) = %+v, expected scores 500, 200", top)
		}
		if top[0].Player != "bob" || top[0].Rows != 16 || top[0].Mines != 55 || top[0].SessionID != "s4" {
			t.Errorf("TopScores()[0] = %+v, expected bob's 16x16 entry", top[0])
		}
		if !top[0].CreatedAt.Equal(base.Add(3 * time.Minute)) {
			t.Errorf("CreatedAt = %v, expected %v", top[0].CreatedAt, base.Add(3*time.Minute))
		}

		all, err := s.TopScores(ctx, 0)
		if err != nil {
			t.Fatalf("TopScores(0) failed: %v", err)
		}
		if len(all) != 4 {
			t.Errorf("TopScores(0) returned %d entries, expected all 4", len(all))
		}

		history, err := s.PlayerHistory(ctx, "alice", 2)
		if err != nil {
			t.Fatalf("PlayerHistory() failed: %v", err)
		}
		if len(history) != 2 || history[0].SessionID != "s3" || history[1].SessionID != "s2" {
			t.Errorf("PlayerHistory() = %+v, expected s3 then s2", history)
		}

		stats, err := s.PlayerStats(ctx, "alice")
		if err != nil {
			t.Fatalf("PlayerStats() failed: %v", err)
		}
		if stats.Games != 3 || stats.Best != 200 {
			t.Errorf("PlayerStats() = %+v, expected 3 games, best 200", stats)
		}
		if diff := stats.Average - 350.0/3; diff > 0.001 || diff < -0.001 {
			t.Errorf("Average = %f, expected %f", stats.Average, 350.0/3)
		}
		if !stats.LastPlayed.Equal(base.Add(2 * time.Minute)) {
			t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, base.Add(2*time.Minute))
		}
	})

	t.Run("clear", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		if _, err := s.RecordScore(ctx, scoring.Entry{Player: "carol", Score: 42}); err != nil {
			t.Fatalf("RecordScore() failed: %v", err)
		}
		if err := s.ClearScores(ctx); err != nil {
			t.Fatalf("ClearScores() failed: %v", err)
		}

		top, err := s.TopScores(ctx, 10)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if len(top) != 0 {
			t.Errorf("Expected 0 scores after clear, got %d", len(top))
		}
	})

	t.Run("player record round trip", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		p, err := scoring.NewPlayer(ctx, "dave", s)
		if err != nil {
			t.Fatalf("NewPlayer() failed: %v", err)
		}
		first, err := p.Record(ctx, scoring.Entry{Score: 10}, s, nil)
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
		if first != scoring.HighScore {
			t.Errorf("first Record() = %v, expected HighScore", first)
		}

		again, err := scoring.NewPlayer(ctx, "DAVE", s)
		if err != nil {
			t.Fatalf("NewPlayer() failed: %v", err)
		}
		if again.PersonalBest() != 10 {
			t.Errorf("PersonalBest() after reload = %d, expected 10", again.PersonalBest())
		}
	})
}
