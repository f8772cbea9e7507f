package scoring

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewPlayerPersonalBest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(
		Entry{Player: "Alice", Score: 30},
		Entry{Player: "alice", Score: 120},
		Entry{Player: "ALICE", Score: 75},
		Entry{Player: "bob", Score: 999},
	)

	p, err := NewPlayer(ctx, "alice", store)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	if p.PersonalBest() != 120 {
		t.Errorf("PersonalBest() = %d, want 120", p.PersonalBest())
	}
	if want := []int64{30, 75, 120}; !slices.Equal(p.Scores(), want) {
		t.Errorf("Scores() = %v, want %v", p.Scores(), want)
	}
}

func TestNewPlayerWithoutHistory(t *testing.T) {
	p, err := NewPlayer(context.Background(), "newcomer", NewMemoryStore())
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	if p.PersonalBest() != 0 {
		t.Errorf("PersonalBest() = %d, want 0", p.PersonalBest())
	}
	if len(p.Scores()) != 0 {
		t.Errorf("Scores() = %v, want empty", p.Scores())
	}
}

func TestNewPlayerRejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := NewPlayer(context.Background(), name, NewMemoryStore())
		if !errors.Is(err, ErrInvalidPlayer) {
			t.Errorf("NewPlayer(%q) error = %v, want ErrInvalidPlayer", name, err)
		}
	}
}

func TestNewPlayerProviderFailure(t *testing.T) {
	store := NewMemoryStore()
	store.Err = errors.New("connection refused")

	if _, err := NewPlayer(context.Background(), "alice", store); err == nil {
		t.Fatal("NewPlayer() should fail when the provider fails")
	}
}

func TestRecordClassification(t *testing.T) {
	tests := []struct {
		name     string
		history  []Entry
		score    int64
		want     Category
		wantBest int64
	}{
		{
			name:     "first score ever is a high score",
			score:    10,
			want:     HighScore,
			wantBest: 10,
		},
		{
			name:     "beats own best but not the leader",
			history:  []Entry{{Player: "alice", Score: 50}, {Player: "bob", Score: 200}},
			score:    150,
			want:     PersonalBest,
			wantBest: 150,
		},
		{
			name:     "beats the leader",
			history:  []Entry{{Player: "alice", Score: 50}, {Player: "bob", Score: 200}},
			score:    201,
			want:     HighScore,
			wantBest: 201,
		},
		{
			name:     "worse than own best",
			history:  []Entry{{Player: "alice", Score: 50}, {Player: "bob", Score: 200}},
			score:    49,
			want:     Regular,
			wantBest: 50,
		},
		{
			name:     "equal to own best",
			history:  []Entry{{Player: "alice", Score: 50}, {Player: "bob", Score: 200}},
			score:    50,
			want:     Regular,
			wantBest: 50,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore(tc.history...)
			p, err := NewPlayer(ctx, "alice", store)
			if err != nil {
				t.Fatalf("NewPlayer() error = %v", err)
			}

			got, err := p.Record(ctx, Entry{Score: tc.score}, store, nil)
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Record() = %v, want %v", got, tc.want)
			}
			if p.PersonalBest() != tc.wantBest {
				t.Errorf("PersonalBest() = %d, want %d", p.PersonalBest(), tc.wantBest)
			}
			if store.Len() != len(tc.history)+1 {
				t.Errorf("store has %d entries, want %d", store.Len(), len(tc.history)+1)
			}
		})
	}
}

func TestRecordStoresPlayerName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p, _ := NewPlayer(ctx, "Carol", store)

	if _, err := p.Record(ctx, Entry{Player: "someone-else", Score: 7, Mines: 5}, store, nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	top, _ := store.TopScores(ctx, 1)
	if len(top) != 1 || top[0].Player != "Carol" {
		t.Fatalf("TopScores() = %+v, want one entry for Carol", top)
	}
	if top[0].ID == 0 {
		t.Error("stored entry should have an ID")
	}
}

func TestRecordSinkFailureIsFireAndForget(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.RecordErr = errors.New("disk full")

	var buf bytes.Buffer
	logger := log.New(&buf)

	p, _ := NewPlayer(ctx, "alice", store)
	got, err := p.Record(ctx, Entry{Score: 500}, store, logger)
	if err != nil {
		t.Fatalf("Record() error = %v, want nil on sink failure", err)
	}
	if got != HighScore {
		t.Errorf("Record() = %v, want HighScore", got)
	}
	if p.PersonalBest() != 500 {
		t.Errorf("PersonalBest() = %d, want 500", p.PersonalBest())
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("sink failure should be logged, got %q", buf.String())
	}
}

func TestRecordProviderFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p, _ := NewPlayer(ctx, "alice", store)

	store.Err = errors.New("timeout")
	got, err := p.Record(ctx, Entry{Score: 500}, store, nil)
	if err == nil {
		t.Fatal("Record() should fail when the highest score cannot be read")
	}
	if got != Regular {
		t.Errorf("Record() = %v, want Regular", got)
	}
	if p.PersonalBest() != 0 {
		t.Errorf("PersonalBest() = %d, want 0", p.PersonalBest())
	}
}

func TestRecordRejectsNegativeScore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p, _ := NewPlayer(ctx, "alice", store)

	if _, err := p.Record(ctx, Entry{Score: -1}, store, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Record() error = %v, want ErrInvalidState", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}

func TestMemoryStoreTopScores(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(
		Entry{Player: "a", Score: 10},
		Entry{Player: "b", Score: 30},
		Entry{Player: "c", Score: 20},
	)

	top, err := store.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopScores() returned %d entries, want 2", len(top))
	}
	if top[0].Score != 30 || top[1].Score != 20 {
		t.Errorf("TopScores() = [%d %d], want [30 20]", top[0].Score, top[1].Score)
	}

	highest, _ := store.HighestScore(ctx)
	if highest != 30 {
		t.Errorf("HighestScore() = %d, want 30", highest)
	}
}

func TestMemoryStorePlayerHistory(t *testing.T) {
	store := NewMemoryStore(
		Entry{Player: "ann", Score: 1},
		Entry{Player: "bob", Score: 2},
		Entry{Player: "Ann", Score: 3},
		Entry{Player: "ANN", Score: 4},
	)

	history, err := store.PlayerHistory(context.Background(), "ann", 2)
	if err != nil {
		t.Fatalf("PlayerHistory() error = %v", err)
	}
	if len(history) != 2 || history[0].Score != 4 || history[1].Score != 3 {
		t.Errorf("PlayerHistory() = %+v, want scores [4 3]", history)
	}
}
