package scoring

import (
	"context"
	"time"
)

// DefaultPlayer is the name used when none is given.
const DefaultPlayer = "guest"

// Entry is one recorded score.
type Entry struct {
	ID         int64
	Player     string
	Score      int64
	Rows       int
	Cols       int
	Mines      int
	DurationMs int64
	SessionID  string
	CreatedAt  time.Time
}

// Provider supplies prior results at scoring time.
type Provider interface {
	// PlayerScores returns the player's past scores in ascending order.
	// Player names match case-insensitively.
	PlayerScores(ctx context.Context, player string) ([]int64, error)

	// HighestScore returns the best score of any player, or 0 if none.
	HighestScore(ctx context.Context) (int64, error)
}

// Sink persists scores.
type Sink interface {
	// RecordScore stores the entry and returns its ID.
	RecordScore(ctx context.Context, e Entry) (int64, error)
}

// Leaderboard lists the best scores across all players.
type Leaderboard interface {
	TopScores(ctx context.Context, limit int) ([]Entry, error)
}

// Store is everything the game needs from score persistence.
type Store interface {
	Provider
	Sink
	Leaderboard
}
