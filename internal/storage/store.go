// Package storage persists scores in SQLite (default, pure Go via
// modernc.org/sqlite) or PostgreSQL (pgx).
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/aestallon/minesweeper/internal/scoring"
)

// DefaultLimit is used when a list query is given a non-positive limit.
const DefaultLimit = 10

// Store is a score database.
type Store interface {
	scoring.Store

	// PlayerHistory returns the player's most recent entries, newest first.
	PlayerHistory(ctx context.Context, player string, limit int) ([]scoring.Entry, error)
	// PlayerStats aggregates all of the player's entries.
	PlayerStats(ctx context.Context, player string) (*PlayerStats, error)
	// ClearScores deletes every entry.
	ClearScores(ctx context.Context) error
	Close() error
}

// PlayerStats contains aggregated statistics for one player.
type PlayerStats struct {
	Player     string
	Games      int
	Best       int64
	Average    float64
	LastPlayed time.Time
}

// Connect opens the store named by dsn: PostgreSQL for postgres:// and
// postgresql:// URLs, otherwise a SQLite file path.
func Connect(ctx context.Context, dsn string) (Store, error) {
	if IsPostgres(dsn) {
		return OpenPostgres(ctx, dsn)
	}
	return Open(dsn)
}

// IsPostgres reports whether dsn is a PostgreSQL URL.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func normalize(e scoring.Entry) scoring.Entry {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
