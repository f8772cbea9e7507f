package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aestallon/minesweeper/internal/scoring"
)

// Postgres stores scores in a shared PostgreSQL database, for servers where
// several hosts record into one leaderboard.
type Postgres struct {
	db *pgxpool.Pool
}

// OpenPostgres connects to dsn and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Postgres{db: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Postgres) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scores (
			id BIGSERIAL PRIMARY KEY,
			player TEXT NOT NULL,
			score BIGINT NOT NULL,
			board_rows INTEGER NOT NULL DEFAULT 0,
			board_cols INTEGER NOT NULL DEFAULT 0,
			mines INTEGER NOT NULL DEFAULT 0,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			session_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores (LOWER(player));
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores (score DESC);
	`)
	return err
}

// Close releases the pool.
func (s *Postgres) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// RecordScore inserts e and returns its ID.
func (s *Postgres) RecordScore(ctx context.Context, e scoring.Entry) (int64, error) {
	e = normalize(e)
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO scores (player, score, board_rows, board_cols, mines, duration_ms, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, e.Player, e.Score, e.Rows, e.Cols, e.Mines, e.DurationMs, e.SessionID, e.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// PlayerScores returns the player's scores in ascending order.
func (s *Postgres) PlayerScores(ctx context.Context, player string) ([]int64, error) {
	rows, err := s.db.Query(ctx,
		`SELECT score FROM scores WHERE LOWER(player) = LOWER($1) ORDER BY score ASC`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player scores: %w", err)
	}
	scores, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	return scores, nil
}

// HighestScore returns the best score of any player, 0 if none.
func (s *Postgres) HighestScore(ctx context.Context) (int64, error) {
	var score int64
	if err := s.db.QueryRow(ctx, `SELECT COALESCE(MAX(score), 0) FROM scores`).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// TopScores retrieves the best N entries, ordered by score descending.
func (s *Postgres) TopScores(ctx context.Context, limit int) ([]scoring.Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, player, score, board_rows, board_cols, mines, duration_ms, session_id, created_at
		FROM scores
		ORDER BY score DESC, id ASC
		LIMIT $1
	`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return collectEntries(rows)
}

// PlayerHistory retrieves the player's latest N entries, newest first.
func (s *Postgres) PlayerHistory(ctx context.Context, player string, limit int) ([]scoring.Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, player, score, board_rows, board_cols, mines, duration_ms, session_id, created_at
		FROM scores
		WHERE LOWER(player) = LOWER($1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, player, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player history: %w", err)
	}
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]scoring.Entry, error) {
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (scoring.Entry, error) {
		var e scoring.Entry
		err := row.Scan(&e.ID, &e.Player, &e.Score, &e.Rows, &e.Cols, &e.Mines,
			&e.DurationMs, &e.SessionID, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	return entries, nil
}

// PlayerStats retrieves aggregated statistics for one player.
func (s *Postgres) PlayerStats(ctx context.Context, player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed *time.Time
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)::float8, MAX(created_at)
		FROM scores WHERE LOWER(player) = LOWER($1)
	`, player).Scan(&stats.Games, &stats.Best, &stats.Average, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	if lastPlayed != nil {
		stats.LastPlayed = *lastPlayed
	}
	return stats, nil
}

// ClearScores deletes all scores.
func (s *Postgres) ClearScores(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM scores`); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

var _ Store = (*Postgres)(nil)
