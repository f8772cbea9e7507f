package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/aestallon/minesweeper/internal/config"
	"github.com/aestallon/minesweeper/internal/scoring"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// SQLite stores scores in a local database file.
type SQLite struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*SQLite, error) {
	// Only "~" and "~/..." refer to the home directory; "~user" stays literal.
	dbPath = config.ExpandHome(dbPath)

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions share this handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLite{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			board_rows INTEGER NOT NULL DEFAULT 0,
			board_cols INTEGER NOT NULL DEFAULT 0,
			mines INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			session_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(LOWER(player));
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordScore inserts e and returns its ID.
func (s *SQLite) RecordScore(ctx context.Context, e scoring.Entry) (int64, error) {
	e = normalize(e)
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (player, score, board_rows, board_cols, mines, duration_ms, session_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Player, e.Score, e.Rows, e.Cols, e.Mines, e.DurationMs, e.SessionID,
		e.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// PlayerScores returns the player's scores in ascending order.
func (s *SQLite) PlayerScores(ctx context.Context, player string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT score FROM scores WHERE LOWER(player) = LOWER(?) ORDER BY score ASC`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player scores: %w", err)
	}
	defer rows.Close()

	var scores []int64
	for rows.Next() {
		var score int64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return scores, nil
}

// HighestScore returns the best score of any player, 0 if none.
func (s *SQLite) HighestScore(ctx context.Context) (int64, error) {
	var score sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return score.Int64, nil
}

// TopScores retrieves the best N entries, ordered by score descending.
func (s *SQLite) TopScores(ctx context.Context, limit int) ([]scoring.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, board_rows, board_cols, mines, duration_ms, session_id, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limitOrDefault(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// PlayerHistory retrieves the player's latest N entries, newest first.
func (s *SQLite) PlayerHistory(ctx context.Context, player string, limit int) ([]scoring.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, board_rows, board_cols, mines, duration_ms, session_id, created_at
		 FROM scores
		 WHERE LOWER(player) = LOWER(?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limitOrDefault(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player history: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]scoring.Entry, error) {
	defer rows.Close()

	var entries []scoring.Entry
	for rows.Next() {
		var e scoring.Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Rows, &e.Cols, &e.Mines,
			&e.DurationMs, &e.SessionID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerStats retrieves aggregated statistics for one player.
func (s *SQLite) PlayerStats(ctx context.Context, player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE LOWER(player) = LOWER(?)`,
		player,
	).Scan(&stats.Games, &stats.Best, &stats.Average, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearScores deletes all scores.
func (s *SQLite) ClearScores(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, v); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}

var _ Store = (*SQLite)(nil)
