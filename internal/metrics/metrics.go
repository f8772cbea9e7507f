// Package metrics exposes Prometheus collectors for games and score storage.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aestallon/minesweeper/internal/minesweeper"
	"github.com/aestallon/minesweeper/internal/scoring"
)

var (
	GamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_games_started_total",
			Help: "Total boards dealt, by board size",
		},
		[]string{"board"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_games_finished_total",
			Help: "Total games that reached a terminal state, by result",
		},
		[]string{"result"},
	)
	ScoresRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_scores_recorded_total",
			Help: "Total scores recorded, by category",
		},
		[]string{"category"},
	)
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minesweeper_store_operation_seconds",
			Help:    "Score store latency, by operation and outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(ScoresRecorded)
	prometheus.MustRegister(StoreDuration)
}

// Result labels for GamesFinished.
const (
	ResultWon  = "won"
	ResultLost = "lost"
)

// BoardCustom labels boards that match no built-in preset.
const BoardCustom = "custom"

// GameStarted counts a new board. Built-in presets are labelled "RxC/M";
// every other size shares BoardCustom so the label set stays bounded.
func GameStarted(cfg minesweeper.GameConfig) {
	GamesStarted.WithLabelValues(BoardLabel(cfg)).Inc()
}

// BoardLabel returns the GamesStarted label for cfg.
func BoardLabel(cfg minesweeper.GameConfig) string {
	for _, preset := range []minesweeper.GameConfig{
		minesweeper.SmallConfig(),
		minesweeper.MediumConfig(),
		minesweeper.LargeConfig(),
	} {
		if cfg == preset {
			return fmt.Sprintf("%dx%d/%d", cfg.Rows(), cfg.Cols(), cfg.Mines())
		}
	}
	return BoardCustom
}

// GameFinished counts a terminal game.
func GameFinished(won bool) {
	result := ResultLost
	if won {
		result = ResultWon
	}
	GamesFinished.WithLabelValues(result).Inc()
}

// ScoreRecorded counts one classified score.
func ScoreRecorded(c scoring.Category) {
	ScoresRecorded.WithLabelValues(categoryLabel(c)).Inc()
}

func categoryLabel(c scoring.Category) string {
	switch c {
	case scoring.HighScore:
		return "high_score"
	case scoring.PersonalBest:
		return "personal_best"
	default:
		return "regular"
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
