// Package httpapi serves the leaderboard over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aestallon/minesweeper/internal/metrics"
	"github.com/aestallon/minesweeper/internal/scoring"
)

// MaxLimit caps the limit query parameter.
const MaxLimit = 100

// Store is what the API reads from.
type Store interface {
	scoring.Store
	PlayerHistory(ctx context.Context, player string, limit int) ([]scoring.Entry, error)
}

// Server handles HTTP requests.
type Server struct {
	store  Store
	logger *log.Logger
}

// NewServer creates a server over store. A nil logger discards output.
func NewServer(store Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: store, logger: logger}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/scores", s.handleTopScores)
		r.Route("/players/{name}", func(r chi.Router) {
			r.Get("/scores", s.handlePlayerScores)
			r.Get("/best", s.handlePlayerBest)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type entryResponse struct {
	ID         int64     `json:"id"`
	Player     string    `json:"player"`
	Score      int64     `json:"score"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Mines      int       `json:"mines"`
	DurationMs int64     `json:"duration_ms"`
	SessionID  string    `json:"session_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(entries []scoring.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			ID:         e.ID,
			Player:     e.Player,
			Score:      e.Score,
			Rows:       e.Rows,
			Cols:       e.Cols,
			Mines:      e.Mines,
			DurationMs: e.DurationMs,
			SessionID:  e.SessionID,
			CreatedAt:  e.CreatedAt.UTC(),
		})
	}
	return out
}

type bestResponse struct {
	Player       string `json:"player"`
	PersonalBest int64  `json:"personal_best"`
	Highest      int64  `json:"highest"`
}

func (s *Server) handleTopScores(w http.ResponseWriter, r *http.Request) {
	limit, err := qLimit(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errObj("INVALID_LIMIT", err.Error()))
		return
	}

	entries, err := s.store.TopScores(r.Context(), limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(entries))
}

func (s *Server) handlePlayerScores(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(w, r)
	if !ok {
		return
	}
	limit, err := qLimit(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errObj("INVALID_LIMIT", err.Error()))
		return
	}

	entries, err := s.store.PlayerHistory(r.Context(), name, limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(entries))
}

func (s *Server) handlePlayerBest(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(w, r)
	if !ok {
		return
	}

	player, err := scoring.NewPlayer(r.Context(), name, s.store)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	highest, err := s.store.HighestScore(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bestResponse{
		Player:       player.Name(),
		PersonalBest: player.PersonalBest(),
		Highest:      highest,
	})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errObj("INTERNAL", "internal server error"))
}

func playerName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errObj("INVALID_PLAYER", "player name is required"))
		return "", false
	}
	return name, true
}

var errBadLimit = errors.New("limit must be a positive integer")

// qLimit reads ?limit=N. Missing means 0 (the store default); values above
// MaxLimit are capped.
func qLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errBadLimit
	}
	return min(n, MaxLimit), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errObj(code, msg string) map[string]any {
	return map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
}
