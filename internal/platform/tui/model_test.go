package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aestallon/minesweeper/internal/core"
	"github.com/aestallon/minesweeper/internal/metrics"
	"github.com/aestallon/minesweeper/internal/minesweeper"
	"github.com/aestallon/minesweeper/internal/scoring"
)

type fakeClock struct {
	ms int64
}

func (c *fakeClock) now() time.Time          { return time.UnixMilli(c.ms) }
func (c *fakeClock) advance(d time.Duration) { c.ms += d.Milliseconds() }

// newTestModel builds a model over a fixed 3x4 board with one mine in the
// corner. The cursor starts at (1,2), a zero cell, so one reveal wins.
func newTestModel(t *testing.T, store scoring.Store, rows ...string) (GameModel, *fakeClock) {
	t.Helper()
	if len(rows) == 0 {
		rows = []string{"*...", "....", "...."}
	}
	contents, err := minesweeper.ContentsFromRows(rows...)
	if err != nil {
		t.Fatalf("ContentsFromRows() error = %v", err)
	}
	mines := strings.Count(strings.Join(rows, ""), "*")
	cfg, err := minesweeper.NewGameConfig(len(rows), len([]rune(rows[0])), mines)
	if err != nil {
		t.Fatalf("NewGameConfig() error = %v", err)
	}

	clock := &fakeClock{ms: 50_000}
	game, err := minesweeper.NewGame(cfg, "tester",
		minesweeper.WithContents(contents),
		minesweeper.WithClock(clock.now),
	)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	rc := core.DefaultConfig()
	rc.Seed = 1
	rc.Player = "tester"
	m := NewGameModel(game, store, rc, nil)
	m.Init()
	return m, clock
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) (GameModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	gm, ok := updated.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, want GameModel", updated)
	}
	return gm, cmd
}

func TestGameModelWinRecordsScore(t *testing.T) {
	store := scoring.NewMemoryStore()
	m, clock := newTestModel(t, store)
	clock.advance(2 * time.Second)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	if !m.gameState.GameOver || !m.gameState.Won {
		t.Fatalf("state = %+v, want won", m.gameState)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d entries, want 1", store.Len())
	}

	top, _ := store.TopScores(context.Background(), 1)
	e := top[0]
	if e.Player != "tester" || e.Score != 5000 {
		t.Errorf("entry = %+v, want tester with 5000", e)
	}
	if e.Rows != 3 || e.Cols != 4 || e.Mines != 1 || e.DurationMs != 2000 {
		t.Errorf("entry board = %dx%d/%d in %dms, want 3x4/1 in 2000ms", e.Rows, e.Cols, e.Mines, e.DurationMs)
	}
	if e.SessionID == "" {
		t.Error("entry has no session ID")
	}

	if cat, ok := m.game.Result(); !ok || cat != scoring.HighScore {
		t.Errorf("Result() = %v, %v, want HighScore", cat, ok)
	}
	if !strings.Contains(m.game.Message(), "HIGH SCORE") {
		t.Errorf("Message() = %q, want high score banner", m.game.Message())
	}

	// Further input after the end must not record again.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if store.Len() != 1 {
		t.Errorf("store has %d entries after extra input, want 1", store.Len())
	}
}

func TestGameModelCountsBoardsBySize(t *testing.T) {
	custom := metrics.GamesStarted.WithLabelValues(metrics.BoardCustom)
	before := testutil.ToFloat64(custom)

	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	// Init and restart each deal a 3x4 board, which is no preset.
	if got := testutil.ToFloat64(custom); got != before+2 {
		t.Errorf("custom boards started = %v, want %v", got, before+2)
	}
}

func TestGameModelLossRecordsNothing(t *testing.T) {
	store := scoring.NewMemoryStore()
	m, _ := newTestModel(t, store)

	// Walk to the mine at (0,0) and step on it.
	m, _ = press(t, m, keyRunes("k"))
	m, _ = press(t, m, keyRunes("h"))
	m, _ = press(t, m, keyRunes("h"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.gameState.GameOver || m.gameState.Won {
		t.Fatalf("state = %+v, want lost", m.gameState)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
	if !m.recorded {
		t.Error("loss not marked as recorded")
	}
}

func TestGameModelRestart(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.gameState.GameOver {
		t.Fatal("expected game over after winning reveal")
	}

	m, _ = press(t, m, keyRunes("r"))
	if m.gameState.GameOver {
		t.Error("game still over after restart")
	}
	if m.recorded {
		t.Error("recorded flag not reset")
	}
	if m.game.Session().Status() != minesweeper.InProgress {
		t.Errorf("Status() = %v, want InProgress", m.game.Session().Status())
	}
}

func TestGameModelStoreFailure(t *testing.T) {
	store := scoring.NewMemoryStore()
	store.Err = errors.New("database is locked")
	m, _ := newTestModel(t, store)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	if !m.gameState.Won {
		t.Fatal("expected win")
	}
	if _, ok := m.game.Result(); ok {
		t.Error("Result() set despite store failure")
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	back, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() {
		t.Error("esc did not request the menu")
	}
	if cmd == nil {
		t.Error("standalone back should quit the program")
	}

	m.embedded = true
	back, cmd = press(t, m, keyRunes("b"))
	if !back.BackToMenu() || cmd != nil {
		t.Errorf("embedded back = %v, cmd %v; want menu without quitting", back.BackToMenu(), cmd)
	}

	quit, _ := press(t, m, keyRunes("q"))
	if !quit.IsQuitting() {
		t.Error("q did not quit")
	}
	if quit.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestGameModelResizeKeepsBoard(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, keyRunes("f"))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(GameModel)

	if m.Config().ScreenW != 100 || m.Config().ScreenH != 30 {
		t.Errorf("Config() size = %dx%d, want 100x30", m.Config().ScreenW, m.Config().ScreenH)
	}
	if got := m.game.Session().MinesRemaining(); got != 0 {
		t.Errorf("MinesRemaining() = %d after resize, want flag kept (0)", got)
	}
	if !strings.Contains(m.View(), "MINESWEEPER") {
		t.Error("View() missing title")
	}
}

func TestGameModelTick(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	m.backToMenu = true
	if _, cmd := m.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("tick after leaving should stop")
	}
}
