package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/aestallon/minesweeper/internal/config"
	"github.com/aestallon/minesweeper/internal/core"
	"github.com/aestallon/minesweeper/internal/metrics"
	"github.com/aestallon/minesweeper/internal/minesweeper"
	"github.com/aestallon/minesweeper/internal/scoring"
)

// storeTimeout bounds score reads and writes at the end of a game.
const storeTimeout = 5 * time.Second

// GameModel is the Bubble Tea model for one minesweeper game. A new board
// can be dealt any number of times; each finished game is recorded once.
type GameModel struct {
	game       *minesweeper.Game
	screen     *core.Screen
	styles     Styles
	store      scoring.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	embedded   bool // Hosted by SessionModel; going back must not quit the program
	recorded   bool // Whether the current board's result has been recorded
}

// NewGameModel creates a game model. A nil store plays without
// persistence; a nil logger discards output.
func NewGameModel(game *minesweeper.Game, store scoring.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		styles:     defaultStyles,
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// WithStyles returns the model rendering through st.
func (m GameModel) WithStyles(st Styles) GameModel {
	m.styles = st
	return m
}

// Init deals the first board and starts the clock.
func (m GameModel) Init() tea.Cmd {
	m.newBoard()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		// Nothing to simulate; the tick only redraws the clock.
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey applies input immediately rather than on the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	m.inputFrame.Clear()
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.inputFrame.Has(core.ActionBack):
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit

	case m.inputFrame.Has(core.ActionRestart):
		m.config.Seed = 0
		m.newBoard()
		m.gameState = m.game.State()
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.gameState.GameOver && !m.recorded {
		m.recordResult()
	}
	return m, nil
}

func (m *GameModel) newBoard() {
	if err := m.game.Reset(m.config); err != nil {
		m.logger.Error("cannot deal board", "error", err)
		return
	}
	m.recorded = false
	metrics.GameStarted(m.game.Config())
}

// recordResult counts the finished game and, for a win, classifies and
// persists the score through the player's history.
func (m *GameModel) recordResult() {
	m.recorded = true
	metrics.GameFinished(m.gameState.Won)

	session := m.game.Session()
	m.logger.Info("game finished",
		"player", m.game.Player(),
		"session", session.ID(),
		"status", session.Status().String(),
		"elapsed", session.Elapsed(),
	)
	if !m.gameState.Won || m.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	player, err := scoring.NewPlayer(ctx, m.game.Player(), m.store)
	if err != nil {
		m.logger.Warn("cannot load player history", "player", m.game.Player(), "error", err)
		return
	}

	cfg := session.Config()
	entry := scoring.Entry{
		Score:      m.gameState.Score,
		Rows:       cfg.Rows(),
		Cols:       cfg.Cols(),
		Mines:      cfg.Mines(),
		DurationMs: session.Elapsed().Milliseconds(),
		SessionID:  session.ID(),
	}
	category, err := player.Record(ctx, entry, m.store, m.logger)
	if err != nil {
		m.logger.Warn("cannot classify score", "player", player.Name(), "error", err)
		return
	}

	metrics.ScoreRecorded(category)
	m.game.SetResult(category)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("minesweeper_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.styles.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config (may have been updated by resize).
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}

// Run plays game in the local terminal until the player quits or goes back.
// Returns true if the player asked for the menu.
func Run(game *minesweeper.Game, store scoring.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
