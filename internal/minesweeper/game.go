package minesweeper

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aestallon/minesweeper/internal/core"
	"github.com/aestallon/minesweeper/internal/scoring"
)

// Game drives a Session with a cursor, for frontends that work in terms of
// actions and a screen buffer rather than positions.
type Game struct {
	cfg    GameConfig
	player string
	opts   []Option
	logger *log.Logger

	session *Session
	cursor  Position
	seed    int64

	screenW int
	screenH int

	message   string
	result    scoring.Category
	hasResult bool
}

// NewGame creates a game for cfg. Call Reset before the first Step.
// Session options (clock, logger, fixed contents) apply to every board the
// game creates; the seed comes from the runtime config.
func NewGame(cfg GameConfig, player string, opts ...Option) (*Game, error) {
	if !cfg.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrConfiguration, cfg)
	}
	if player == "" {
		player = scoring.DefaultPlayer
	}

	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		cfg:    cfg,
		player: player,
		opts:   opts,
		logger: logger,
	}, nil
}

// Reset starts a new board. A zero seed picks one from the clock.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if rc.Player != "" {
		g.player = rc.Player
	}

	opts := append([]Option{WithSeed(seed)}, g.opts...)
	session, err := NewSession(g.cfg, opts...)
	if err != nil {
		return err
	}

	g.session = session
	g.seed = seed
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.cursor = Pos(g.cfg.Rows()/2, g.cfg.Cols()/2)
	g.message = ""
	g.hasResult = false
	g.logger.Debug("new board", "player", g.player, "config", g.cfg.String(), "seed", seed)
	return nil
}

// Resize updates the screen size used for layout.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
}

// Session returns the current session, nil before the first Reset.
func (g *Game) Session() *Session { return g.session }

// Config returns the board configuration.
func (g *Game) Config() GameConfig { return g.cfg }

// Player returns the player name.
func (g *Game) Player() string { return g.player }

// Seed returns the seed of the current board.
func (g *Game) Seed() int64 { return g.seed }

// Cursor returns the cursor position.
func (g *Game) Cursor() Position { return g.cursor }

// Message returns the status line text.
func (g *Game) Message() string { return g.message }

// Step applies one frame of input. Rejected moves become a status message;
// they never end the game.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}

	g.moveCursor(input)

	changed := false
	if !g.session.Status().Terminal() {
		switch {
		case input.Has(core.ActionReveal):
			changed = g.reveal()
		case input.Has(core.ActionFlag):
			changed = g.toggleFlag()
		}
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

func (g *Game) moveCursor(input core.InputFrame) {
	row, col := g.cursor.Row, g.cursor.Col
	if input.Has(core.ActionUp) {
		row--
	}
	if input.Has(core.ActionDown) {
		row++
	}
	if input.Has(core.ActionLeft) {
		col--
	}
	if input.Has(core.ActionRight) {
		col++
	}
	g.cursor = Pos(
		core.Clamp(row, 0, g.cfg.Rows()-1),
		core.Clamp(col, 0, g.cfg.Cols()-1),
	)
}

func (g *Game) reveal() bool {
	out, err := g.session.Reveal(g.cursor)
	if err != nil {
		g.message = g.describe(err)
		return false
	}
	g.message = ""

	switch {
	case out.Kind == OutcomeMine:
		g.message = "BOOM! You hit a mine. Press r for a new board."
	case g.session.Status() == Won:
		score, _ := g.session.FinalScore()
		g.message = fmt.Sprintf("Cleared in %s. Score: %d", g.session.Elapsed().Round(time.Millisecond), score)
	}
	return true
}

func (g *Game) toggleFlag() bool {
	if err := g.session.ToggleFlag(g.cursor); err != nil {
		g.message = g.describe(err)
		return false
	}
	g.message = ""
	return true
}

func (g *Game) describe(err error) string {
	switch {
	case errors.Is(err, ErrSessionTerminated):
		return "The game is over. Press r for a new board."
	case errors.Is(err, ErrInvalidTransition):
		if view, _ := g.session.CellView(g.cursor); view.State == Flagged {
			return "That cell is flagged. Press f to remove the flag first."
		}
		return "That cell is already open."
	default:
		g.logger.Warn("unexpected move error", "cursor", g.cursor.String(), "error", err)
		return err.Error()
	}
}

// SetResult records how the final score ranked, for the end-of-game banner.
func (g *Game) SetResult(c scoring.Category) {
	g.result = c
	g.hasResult = true
	if g.session != nil && g.session.Status() == Won {
		score, _ := g.session.FinalScore()
		g.message = fmt.Sprintf("%s Score: %d", c.Message(), score)
	}
}

// Result returns the category set by SetResult.
func (g *Game) Result() (scoring.Category, bool) {
	return g.result, g.hasResult
}

// State reports the game status to the platform.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := core.GameState{
		GameOver: g.session.Status().Terminal(),
		Won:      g.session.Status() == Won,
	}
	if score, ok := g.session.FinalScore(); ok {
		st.Score = score
	}
	return st
}
