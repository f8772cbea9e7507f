package minesweeper

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/aestallon/minesweeper/internal/scoring"
)

// Session is one game: a board, its configuration, timing and status.
//
//	InProgress -> Won
//	InProgress -> Lost
//
// Both end states are terminal; every action afterwards fails with
// ErrSessionTerminated and changes nothing.
type Session struct {
	id     string
	cfg    GameConfig
	board  *Board
	status Status

	startTime int64 // Unix milliseconds, 0 until set
	endTime   int64

	detonated    Position
	hasDetonated bool
	score        int64
	hasScore     bool

	now    func() time.Time
	logger *log.Logger
}

// Option customizes a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	rng      Rand
	clock    func() time.Time
	logger   *log.Logger
	contents [][]CellContent
}

// WithRand sets the random source used for mine placement.
func WithRand(rng Rand) Option {
	return func(o *sessionOptions) { o.rng = rng }
}

// WithSeed seeds a fresh math/rand source, making placement reproducible.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithClock replaces time.Now for start and end timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *sessionOptions) { o.clock = clock }
}

// WithLogger enables debug logging of session transitions.
func WithLogger(logger *log.Logger) Option {
	return func(o *sessionOptions) { o.logger = logger }
}

// WithContents uses a pre-generated minefield instead of generating one.
// Its dimensions and mine count must match the configuration.
func WithContents(contents [][]CellContent) Option {
	return func(o *sessionOptions) { o.contents = contents }
}

// NewSession generates a board for cfg and starts the clock.
func NewSession(cfg GameConfig, opts ...Option) (*Session, error) {
	if !cfg.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrConfiguration, cfg)
	}

	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.rng == nil && o.contents == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	contents := o.contents
	if contents == nil {
		var err error
		contents, err = Generate(cfg.Rows(), cfg.Cols(), cfg.Mines(), o.rng)
		if err != nil {
			return nil, err
		}
	}

	board, err := NewBoard(contents)
	if err != nil {
		return nil, err
	}
	if board.Rows() != cfg.Rows() || board.Cols() != cfg.Cols() || board.MineCount() != cfg.Mines() {
		return nil, fmt.Errorf("%w: board %dx%d with %d mines does not match %s",
			ErrConfiguration, board.Rows(), board.Cols(), board.MineCount(), cfg)
	}

	s := &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		board:  board,
		status: InProgress,
		now:    o.clock,
		logger: o.logger,
	}
	s.startTime = s.now().UnixMilli()
	s.logger.Debug("session started", "id", s.id, "config", cfg.String())

	return s, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the session's configuration.
func (s *Session) Config() GameConfig { return s.cfg }

// Status returns the current status.
func (s *Session) Status() Status { return s.status }

// StartTime returns the start timestamp in Unix milliseconds.
func (s *Session) StartTime() int64 { return s.startTime }

// EndTime returns the end timestamp in Unix milliseconds, or 0 while in progress.
func (s *Session) EndTime() int64 { return s.endTime }

// Elapsed returns the play time so far, frozen once the game ends.
func (s *Session) Elapsed() time.Duration {
	end := s.endTime
	if end == 0 {
		end = s.now().UnixMilli()
	}
	if end < s.startTime {
		return 0
	}
	return time.Duration(end-s.startTime) * time.Millisecond
}

// Rows returns the board height.
func (s *Session) Rows() int { return s.board.Rows() }

// Cols returns the board width.
func (s *Session) Cols() int { return s.board.Cols() }

// MinesRemaining returns mines minus flags. It goes negative when the
// player places more flags than there are mines.
func (s *Session) MinesRemaining() int {
	return s.cfg.Mines() - s.board.FlagCount()
}

// Detonated returns the mine that ended a lost game.
func (s *Session) Detonated() (Position, bool) {
	return s.detonated, s.hasDetonated
}

// FinalScore returns the score of a won game.
func (s *Session) FinalScore() (int64, bool) {
	return s.score, s.hasScore
}

// CellView returns what the player may see at pos: the state, and the
// content only once the cell is revealed.
func (s *Session) CellView(pos Position) (CellView, error) {
	cell, err := s.board.Cell(pos)
	if err != nil {
		return CellView{}, err
	}
	view := CellView{State: cell.State}
	if cell.State == Revealed {
		view.Content = cell.Content
		view.Visible = true
	}
	return view, nil
}

// Reveal uncovers pos and drives the status transition.
func (s *Session) Reveal(pos Position) (RevealOutcome, error) {
	if s.status.Terminal() {
		return RevealOutcome{Kind: OutcomeAlreadyHandled}, fmt.Errorf("%w: game is %s", ErrSessionTerminated, s.status)
	}

	outcome, err := RevealCell(s.board, pos)
	if err != nil {
		return outcome, err
	}

	switch outcome.Kind {
	case OutcomeMine:
		s.lose(pos)
	case OutcomeSafe:
		if s.board.SafeRemaining() == 0 {
			s.win()
		}
	}

	return outcome, nil
}

// ToggleFlag switches pos between Covered and Flagged.
func (s *Session) ToggleFlag(pos Position) error {
	if s.status.Terminal() {
		return fmt.Errorf("%w: game is %s", ErrSessionTerminated, s.status)
	}
	return s.board.ToggleFlag(pos)
}

func (s *Session) finish(status Status) {
	s.status = status
	s.endTime = s.now().UnixMilli()
	if s.endTime < s.startTime {
		s.endTime = s.startTime
	}
	s.board.ForceRevealAll()
}

func (s *Session) lose(pos Position) {
	s.detonated = pos
	s.hasDetonated = true
	s.finish(Lost)
	s.logger.Debug("session lost", "id", s.id, "mine", pos.String(), "elapsed", s.Elapsed())
}

func (s *Session) win() {
	s.finish(Won)

	score, err := scoring.Score(s.cfg.Mines(), s.startTime, s.endTime)
	if err != nil {
		s.logger.Error("cannot compute score", "id", s.id, "error", err)
		return
	}
	s.score = score
	s.hasScore = true
	s.logger.Debug("session won", "id", s.id, "elapsed", s.Elapsed(), "score", score)
}
