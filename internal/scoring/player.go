package scoring

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Player tracks one player's score history and personal best across games.
type Player struct {
	name         string
	scores       []int64
	personalBest int64
}

// NewPlayer loads the player's history from provider. The personal best is
// the highest past score, or 0 for a new player.
func NewPlayer(ctx context.Context, name string, provider Provider) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidPlayer)
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: nil score provider", ErrInvalidPlayer)
	}

	scores, err := provider.PlayerScores(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("scoring: cannot load scores for %q: %w", name, err)
	}

	p := &Player{name: name, scores: slices.Clone(scores)}
	slices.Sort(p.scores)
	if len(p.scores) > 0 {
		p.personalBest = p.scores[len(p.scores)-1]
	}
	return p, nil
}

// Name returns the player's name.
func (p *Player) Name() string { return p.name }

// PersonalBest returns the best score seen so far, 0 if none.
func (p *Player) PersonalBest() int64 { return p.personalBest }

// Scores returns a copy of the known scores in ascending order.
func (p *Player) Scores() []int64 { return slices.Clone(p.scores) }

// Record classifies e.Score against the personal best and the global highest
// score from store, updates the personal best, then persists the entry.
//
// Persistence is fire-and-forget: a sink failure is logged and does not
// change the returned category. A failure to read the highest score is
// returned with Regular and nothing is persisted.
func (p *Player) Record(ctx context.Context, e Entry, store Store, logger *log.Logger) (Category, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if store == nil {
		return Regular, fmt.Errorf("%w: nil score store", ErrInvalidState)
	}
	if e.Score < 0 {
		return Regular, fmt.Errorf("%w: negative score %d", ErrInvalidState, e.Score)
	}

	highest, err := store.HighestScore(ctx)
	if err != nil {
		return Regular, fmt.Errorf("scoring: cannot read highest score: %w", err)
	}

	category := Classify(e.Score, p.personalBest, highest)
	if category != Regular {
		p.personalBest = e.Score
	}

	idx, _ := slices.BinarySearch(p.scores, e.Score)
	p.scores = slices.Insert(p.scores, idx, e.Score)

	e.Player = p.name
	if _, err := store.RecordScore(ctx, e); err != nil {
		logger.Warn("cannot persist score", "player", p.name, "score", e.Score, "error", err)
	}

	return category, nil
}
