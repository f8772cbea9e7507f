// Package scoring computes game scores from elapsed time and mine count and
// classifies them against a player's history and the global best.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ScoreFactor is multiplied by the mine count before dividing by the
// elapsed milliseconds.
const ScoreFactor = 10_000_000

var (
	// ErrInvalidState reports scoring with incomplete or inconsistent timing data.
	ErrInvalidState = errors.New("scoring: invalid state")

	// ErrInvalidPlayer reports an empty player name.
	ErrInvalidPlayer = errors.New("scoring: invalid player")
)

// Score returns floor(mines * ScoreFactor / (endMs - startMs)).
//
// Timestamps are Unix milliseconds and must both be set (non-zero) with
// endMs >= startMs. A zero-length game counts as 1 ms. The product never
// wraps: if it does not fit in an int64 the result saturates at math.MaxInt64.
func Score(mines int, startMs, endMs int64) (int64, error) {
	switch {
	case mines <= 0:
		return 0, fmt.Errorf("%w: mine count must be positive, got %d", ErrInvalidState, mines)
	case startMs == 0:
		return 0, fmt.Errorf("%w: start time not set", ErrInvalidState)
	case endMs == 0:
		return 0, fmt.Errorf("%w: end time not set", ErrInvalidState)
	case endMs < startMs:
		return 0, fmt.Errorf("%w: end time %d before start time %d", ErrInvalidState, endMs, startMs)
	}

	elapsed := uint64(endMs - startMs)
	if elapsed == 0 {
		elapsed = 1
	}

	hi, lo := bits.Mul64(uint64(mines), ScoreFactor)
	if hi >= elapsed {
		// Quotient would not fit in 64 bits.
		return math.MaxInt64, nil
	}
	quo, _ := bits.Div64(hi, lo, elapsed)
	if quo > math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(quo), nil
}

// Category is how a score ranks against prior results.
type Category int

const (
	Regular Category = iota
	PersonalBest
	HighScore
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case Regular:
		return "Regular"
	case PersonalBest:
		return "PersonalBest"
	case HighScore:
		return "HighScore"
	default:
		return "Unknown"
	}
}

// Message returns the end-of-game banner for the category.
func (c Category) Message() string {
	switch c {
	case HighScore:
		return "HIGH SCORE! Congratulations!"
	case PersonalBest:
		return "This is your current personal best! Keep up!"
	default:
		return "Congratulations, you won!"
	}
}

// Classify ranks score against the player's personal best and the global
// highest score. Only strictly greater scores rank; ties are Regular.
func Classify(score, personalBest, highest int64) Category {
	switch {
	case score > highest:
		return HighScore
	case score > personalBest:
		return PersonalBest
	default:
		return Regular
	}
}
