package minesweeper

import "errors"

var (
	// ErrConfiguration reports invalid board dimensions or mine count.
	ErrConfiguration = errors.New("minesweeper: invalid configuration")

	// ErrInvalidTransition reports an illegal cell state change, such as
	// revealing a flagged cell. The board is left untouched.
	ErrInvalidTransition = errors.New("minesweeper: invalid cell transition")

	// ErrSessionTerminated reports an action attempted after the game ended.
	ErrSessionTerminated = errors.New("minesweeper: session terminated")

	// ErrOutOfBounds reports a position outside the board.
	ErrOutOfBounds = errors.New("minesweeper: position out of bounds")
)
