// Package minesweeper implements the rules of Minesweeper: minefield
// generation, the per-cell state machine, the flood-fill reveal and the
// session state machine. It has no UI dependencies; frontends drive a
// Session directly or through the cursor-based Game wrapper.
package minesweeper

import "fmt"

// Position addresses a cell by row and column.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CellContent is what a cell hides: a mine or the number of neighboring mines.
// It is fixed at generation time.
type CellContent int8

// Mine is the content of a mined cell.
const Mine CellContent = -1

// Count returns the content of a safe cell with n neighboring mines.
func Count(n int) CellContent {
	return CellContent(n)
}

// IsMine reports whether the cell hides a mine.
func (c CellContent) IsMine() bool {
	return c == Mine
}

// Count returns the neighbor mine count, or -1 for a mine.
func (c CellContent) Count() int {
	return int(c)
}

// Rune returns '*' for a mine and the digit otherwise.
func (c CellContent) Rune() rune {
	if c.IsMine() {
		return '*'
	}
	return rune('0' + c)
}

// String implements fmt.Stringer.
func (c CellContent) String() string {
	if c.IsMine() {
		return "Mine"
	}
	return fmt.Sprintf("Count(%d)", int(c))
}

// CellState is the player-visible state of a cell.
type CellState int

const (
	Covered CellState = iota
	Flagged
	Revealed
)

// String returns a human-readable name for the state.
func (s CellState) String() string {
	switch s {
	case Covered:
		return "Covered"
	case Flagged:
		return "Flagged"
	case Revealed:
		return "Revealed"
	default:
		return "Unknown"
	}
}

// Cell pairs immutable content with mutable state.
type Cell struct {
	Content CellContent
	State   CellState
}

// Status is the state of a game session.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further actions are accepted.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// CellView is what a frontend may know about a cell.
// Content is only meaningful when Visible is true.
type CellView struct {
	State   CellState
	Content CellContent
	Visible bool
}
