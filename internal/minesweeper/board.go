package minesweeper

import (
	"fmt"
	"strings"
)

// Board is a rows x cols grid of cells. It owns every cell and enforces the
// per-cell state machine:
//
//	Covered -> Revealed   (one way, Revealed is terminal)
//	Covered <-> Flagged   (toggle)
//
// A flagged cell must be unflagged before it can be revealed.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell

	mines         int
	flags         int
	safeRemaining int // non-mine cells not yet revealed
}

// NewBoard wraps generated contents; every cell starts Covered.
func NewBoard(contents [][]CellContent) (*Board, error) {
	if len(contents) == 0 || len(contents[0]) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrConfiguration)
	}

	rows, cols := len(contents), len(contents[0])
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
	}

	for r := range contents {
		if len(contents[r]) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrConfiguration, r, len(contents[r]), cols)
		}
		b.cells[r] = make([]Cell, cols)
		for c, content := range contents[r] {
			if content < Mine || content > 8 {
				return nil, fmt.Errorf("%w: invalid content %d at %v", ErrConfiguration, content, Pos(r, c))
			}
			b.cells[r][c] = Cell{Content: content, State: Covered}
			if content.IsMine() {
				b.mines++
			} else {
				b.safeRemaining++
			}
		}
	}

	return b, nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int { return b.mines }

// FlagCount returns the number of currently flagged cells.
func (b *Board) FlagCount() int { return b.flags }

// SafeRemaining returns how many non-mine cells are not yet revealed.
// The board is cleared when this reaches zero.
func (b *Board) SafeRemaining() int { return b.safeRemaining }

// InBounds reports whether pos lies on the board.
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Col >= 0 && pos.Col < b.cols
}

func (b *Board) check(pos Position) error {
	if !b.InBounds(pos) {
		return fmt.Errorf("%w: %v on %dx%d board", ErrOutOfBounds, pos, b.rows, b.cols)
	}
	return nil
}

// Cell returns a copy of the cell at pos.
func (b *Board) Cell(pos Position) (Cell, error) {
	if err := b.check(pos); err != nil {
		return Cell{}, err
	}
	return b.cells[pos.Row][pos.Col], nil
}

// State returns the state of the cell at pos. Out-of-bounds positions read as Covered.
func (b *Board) State(pos Position) CellState {
	if !b.InBounds(pos) {
		return Covered
	}
	return b.cells[pos.Row][pos.Col].State
}

// Content returns the content of the cell at pos regardless of its state.
// Out-of-bounds positions read as Count(0).
func (b *Board) Content(pos Position) CellContent {
	if !b.InBounds(pos) {
		return Count(0)
	}
	return b.cells[pos.Row][pos.Col].Content
}

// Flag marks a covered cell as suspected. Flagging a flagged cell is a no-op.
func (b *Board) Flag(pos Position) error {
	if err := b.check(pos); err != nil {
		return err
	}
	cell := &b.cells[pos.Row][pos.Col]
	switch cell.State {
	case Revealed:
		return fmt.Errorf("%w: cannot flag revealed cell %v", ErrInvalidTransition, pos)
	case Covered:
		cell.State = Flagged
		b.flags++
	}
	return nil
}

// Unflag clears a flag. Unflagging a covered cell is a no-op.
func (b *Board) Unflag(pos Position) error {
	if err := b.check(pos); err != nil {
		return err
	}
	cell := &b.cells[pos.Row][pos.Col]
	switch cell.State {
	case Revealed:
		return fmt.Errorf("%w: cannot unflag revealed cell %v", ErrInvalidTransition, pos)
	case Flagged:
		cell.State = Covered
		b.flags--
	}
	return nil
}

// ToggleFlag switches a cell between Covered and Flagged.
func (b *Board) ToggleFlag(pos Position) error {
	if err := b.check(pos); err != nil {
		return err
	}
	if b.cells[pos.Row][pos.Col].State == Flagged {
		return b.Unflag(pos)
	}
	return b.Flag(pos)
}

// Reveal uncovers a covered cell and returns its content.
// Flagged and already revealed cells are rejected with ErrInvalidTransition.
func (b *Board) Reveal(pos Position) (CellContent, error) {
	if err := b.check(pos); err != nil {
		return 0, err
	}
	cell := &b.cells[pos.Row][pos.Col]
	switch cell.State {
	case Flagged:
		return cell.Content, fmt.Errorf("%w: cell %v is flagged", ErrInvalidTransition, pos)
	case Revealed:
		return cell.Content, fmt.Errorf("%w: cell %v is already revealed", ErrInvalidTransition, pos)
	}

	cell.State = Revealed
	if !cell.Content.IsMine() {
		b.safeRemaining--
	}
	return cell.Content, nil
}

// Neighbors returns the in-bounds positions at Chebyshev distance 1 from pos,
// in row-major order. Corner cells have 3, edge cells 5, inner cells 8.
func (b *Board) Neighbors(pos Position) []Position {
	neighbors := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Pos(pos.Row+dr, pos.Col+dc)
			if b.InBounds(n) {
				neighbors = append(neighbors, n)
			}
		}
	}
	return neighbors
}

// ForceRevealAll reveals every cell regardless of state. Used when the game
// ends to show all mines and freeze the board.
func (b *Board) ForceRevealAll() {
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c].State = Revealed
		}
	}
	b.flags = 0
	b.safeRemaining = 0
}

// String dumps the solution, one row per line ('*' for mines).
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.rows * (b.cols*2 + 1))
	for r := range b.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, cell := range b.cells[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(cell.Content.Rune())
		}
	}
	return sb.String()
}
