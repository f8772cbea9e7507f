package minesweeper

import "fmt"

// Rand is the random source used for mine placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Generate produces a solved minefield: exactly mines distinct mine cells
// placed uniformly at random, and for every other cell the number of mines
// among its Moore neighbors.
//
// The mine count must be strictly smaller than rows*cols; this is checked
// up front so the placement loop always terminates.
func Generate(rows, cols, mines int, rng Rand) ([][]CellContent, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: cannot generate a %dx%d board", ErrConfiguration, rows, cols)
	}
	if mines < 0 || mines >= rows*cols {
		return nil, fmt.Errorf("%w: cannot place %d mines on %d cells", ErrConfiguration, mines, rows*cols)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrConfiguration)
	}

	grid := make([][]CellContent, rows)
	for r := range grid {
		grid[r] = make([]CellContent, cols)
	}

	placeMines(grid, mines, rng)
	fillCounts(grid)
	return grid, nil
}

// placeMines marks mines at random positions, redrawing on duplicates.
func placeMines(grid [][]CellContent, mines int, rng Rand) {
	rows, cols := len(grid), len(grid[0])
	for placed := 0; placed < mines; {
		r := rng.Intn(rows)
		c := rng.Intn(cols)
		if grid[r][c].IsMine() {
			continue
		}
		grid[r][c] = Mine
		placed++
	}
}

// fillCounts sets every non-mine cell to its neighboring mine count.
func fillCounts(grid [][]CellContent) {
	rows, cols := len(grid), len(grid[0])
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid[r][c].IsMine() {
				continue
			}
			grid[r][c] = Count(countAdjacentMines(grid, r, c))
		}
	}
}

func countAdjacentMines(grid [][]CellContent, row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
				continue
			}
			if grid[r][c].IsMine() {
				count++
			}
		}
	}
	return count
}

// ContentsFromRows builds a grid from strings where '*' (or 'x') is a mine and
// any other rune is a safe cell. Counts are computed, so digits in the input
// are ignored. Useful for fixed layouts in tests and tools.
func ContentsFromRows(rows ...string) ([][]CellContent, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrConfiguration)
	}
	width := len([]rune(rows[0]))
	grid := make([][]CellContent, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width || width == 0 {
			return nil, fmt.Errorf("%w: layout row %d has width %d, want %d", ErrConfiguration, r, len(runes), width)
		}
		grid[r] = make([]CellContent, width)
		for c, ch := range runes {
			if ch == '*' || ch == 'x' {
				grid[r][c] = Mine
			}
		}
	}
	fillCounts(grid)
	return grid, nil
}
