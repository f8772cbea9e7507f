package minesweeper

import "fmt"

// Standard board sizes and mine counts.
const (
	SmallSize  = 8
	MediumSize = 10
	LargeSize  = 16

	SmallMines  = 5
	MediumMines = 10
	LargeMines  = 55

	// MinSize is the smallest allowed number of rows or columns.
	MinSize = 2
	// MinMines is the smallest allowed mine count.
	MinMines = 1
)

// GameConfig holds validated board dimensions and mine count.
// The zero value is not valid; use NewGameConfig.
type GameConfig struct {
	rows  int
	cols  int
	mines int
}

// NewGameConfig validates and returns a configuration.
func NewGameConfig(rows, cols, mines int) (GameConfig, error) {
	if err := validate(rows, cols, mines); err != nil {
		return GameConfig{}, err
	}
	return GameConfig{rows: rows, cols: cols, mines: mines}, nil
}

// MinimalConfig returns the smallest valid configuration: 2x2 with one mine.
func MinimalConfig() GameConfig {
	return GameConfig{rows: MinSize, cols: MinSize, mines: MinMines}
}

// SmallConfig returns the 8x8, 5 mine preset.
func SmallConfig() GameConfig {
	return GameConfig{rows: SmallSize, cols: SmallSize, mines: SmallMines}
}

// MediumConfig returns the 10x10, 10 mine preset.
func MediumConfig() GameConfig {
	return GameConfig{rows: MediumSize, cols: MediumSize, mines: MediumMines}
}

// LargeConfig returns the 16x16, 55 mine preset.
func LargeConfig() GameConfig {
	return GameConfig{rows: LargeSize, cols: LargeSize, mines: LargeMines}
}

func validate(rows, cols, mines int) error {
	if rows < MinSize {
		return fmt.Errorf("%w: rows must be at least %d, got %d", ErrConfiguration, MinSize, rows)
	}
	if cols < MinSize {
		return fmt.Errorf("%w: cols must be at least %d, got %d", ErrConfiguration, MinSize, cols)
	}
	if mines < MinMines {
		return fmt.Errorf("%w: there must be at least %d mine, got %d", ErrConfiguration, MinMines, mines)
	}
	if mines > rows*cols-1 {
		return fmt.Errorf("%w: too many mines: %d on a %dx%d board (max %d)",
			ErrConfiguration, mines, rows, cols, rows*cols-1)
	}
	return nil
}

// Rows returns the number of rows.
func (c GameConfig) Rows() int { return c.rows }

// Cols returns the number of columns.
func (c GameConfig) Cols() int { return c.cols }

// Mines returns the number of mines.
func (c GameConfig) Mines() int { return c.mines }

// Cells returns rows*cols.
func (c GameConfig) Cells() int { return c.rows * c.cols }

// Valid reports whether the configuration satisfies all invariants.
func (c GameConfig) Valid() bool {
	return validate(c.rows, c.cols, c.mines) == nil
}

// SetRows changes the row count. The configuration is unchanged on error.
func (c *GameConfig) SetRows(rows int) error {
	if err := validate(rows, c.cols, c.mines); err != nil {
		return err
	}
	c.rows = rows
	return nil
}

// SetCols changes the column count. The configuration is unchanged on error.
func (c *GameConfig) SetCols(cols int) error {
	if err := validate(c.rows, cols, c.mines); err != nil {
		return err
	}
	c.cols = cols
	return nil
}

// SetMineCount changes the mine count. The configuration is unchanged on error.
func (c *GameConfig) SetMineCount(mines int) error {
	if err := validate(c.rows, c.cols, mines); err != nil {
		return err
	}
	c.mines = mines
	return nil
}

// String returns e.g. "8x8, 5 mines".
func (c GameConfig) String() string {
	return fmt.Sprintf("%dx%d, %d mines", c.rows, c.cols, c.mines)
}
