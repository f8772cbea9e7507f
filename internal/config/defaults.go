package config

import (
	_ "embed"

	"github.com/aestallon/minesweeper/internal/minesweeper"
	"github.com/aestallon/minesweeper/internal/scoring"
)

//go:embed defaults/minesweeper.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Player:     scoring.DefaultPlayer,
		Difficulty: DifficultySmall,
		LogLevel:   "info",
		Database:   "~/.minesweeper/scores.db",
		Presets: map[string]Preset{
			DifficultySmall:  {Rows: minesweeper.SmallSize, Cols: minesweeper.SmallSize, Mines: minesweeper.SmallMines},
			DifficultyMedium: {Rows: minesweeper.MediumSize, Cols: minesweeper.MediumSize, Mines: minesweeper.MediumMines},
			DifficultyLarge:  {Rows: minesweeper.LargeSize, Cols: minesweeper.LargeSize, Mines: minesweeper.LargeMines},
		},
	}
}

// DefaultYAML returns the embedded default file, for `presets --dump`.
func DefaultYAML() []byte {
	return defaultYAML
}
