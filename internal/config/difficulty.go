package config

import (
	"fmt"
	"strings"

	"github.com/aestallon/minesweeper/internal/minesweeper"
)

// Built-in difficulty names.
const (
	DifficultySmall  = "small"
	DifficultyMedium = "medium"
	DifficultyLarge  = "large"
	// DifficultyCustom takes its dimensions from the caller, not a preset.
	DifficultyCustom = "custom"
)

// Custom carries explicit dimensions for DifficultyCustom. Zero fields fall
// back to the default difficulty's preset.
type Custom struct {
	Rows  int
	Cols  int
	Mines int
}

// GameConfig resolves a difficulty name to a validated board configuration.
// An empty name uses the configured default difficulty.
func (c Config) GameConfig(name string, custom Custom) (minesweeper.GameConfig, error) {
	if strings.TrimSpace(name) == "" {
		name = c.Difficulty
	}
	name = strings.ToLower(strings.TrimSpace(name))

	if name == DifficultyCustom {
		base, ok := c.Presets[c.Difficulty]
		if !ok {
			base = Default().Presets[DifficultySmall]
		}
		if custom.Rows > 0 {
			base.Rows = custom.Rows
		}
		if custom.Cols > 0 {
			base.Cols = custom.Cols
		}
		if custom.Mines > 0 {
			base.Mines = custom.Mines
		}
		return toGameConfig(base)
	}

	p, ok := c.Presets[name]
	if !ok {
		return minesweeper.GameConfig{}, fmt.Errorf("%w: %q (have %s)",
			ErrUnknownPreset, name, strings.Join(c.PresetNames(), ", "))
	}
	return toGameConfig(p)
}

func toGameConfig(p Preset) (minesweeper.GameConfig, error) {
	return minesweeper.NewGameConfig(p.Rows, p.Cols, p.Mines)
}
