// Package config provides YAML-based configuration loading for the game:
// player defaults, board presets, logging and the score database location.
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnknownPreset is returned when a difficulty name matches no preset.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Config is the top-level configuration file.
type Config struct {
	Player     string            `yaml:"player"`
	Difficulty string            `yaml:"difficulty"`
	LogLevel   string            `yaml:"log_level"`
	Database   string            `yaml:"database"`
	Presets    map[string]Preset `yaml:"presets"`
}

// Preset is a named board size.
type Preset struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

// String returns e.g. "8x8, 5 mines".
func (p Preset) String() string {
	return fmt.Sprintf("%dx%d, %d mines", p.Rows, p.Cols, p.Mines)
}

// PresetNames returns the preset names sorted by board area, then name.
func (c Config) PresetNames() []string {
	names := slices.Collect(maps.Keys(c.Presets))
	slices.SortFunc(names, func(a, b string) int {
		pa, pb := c.Presets[a], c.Presets[b]
		if d := pa.Rows*pa.Cols - pb.Rows*pb.Cols; d != 0 {
			return d
		}
		if d := pa.Mines - pb.Mines; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() log.Level {
	if c.LogLevel == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate checks every preset, the default difficulty and the log level.
func (c Config) Validate() error {
	if len(c.Presets) == 0 {
		return errors.New("config: no presets defined")
	}
	for _, name := range c.PresetNames() {
		if _, err := toGameConfig(c.Presets[name]); err != nil {
			return fmt.Errorf("config: preset %q: %w", name, err)
		}
	}
	// custom takes its dimensions from flags, falling back to the small preset.
	switch name := strings.ToLower(strings.TrimSpace(c.Difficulty)); name {
	case "", DifficultyCustom:
	default:
		if _, ok := c.Presets[name]; !ok {
			return fmt.Errorf("%w: default difficulty %q", ErrUnknownPreset, c.Difficulty)
		}
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: log_level: %w", err)
		}
	}
	return nil
}
