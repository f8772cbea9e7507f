package main

import (
	"github.com/spf13/cobra"

	"github.com/aestallon/minesweeper/internal/config"
	"github.com/aestallon/minesweeper/internal/minesweeper"
	"github.com/aestallon/minesweeper/internal/platform/tui"
)

var (
	flagDifficulty string
	flagRows       int
	flagCols       int
	flagMines      int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game at the chosen difficulty.

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space/Enter       - Reveal cell
  F/X               - Flag or unflag cell
  R                 - New board
  B/Esc             - Back to menu
  Ctrl+S            - Save screenshot
  Q/Ctrl+C          - Quit

Difficulty options (see 'minesweeper presets'):
  small   - 8x8, 5 mines
  medium  - 10x10, 10 mines
  large   - 16x16, 55 mines
  custom  - Set --rows, --cols and --mines yourself

Examples:
  minesweeper play
  minesweeper play --difficulty large
  minesweeper play --rows 10 --cols 30 --mines 45
  minesweeper play --seed 42 --player alice`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset name, or custom")
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Rows for a custom board")
	playCmd.Flags().IntVar(&flagCols, "cols", 0, "Columns for a custom board")
	playCmd.Flags().IntVar(&flagMines, "mines", 0, "Mines for a custom board")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	custom := config.Custom{Rows: flagRows, Cols: flagCols, Mines: flagMines}

	// Dimensions without a difficulty mean a custom board.
	difficulty := flagDifficulty
	if difficulty == "" && custom != (config.Custom{}) {
		difficulty = config.DifficultyCustom
	}

	gameCfg, err := appConfig.GameConfig(difficulty, custom)
	if err != nil {
		return err
	}

	logger, closeLog := interactiveLogger()
	defer closeLog()

	store, closeStore := scoreStore(cmd.Context(), logger)
	defer closeStore()

	cfg := runtimeConfig()
	game, err := minesweeper.NewGame(gameCfg, cfg.Player, minesweeper.WithLogger(logger))
	if err != nil {
		return err
	}

	backToMenu, err := tui.Run(game, store, cfg, logger)
	if err != nil {
		return err
	}

	if backToMenu {
		// Later boards get a fresh seed.
		cfg.Seed = 0
		return menuLoop(store, cfg, logger)
	}
	return nil
}
