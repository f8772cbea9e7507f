package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aestallon/minesweeper/internal/config"
	"github.com/aestallon/minesweeper/internal/core"
	"github.com/aestallon/minesweeper/internal/minesweeper"
	"github.com/aestallon/minesweeper/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the difficulty menu",
	Long: `Pick a difficulty from a menu. Finished games return to the menu;
press Tab in the menu to browse high scores.

Controls:
  Up/Down   - Navigate
  Enter     - Play
  Tab       - Scores
  Q/Ctrl+C  - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	logger, closeLog := interactiveLogger()
	defer closeLog()

	store, closeStore := scoreStore(cmd.Context(), logger)
	defer closeStore()

	return menuLoop(store, runtimeConfig(), logger)
}

// menuLoop alternates between the menu, the scoreboard and games until the
// player quits.
func menuLoop(store tui.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	for {
		result, err := tui.RunMenu(appConfig, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.Player, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		gameCfg, err := appConfig.GameConfig(result.Difficulty, config.Custom{})
		if err != nil {
			return err
		}
		game, err := minesweeper.NewGame(gameCfg, cfg.Player, minesweeper.WithLogger(logger))
		if err != nil {
			return err
		}

		backToMenu, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
		cfg.Seed = 0
	}
}
