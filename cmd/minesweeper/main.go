// minesweeper is a terminal Minesweeper with persistent high scores.
//
// Usage:
//
//	minesweeper play             - Play one difficulty directly
//	minesweeper menu             - Pick difficulties from a menu
//	minesweeper scores           - Show high scores or a player's history
//	minesweeper presets          - List board presets
//	minesweeper serve            - Start SSH (and optional HTTP) server
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for a reproducible first board
//	--db <path|url>     - SQLite path or postgres:// URL
//	--player <name>     - Name scores are recorded under
//	--config <path>     - Config file (default search: ~/.minesweeper, ./configs)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aestallon/minesweeper/internal/config"
	"github.com/aestallon/minesweeper/internal/core"
	"github.com/aestallon/minesweeper/internal/metrics"
	"github.com/aestallon/minesweeper/internal/platform/tui"
	"github.com/aestallon/minesweeper/internal/scoring"
	"github.com/aestallon/minesweeper/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagPlayer   string
	flagConfig   string
	flagLogLevel string

	// appConfig is loaded before any subcommand runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Minesweeper in your terminal",
	Long: `Minesweeper is a terminal version of the classic mine-clearing game.
Clear every safe cell without stepping on a mine; faster clears on boards
with more mines score higher.

Available commands:
  play     - Play a board directly
  menu     - Interactive difficulty menu
  scores   - View high scores
  presets  - List board presets
  serve    - Start SSH server for remote play

Examples:
  minesweeper play
  minesweeper play --difficulty large
  minesweeper play --difficulty custom --rows 12 --cols 20 --mines 30
  minesweeper menu --player alice
  minesweeper serve --ssh :2222 --http :8080
  minesweeper scores --player alice`,
	PersistentPreRun: loadConfig,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Scores database: SQLite path or postgres:// URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads config files and env, then applies global flags on top.
func loadConfig(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDBPath != "" {
		cfg.Database = flagDBPath
	}
	if flagLogLevel != "" {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --log-level %q\n", flagLogLevel)
			os.Exit(1)
		}
		cfg.LogLevel = flagLogLevel
	}
	if cfg.Player == "" {
		cfg.Player = scoring.DefaultPlayer
	}

	appConfig = cfg
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           appConfig.Level(),
	})
}

// interactiveLogger logs to ~/.minesweeper/minesweeper.log so the alternate
// screen stays clean. Falls back to discarding when the file cannot be opened.
func interactiveLogger() (*log.Logger, func()) {
	path := config.UserPath("minesweeper.log")
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(config.UserPath(), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	//nolint:errcheck // Best-effort close on exit
	return newLogger(f, "minesweeper"), func() { f.Close() }
}

// openStore connects to the configured database, instrumented for metrics.
func openStore(ctx context.Context) (storage.Store, error) {
	store, err := storage.Connect(ctx, appConfig.Database)
	if err != nil {
		return nil, err
	}
	return metrics.Instrument(store), nil
}

// scoreStore opens the database for interactive play. Without one, scores
// live in memory for the rest of the process.
func scoreStore(ctx context.Context, logger *log.Logger) (tui.Store, func()) {
	store, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores kept in memory only", "database", appConfig.Database, "error", err)
		return scoring.NewMemoryStore(), func() {}
	}
	//nolint:errcheck // Best-effort close on exit
	return store, func() { store.Close() }
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.Player = appConfig.Player
	return cfg
}
