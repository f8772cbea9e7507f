package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aestallon/minesweeper/internal/httpapi"
	"github.com/aestallon/minesweeper/internal/platform/tui"
	"github.com/aestallon/minesweeper/internal/scoring"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the minesweeper SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the difficulty menu, and the
SSH user name is the player name. All users share the same leaderboard.

With --http, a JSON API serves the leaderboard and Prometheus metrics:
  GET /api/scores?limit=N
  GET /api/players/{name}/scores
  GET /api/players/{name}/best
  GET /metrics
  GET /health

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.minesweeper/host_key

Examples:
  minesweeper serve                           # Listen on :23234 with auto-generated key
  minesweeper serve --ssh :2222               # Listen on port 2222
  minesweeper serve --http :8080              # Also serve the HTTP API
  minesweeper serve --db postgres://localhost/minesweeper

Users can connect with:
  ssh alice@localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port); disabled if empty")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Stderr, "minesweeper")

	var store tui.Store
	db, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores kept in memory only", "database", appConfig.Database, "error", err)
		store = scoring.NewMemoryStore()
	} else {
		store = db
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("cannot close scores database", "error", err)
			}
		}()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, appConfig, store, logger.WithPrefix("ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	var httpSrv *http.Server
	if flagHTTPAddr != "" {
		httpSrv = &http.Server{
			Addr:              flagHTTPAddr,
			Handler:           httpapi.NewServer(store, logger.WithPrefix("http")).Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("starting HTTP server", "address", flagHTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server failed", "error", err)
				stop()
			}
		}()
	}

	fmt.Printf("Starting minesweeper SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh <name>@localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe(ctx)
	stop()

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server forced to shutdown", "error", err)
		}
		cancel()
	}

	if serveErr != nil {
		return serveErr
	}
	logger.Info("server exited")
	return nil
}

// port extracts the port from a listen address, defaulting to 23234.
func port(addr string) string {
	_, p, err := net.SplitHostPort(addr)
	if err != nil || p == "" {
		return "23234"
	}
	return p
}
