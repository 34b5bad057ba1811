package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/whackamole/internal/config"
	"github.com/vovakirdan/whackamole/internal/platform/tui"
	"github.com/vovakirdan/whackamole/internal/platform/web"
	"github.com/vovakirdan/whackamole/internal/storage"
)

var flagServeDifficulty string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and HTTP leaderboard",
	Long: `Start an SSH server that allows users to connect and play, and
optionally an HTTP server with a read-only JSON leaderboard.

Each SSH connection gets its own session with a board picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.whack/host_key

Leaderboard endpoints (with --http):
  GET /api/games
  GET /api/scores/{board}?difficulty=&limit=
  GET /api/stats/{board}?difficulty=
  GET /healthz

Examples:
  whack serve                           # Listen on :23234 with auto-generated key
  whack serve --ssh :2222               # Listen on port 2222
  whack serve --http :8080              # Also serve the leaderboard
  whack serve --host-key ./my_host_key  # Use specific host key
  whack serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh -t localhost -p 23234`,
	Run: runServe,
}

func init() {
	def := config.DefaultSettings()
	serveCmd.Flags().String("ssh", def.SSHAddr, "SSH server address (host:port)")
	serveCmd.Flags().String("http", def.HTTPAddr, "HTTP leaderboard address (empty to disable)")
	serveCmd.Flags().String("host-key", def.HostKeyPath, "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().Int("idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeDifficulty, "difficulty", "", "Preselected difficulty for new sessions")
}

func runServe(cmd *cobra.Command, _ []string) {
	settings := loadSettings(cmd)
	logger := newLogger(os.Stderr, settings, "whack")

	if _, err := config.ParseDifficultyPreset(flagServeDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     settings.SSHAddr,
		HostKeyPath: settings.HostKeyPath,
		Store:       store,
		IdleTimeout: settings.IdleTimeout,
		TickRate:    settings.TickRate,
		Difficulty:  flagServeDifficulty,
		Logger:      logger.WithPrefix("whack-ssh"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	var httpServer *web.Server
	if settings.HTTPAddr != "" {
		httpServer, err = web.NewServer(web.Config{
			Address: settings.HTTPAddr,
			Store:   store,
			Logger:  logger.WithPrefix("whack-http"),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating HTTP server: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.Serve(ctx)
	})
	if httpServer != nil {
		g.Go(func() error {
			return httpServer.Serve(ctx)
		})
	}

	logger.Info("connect with: ssh -t localhost -p <port>", "ssh", sshServer.Addr())
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "err", err)
		store.Close()
		os.Exit(1)
	}
}
