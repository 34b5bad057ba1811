// whack is Whack-a-Mole for the terminal.
//
// Usage:
//
//	whack list              - List available boards
//	whack play <board>      - Play a board
//	whack menu              - Pick a board and difficulty interactively
//	whack serve             - Start SSH and HTTP servers for remote play
//	whack scores <board>    - Show high scores for a board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.whack/scores.db)
//	--log-level <level>   - Set log level (debug, info, warn, error)
//
// Every flag can also be set with a WHACK_* environment variable or in
// ~/.whack/settings.yaml.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/whackamole/internal/config"
	"github.com/vovakirdan/whackamole/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/whackamole/internal/games/mole"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whack",
	Short: "Whack-a-Mole - hit the moles before they hide",
	Long: `Whack-a-Mole in your terminal. Moles pop out of a grid of holes for a
ten second round; hit each one with the key printed on its hole or a click.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board and difficulty picker
  serve    - Start SSH server for remote play and HTTP leaderboard
  scores   - View high scores

Examples:
  whack list
  whack play mole
  whack play mole_big --difficulty easy
  whack menu
  whack serve --ssh :2222 --http :8080
  whack scores mole --difficulty hard`,
	SilenceUsage: true,
}

func init() {
	def := config.DefaultSettings()

	// Global persistent flags
	rootCmd.PersistentFlags().Int("fps", def.TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().String("db", def.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().String("log-level", def.LogLevel, "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSettings resolves settings for cmd, exiting on a bad settings file.
func loadSettings(cmd *cobra.Command) config.Settings {
	s, err := config.LoadSettings(cmd.Flags(), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

// newLogger builds a logger writing to w at the configured level.
func newLogger(w io.Writer, s config.Settings, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", s.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig(s config.Settings) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.TickRate,
		Seed:     s.Seed,
	}
}

// exitUnknownGame reports an unregistered game ID and exits.
func exitUnknownGame(gameID string) {
	fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
	fmt.Fprintln(os.Stderr, "Run 'whack list' to see available boards.")
	os.Exit(1)
}
