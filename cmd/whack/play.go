package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/whackamole/internal/config"
	"github.com/vovakirdan/whackamole/internal/games/mole"
	"github.com/vovakirdan/whackamole/internal/platform/tui"
	"github.com/vovakirdan/whackamole/internal/registry"
	"github.com/vovakirdan/whackamole/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play <board>",
	Short: "Play a board",
	Long: `Start playing the specified board.

Controls:
  Space/Enter  - Start a round
  1-4 q-r a-f z-v - Hit the hole with that key (laid out like the board)
  Click        - Hit the clicked hole
  Tab          - Cycle difficulty
  R / Ctrl+R   - Restart the round (Ctrl+R on the 4x4 board)
  Ctrl+S       - Save a screenshot
  Esc / Ctrl+C - Quit

Difficulty options:
  easy   - Moles stay up for 1.5s
  normal - Moles stay up for 1s
  hard   - Moles stay up between 0.6s and 1.2s (default)

Examples:
  whack play mole
  whack play mole_big --difficulty easy
  whack play mole --config ./my-mole.yaml
  whack play mole --log ./whack.log --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write game logs to this file")
}

// configureGames applies the --config and --difficulty flags shared by play and menu.
func configureGames(logger *log.Logger) {
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mole.SetConfigPath(flagConfig)
	mole.SetDifficultyPreset(flagDifficulty)
	mole.SetLogger(logger)
}

// gameLogger logs to --log when given. The TUI owns the terminal, so
// without a file nothing is logged.
func gameLogger(s config.Settings) (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := tea.LogToFile(flagLogFile, "whack")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
		os.Exit(1)
	}
	return newLogger(f, s, "whack"), func() { f.Close() }
}

// openStore opens the score database. The game still works without it.
func openStore(s config.Settings) *storage.Store {
	store, err := storage.Open(s.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		exitUnknownGame(gameID)
	}

	settings := loadSettings(cmd)
	logger, closeLog := gameLogger(settings)
	defer closeLog()
	configureGames(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(settings)

	_, runErr := tui.Run(game, store, runtimeConfig(settings), logger.With("game", gameID))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
