package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whackamole/internal/platform/tui"
	"github.com/vovakirdan/whackamole/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board and difficulty picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a board, left/right to pick a difficulty,
Enter to play. When you press Esc in a game you return to the menu.

Controls:
  Up/Down/j/k    - Navigate boards
  Left/Right/h/l - Change difficulty
  Enter/Space    - Play
  Tab            - Scoreboard
  Q              - Quit

Examples:
  whack menu
  whack menu --difficulty easy
  whack menu --fps 30
  whack menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, normal, hard")
	menuCmd.Flags().StringVar(&flagLogFile, "log", "", "Write game logs to this file")
}

func runMenu(cmd *cobra.Command, _ []string) {
	settings := loadSettings(cmd)
	logger, closeLog := gameLogger(settings)
	defer closeLog()
	configureGames(logger)

	store := openStore(settings)
	cfg := runtimeConfig(settings)
	difficulty := flagDifficulty

	for {
		menuResult, err := tui.RunMenu(store, cfg, difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if tunable, ok := game.(registry.Tunable); ok && difficulty != "" {
			if err := tunable.SetDifficulty(difficulty); err != nil {
				logger.Warn("set difficulty", "difficulty", difficulty, "err", err)
			}
		}

		// Fresh seed per round unless --seed pins it
		if settings.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		goBack, err := tui.Run(game, store, cfg, logger.With("game", gameID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !goBack {
			break // ctrl+c leaves the whole program
		}
	}

	if store != nil {
		store.Close()
	}
}
