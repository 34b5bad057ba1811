package config

import (
	_ "embed"
)

//go:embed defaults/mole.yaml
var defaultMoleYAML []byte

// DefaultMoleConfig returns the default Whack-a-Mole configuration.
func DefaultMoleConfig() MoleConfig {
	return MoleConfig{
		Session: MoleSession{
			DurationSeconds: 10,
		},
		Delays: MoleDelays{
			EasyMS:    1500,
			NormalMS:  1000,
			HardMinMS: 600,
			HardMaxMS: 1200,
			DefaultMS: 1000,
		},
		Boards: MoleBoards{
			Classic: BoardPreset{Rows: 3, Cols: 3},
			Big:     BoardPreset{Rows: 4, Cols: 4},
		},
		Difficulty: string(DifficultyHard),
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "mole", "mole_big":
		return defaultMoleYAML
	default:
		return nil
	}
}
