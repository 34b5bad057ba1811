// Package config provides YAML-based game configuration loading, difficulty
// presets and application settings.
package config

// MoleConfig contains all configuration for the Whack-a-Mole game.
type MoleConfig struct {
	Session    MoleSession `yaml:"session"`
	Delays     MoleDelays  `yaml:"delays"`
	Boards     MoleBoards  `yaml:"boards"`
	Difficulty string      `yaml:"difficulty"` // easy, normal or hard
}

// MoleSession defines the length of one play-through.
type MoleSession struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// MoleDelays defines how long a mole stays up for each difficulty, in milliseconds.
type MoleDelays struct {
	EasyMS    int `yaml:"easy_ms"`
	NormalMS  int `yaml:"normal_ms"`
	HardMinMS int `yaml:"hard_min_ms"` // Hard picks a random delay in [min, max]
	HardMaxMS int `yaml:"hard_max_ms"`
	DefaultMS int `yaml:"default_ms"` // Used for unknown difficulty values
}

// MoleBoards defines the hole grids available as separate game IDs.
type MoleBoards struct {
	Classic BoardPreset `yaml:"classic"`
	Big     BoardPreset `yaml:"big"`
}

// BoardPreset is a rows x cols grid of holes.
type BoardPreset struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Slots returns the number of holes on the board.
func (b BoardPreset) Slots() int {
	return b.Rows * b.Cols
}
