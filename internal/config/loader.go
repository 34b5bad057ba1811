package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MaxBoardSide is the largest number of rows or columns a board may have.
// Every hole on a board this size has its own key.
const MaxBoardSide = 4

// LoadMole loads Whack-a-Mole configuration.
// Search order: customPath -> ~/.whack/configs/mole.yaml -> ./configs/mole.yaml -> embedded default
func LoadMole(customPath string) (MoleConfig, error) {
	var cfg MoleConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.withDefaults(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("mole.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.withDefaults(), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/mole.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.withDefaults(), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMoleYAML, &cfg); err != nil {
		return DefaultMoleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.withDefaults(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".whack", "configs", filename)
}

// withDefaults fills zero or out-of-range fields from DefaultMoleConfig,
// so partial user files stay playable.
func (c MoleConfig) withDefaults() MoleConfig {
	def := DefaultMoleConfig()

	if c.Session.DurationSeconds <= 0 {
		c.Session.DurationSeconds = def.Session.DurationSeconds
	}

	if c.Delays.EasyMS <= 0 {
		c.Delays.EasyMS = def.Delays.EasyMS
	}
	if c.Delays.NormalMS <= 0 {
		c.Delays.NormalMS = def.Delays.NormalMS
	}
	if c.Delays.HardMinMS <= 0 {
		c.Delays.HardMinMS = def.Delays.HardMinMS
	}
	if c.Delays.HardMaxMS <= 0 {
		c.Delays.HardMaxMS = def.Delays.HardMaxMS
	}
	if c.Delays.HardMaxMS < c.Delays.HardMinMS {
		c.Delays.HardMinMS, c.Delays.HardMaxMS = c.Delays.HardMaxMS, c.Delays.HardMinMS
	}
	if c.Delays.DefaultMS <= 0 {
		c.Delays.DefaultMS = def.Delays.DefaultMS
	}

	c.Boards.Classic = c.Boards.Classic.normalize(def.Boards.Classic)
	c.Boards.Big = c.Boards.Big.normalize(def.Boards.Big)

	if preset, err := ParseDifficultyPreset(c.Difficulty); err != nil || preset == "" {
		c.Difficulty = def.Difficulty
	} else {
		c.Difficulty = string(preset)
	}

	return c
}

func (b BoardPreset) normalize(def BoardPreset) BoardPreset {
	if b.Rows <= 0 || b.Cols <= 0 {
		return def
	}
	if b.Rows > MaxBoardSide {
		b.Rows = MaxBoardSide
	}
	if b.Cols > MaxBoardSide {
		b.Cols = MaxBoardSide
	}
	return b
}

// ApplyMolePreset modifies the config based on a difficulty preset.
// An empty preset keeps the configured difficulty.
func ApplyMolePreset(cfg *MoleConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty = string(preset)
}
