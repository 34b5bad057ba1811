package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDifficulty is returned when a difficulty name is not recognized.
var ErrInvalidDifficulty = errors.New("config: invalid difficulty")

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// DifficultyPresets returns all presets in cycling order.
func DifficultyPresets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParseDifficultyPreset converts a user-supplied name to a preset.
// An empty name yields an empty preset, meaning "use the config default".
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: %q (want easy, normal or hard)", ErrInvalidDifficulty, name)
	}
}

// Next returns the preset that follows p in cycling order.
// Unknown presets cycle back to easy.
func (p DifficultyPreset) Next() DifficultyPreset {
	presets := DifficultyPresets()
	for i, candidate := range presets {
		if candidate == p {
			return presets[(i+1)%len(presets)]
		}
	}
	return DifficultyEasy
}

// Label returns a capitalized name for display.
func (p DifficultyPreset) Label() string {
	if p == "" {
		return "Default"
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}
