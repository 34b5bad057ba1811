package mole

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/whackamole/internal/config"
)

// Difficulty selects how long a mole stays up.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Delays maps each difficulty to how long a revealed mole stays visible.
type Delays struct {
	Easy    time.Duration
	Normal  time.Duration
	HardMin time.Duration // Hard draws a whole number of milliseconds in [HardMin, HardMax]
	HardMax time.Duration
	Default time.Duration // Any unrecognized difficulty
}

// DefaultDelays returns the classic delay table.
func DefaultDelays() Delays {
	return Delays{
		Easy:    1500 * time.Millisecond,
		Normal:  1000 * time.Millisecond,
		HardMin: 600 * time.Millisecond,
		HardMax: 1200 * time.Millisecond,
		Default: 1000 * time.Millisecond,
	}
}

// DelaysFromConfig builds a delay table from the YAML config.
func DelaysFromConfig(cfg config.MoleDelays) Delays {
	return Delays{
		Easy:    time.Duration(cfg.EasyMS) * time.Millisecond,
		Normal:  time.Duration(cfg.NormalMS) * time.Millisecond,
		HardMin: time.Duration(cfg.HardMinMS) * time.Millisecond,
		HardMax: time.Duration(cfg.HardMaxMS) * time.Millisecond,
		Default: time.Duration(cfg.DefaultMS) * time.Millisecond,
	}
}

// For returns the reveal delay for a difficulty. Only hard uses rng.
func (d Delays) For(difficulty Difficulty, rng *rand.Rand) time.Duration {
	switch difficulty {
	case DifficultyEasy:
		return d.Easy
	case DifficultyNormal:
		return d.Normal
	case DifficultyHard:
		lo, hi := d.HardMin.Milliseconds(), d.HardMax.Milliseconds()
		if hi < lo {
			lo, hi = hi, lo
		}
		return time.Duration(randomInteger(rng, lo, hi)) * time.Millisecond
	default:
		return d.Default
	}
}

// DelayFor returns the classic reveal delay for a difficulty:
// easy 1500ms, normal 1000ms, hard a random 600-1200ms, anything else 1000ms.
func DelayFor(difficulty Difficulty, rng *rand.Rand) time.Duration {
	return DefaultDelays().For(difficulty, rng)
}

// randomInteger returns a uniform integer in [lo, hi].
func randomInteger(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return rng.Int63n(hi-lo+1) + lo
}

// Next returns the difficulty that follows d in the easy, normal, hard cycle.
func (d Difficulty) Next() Difficulty {
	return Difficulty(config.DifficultyPreset(d).Next())
}

// Label returns a capitalized name for display.
func (d Difficulty) Label() string {
	return config.DifficultyPreset(d).Label()
}
