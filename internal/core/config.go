package core

// RuntimeConfig is what the platform tells a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Columns available to the game
	ScreenH  int   // Rows available to the game
	TickRate int   // Steps per second; each Step advances the game clock by 1/TickRate
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 terminal at 60 steps per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the part of a game the platform acts on: it saves Score
// under Difficulty once GameOver turns true.
type GameState struct {
	Score      int
	GameOver   bool   // A session has ended and none is running
	Running    bool   // A session is in progress
	Difficulty string // Active difficulty name
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
