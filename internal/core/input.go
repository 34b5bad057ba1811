package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionStart             // Space, Enter - start a session
	ActionDifficulty        // Tab - cycle difficulty
	ActionRestart           // R key - restart after game over
	ActionBack              // Escape - go back to menu
	ActionQuit              // Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionDifficulty:
		return "Difficulty"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame and the
// board targets the player hit, in the order they were hit.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Targets holds slot indexes activated by key or mouse this frame.
	Targets []int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Hit records an activation of the given slot index.
func (f *InputFrame) Hit(slot int) {
	f.Targets = append(f.Targets, slot)
}

// Clear resets all actions and targets for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Targets = f.Targets[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Targets) > 0 {
		clone.Targets = append([]int(nil), f.Targets...)
	}
	return clone
}

// TargetKeys lays out the keys that hit board targets, one string per grid row.
// A board uses the top-left rows x cols corner of the layout.
var TargetKeys = [4]string{"1234", "qwer", "asdf", "zxcv"}

// TargetKey returns the key bound to a grid position.
func TargetKey(row, col int) (string, bool) {
	if row < 0 || row >= len(TargetKeys) || col < 0 || col >= len(TargetKeys[row]) {
		return "", false
	}
	return string(TargetKeys[row][col]), true
}

// TargetPosition returns the grid position bound to a key.
func TargetPosition(key string) (row, col int, ok bool) {
	if len(key) != 1 {
		return 0, 0, false
	}
	for r, keys := range TargetKeys {
		for c := 0; c < len(keys); c++ {
			if keys[c] == key[0] {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
