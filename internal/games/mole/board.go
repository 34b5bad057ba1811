package mole

import "errors"

// ErrEmptyBoard is returned when a board has no slots.
var ErrEmptyBoard = errors.New("mole: board has no slots")

// SlotID identifies one hole on the board.
type SlotID int

// NoSlot marks the absence of a slot, e.g. before the first reveal.
const NoSlot SlotID = -1

// Board is the fixed, ordered set of holes a mole can appear in.
type Board interface {
	// Slots returns every slot in board order. It is never empty.
	Slots() []SlotID

	// OnActivate sets the handler called when the player hits the slot.
	// A later call for the same slot replaces the previous handler.
	OnActivate(slot SlotID, handler func(SlotID))
}

// Display renders the session to the player.
// Calls are fire-and-forget; implementations must not call back into the controller.
type Display interface {
	SetScoreText(text string)
	SetTimeText(text string)
	SetSlotVisible(slot SlotID, visible bool)
}
