package mole

import "fmt"

// Field is a rows x cols grid of holes. It is both the Board the controller
// arms and the Display it draws on; the renderer reads it back.
type Field struct {
	rows     int
	cols     int
	slots    []SlotID
	visible  []bool
	handlers []func(SlotID)

	scoreText string
	timeText  string
}

// NewField creates an empty field with all moles hidden.
func NewField(rows, cols int) (*Field, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyBoard, rows, cols)
	}

	n := rows * cols
	f := &Field{
		rows:     rows,
		cols:     cols,
		slots:    make([]SlotID, n),
		visible:  make([]bool, n),
		handlers: make([]func(SlotID), n),
	}
	for i := range f.slots {
		f.slots[i] = SlotID(i)
	}
	return f, nil
}

// Rows returns the number of rows.
func (f *Field) Rows() int {
	return f.rows
}

// Cols returns the number of columns.
func (f *Field) Cols() int {
	return f.cols
}

// Slots returns every slot in row-major order.
func (f *Field) Slots() []SlotID {
	return append([]SlotID(nil), f.slots...)
}

// SlotAt returns the slot at a grid position.
func (f *Field) SlotAt(row, col int) (SlotID, bool) {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return NoSlot, false
	}
	return SlotID(row*f.cols + col), true
}

// OnActivate sets the hit handler for a slot, replacing any previous one.
func (f *Field) OnActivate(slot SlotID, handler func(SlotID)) {
	if !f.valid(slot) {
		return
	}
	f.handlers[slot] = handler
}

// Press hits a slot. Only a visible mole can be hit; the return value reports
// whether a handler ran.
func (f *Field) Press(slot SlotID) bool {
	if !f.valid(slot) || !f.visible[slot] {
		return false
	}
	h := f.handlers[slot]
	if h == nil {
		return false
	}
	h(slot)
	return true
}

// Visible reports whether the mole in slot is showing.
func (f *Field) Visible(slot SlotID) bool {
	return f.valid(slot) && f.visible[slot]
}

// VisibleCount returns how many moles are showing.
func (f *Field) VisibleCount() int {
	n := 0
	for _, v := range f.visible {
		if v {
			n++
		}
	}
	return n
}

// SetScoreText implements Display.
func (f *Field) SetScoreText(text string) {
	f.scoreText = text
}

// SetTimeText implements Display.
func (f *Field) SetTimeText(text string) {
	f.timeText = text
}

// SetSlotVisible implements Display. Setting the current state again is a no-op.
func (f *Field) SetSlotVisible(slot SlotID, visible bool) {
	if !f.valid(slot) {
		return
	}
	f.visible[slot] = visible
}

// ScoreText returns the last score text shown.
func (f *Field) ScoreText() string {
	return f.scoreText
}

// TimeText returns the last time text shown.
func (f *Field) TimeText() string {
	return f.timeText
}

func (f *Field) valid(slot SlotID) bool {
	return slot >= 0 && int(slot) < len(f.slots)
}
