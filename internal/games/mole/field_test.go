package mole

import (
	"errors"
	"testing"
)

func TestNewFieldRejectsEmpty(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 3},
		{"zero cols", 3, 0},
		{"negative", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.rows, tt.cols)
			if !errors.Is(err, ErrEmptyBoard) {
				t.Errorf("NewField(%d, %d) error = %v, expected ErrEmptyBoard", tt.rows, tt.cols, err)
			}
		})
	}
}

func TestFieldSlotAt(t *testing.T) {
	f, err := NewField(3, 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(f.Slots()) != 12 {
		t.Fatalf("Slots() has %d entries, expected 12", len(f.Slots()))
	}

	tests := []struct {
		row, col int
		expected SlotID
		ok       bool
	}{
		{0, 0, 0, true},
		{0, 3, 3, true},
		{1, 0, 4, true},
		{2, 3, 11, true},
		{3, 0, NoSlot, false},
		{0, 4, NoSlot, false},
		{-1, 0, NoSlot, false},
	}

	for _, tt := range tests {
		got, ok := f.SlotAt(tt.row, tt.col)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("SlotAt(%d, %d) = (%d, %v), expected (%d, %v)", tt.row, tt.col, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestFieldSlotsIsCopy(t *testing.T) {
	f, _ := NewField(2, 2)
	slots := f.Slots()
	slots[0] = 99

	if f.Slots()[0] != 0 {
		t.Error("mutating Slots() result should not change the field")
	}
}

func TestFieldPressOnlyVisible(t *testing.T) {
	f, _ := NewField(2, 2)
	hits := 0
	for _, s := range f.Slots() {
		f.OnActivate(s, func(SlotID) { hits++ })
	}

	if f.Press(1) {
		t.Error("Press() on hidden slot should not run the handler")
	}

	f.SetSlotVisible(1, true)
	if !f.Press(1) {
		t.Error("Press() on visible slot should run the handler")
	}
	if hits != 1 {
		t.Errorf("hits = %d, expected 1", hits)
	}

	if f.Press(99) {
		t.Error("Press() on unknown slot should be ignored")
	}
}

func TestFieldSetSlotVisibleIdempotent(t *testing.T) {
	f, _ := NewField(1, 3)

	f.SetSlotVisible(2, false)
	if f.Visible(2) {
		t.Error("hiding a hidden slot should leave it hidden")
	}

	f.SetSlotVisible(2, true)
	f.SetSlotVisible(2, true)
	if f.VisibleCount() != 1 {
		t.Errorf("VisibleCount() = %d, expected 1", f.VisibleCount())
	}

	f.SetSlotVisible(-1, true)
	f.SetSlotVisible(3, true)
	if f.VisibleCount() != 1 {
		t.Error("out of range slots should be ignored")
	}
}

func TestFieldText(t *testing.T) {
	f, _ := NewField(1, 1)
	f.SetScoreText("4")
	f.SetTimeText("7")

	if f.ScoreText() != "4" || f.TimeText() != "7" {
		t.Errorf("texts = (%q, %q), expected (\"4\", \"7\")", f.ScoreText(), f.TimeText())
	}
}
