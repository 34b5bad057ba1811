package mole

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/vovakirdan/whackamole/internal/schedule"
)

// emptyBoard has no slots.
type emptyBoard struct{}

func (emptyBoard) Slots() []SlotID                  { return nil }
func (emptyBoard) OnActivate(SlotID, func(SlotID)) {}

func newTestController(t *testing.T, rows, cols int, opts Options) (*Controller, *Field, *schedule.Scheduler) {
	t.Helper()
	field, err := NewField(rows, cols)
	if err != nil {
		t.Fatalf("NewField() error: %v", err)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(42))
	}
	sched := schedule.New()
	c, err := NewController(field, field, sched, opts)
	if err != nil {
		t.Fatalf("NewController() error: %v", err)
	}
	return c, field, sched
}

func visibleSlot(f *Field) SlotID {
	for _, s := range f.Slots() {
		if f.Visible(s) {
			return s
		}
	}
	return NoSlot
}

func TestNewControllerEmptyBoard(t *testing.T) {
	_, err := NewController(emptyBoard{}, &Field{}, schedule.New(), Options{})
	if !errors.Is(err, ErrEmptyBoard) {
		t.Errorf("NewController(empty) error = %v, expected ErrEmptyBoard", err)
	}
}

func TestNewControllerDefaults(t *testing.T) {
	c, _, _ := newTestController(t, 3, 3, Options{})

	if c.Duration() != DefaultDuration {
		t.Errorf("Duration() = %d, expected %d", c.Duration(), DefaultDuration)
	}
	if c.Difficulty() != DifficultyHard {
		t.Errorf("Difficulty() = %q, expected hard", c.Difficulty())
	}
	s := c.Session()
	if s.Phase != PhaseIdle || s.LastTarget != NoSlot || s.Epoch != 0 {
		t.Errorf("new session = %+v, expected idle with no target", s)
	}
}

func TestStatusTokens(t *testing.T) {
	c, _, _ := newTestController(t, 3, 3, Options{})

	if got := c.Start(); got != StatusStarted {
		t.Errorf("Start() = %q, expected %q", got, StatusStarted)
	}
	if got := c.Stop(); got != StatusStopped {
		t.Errorf("Stop() = %q, expected %q", got, StatusStopped)
	}
	if got := c.Stop(); got != StatusStopped {
		t.Errorf("second Stop() = %q, expected %q", got, StatusStopped)
	}
}

func TestChooseSlotNeverRepeats(t *testing.T) {
	c, field, _ := newTestController(t, 3, 3, Options{})

	prev := c.ChooseSlot(field)
	for i := 0; i < 500; i++ {
		next := c.ChooseSlot(field)
		if next == prev {
			t.Fatalf("call %d repeated slot %d", i, next)
		}
		if _, ok := field.SlotAt(int(next)/field.Cols(), int(next)%field.Cols()); !ok {
			t.Fatalf("call %d returned invalid slot %d", i, next)
		}
		if c.Session().LastTarget != next {
			t.Fatalf("LastTarget = %d, expected %d", c.Session().LastTarget, next)
		}
		prev = next
	}
}

func TestChooseSlotCoversBoard(t *testing.T) {
	c, field, _ := newTestController(t, 3, 3, Options{})

	seen := make(map[SlotID]bool)
	for i := 0; i < 500; i++ {
		seen[c.ChooseSlot(field)] = true
	}
	if len(seen) != 9 {
		t.Errorf("500 draws hit %d of 9 slots", len(seen))
	}
}

func TestChooseSlotSingleSlot(t *testing.T) {
	c, field, _ := newTestController(t, 1, 1, Options{})

	for i := 0; i < 20; i++ {
		if got := c.ChooseSlot(field); got != 0 {
			t.Fatalf("ChooseSlot() on single slot board = %d, expected 0", got)
		}
	}
}

func TestChooseSlotTwoSlotsAlternate(t *testing.T) {
	c, field, _ := newTestController(t, 1, 2, Options{})

	prev := c.ChooseSlot(field)
	for i := 0; i < 50; i++ {
		next := c.ChooseSlot(field)
		if next == prev {
			t.Fatalf("two slot board repeated slot %d", next)
		}
		prev = next
	}
}

func TestStartResetsSession(t *testing.T) {
	c, field, _ := newTestController(t, 3, 3, Options{})

	c.Start()
	for i := 0; i < 7; i++ {
		c.OnTargetActivated(0)
	}
	for i := 0; i < 12; i++ {
		c.Tick()
	}
	if s := c.Session(); s.Score != 7 || s.RemainingSeconds != 0 {
		t.Fatalf("setup failed: %+v", s)
	}

	c.Start()

	s := c.Session()
	if s.Score != 0 {
		t.Errorf("Score after Start = %d, expected 0", s.Score)
	}
	if s.RemainingSeconds != DefaultDuration {
		t.Errorf("RemainingSeconds after Start = %d, expected %d", s.RemainingSeconds, DefaultDuration)
	}
	if field.ScoreText() != "0" {
		t.Errorf("score text = %q, expected \"0\"", field.ScoreText())
	}
	if field.TimeText() != "10" {
		t.Errorf("time text = %q, expected \"10\"", field.TimeText())
	}
	if s.Epoch != 2 {
		t.Errorf("Epoch = %d, expected 2", s.Epoch)
	}
}

func TestOnTargetActivated(t *testing.T) {
	c, field, _ := newTestController(t, 3, 3, Options{})
	c.Start()

	slot := visibleSlot(field)
	if slot == NoSlot {
		t.Fatal("Start() should reveal a mole")
	}

	if got := c.OnTargetActivated(slot); got != 1 {
		t.Errorf("OnTargetActivated() = %d, expected 1", got)
	}
	if field.Visible(slot) {
		t.Error("hit slot should be hidden")
	}
	if field.ScoreText() != "1" {
		t.Errorf("score text = %q, expected \"1\"", field.ScoreText())
	}

	// Scoring does not depend on visibility
	if got := c.OnTargetActivated(slot); got != 2 {
		t.Errorf("second OnTargetActivated() = %d, expected 2", got)
	}
}

func TestTickCountsDownToZero(t *testing.T) {
	c, field, _ := newTestController(t, 3, 3, Options{})
	c.Start()

	for want := 9; want >= 0; want-- {
		if got := c.Tick(); got != want {
			t.Fatalf("Tick() = %d, expected %d", got, want)
		}
		if field.TimeText() != strconv.Itoa(want) {
			t.Fatalf("time text = %q, expected %d", field.TimeText(), want)
		}
	}

	if got := c.Tick(); got != 0 {
		t.Errorf("11th Tick() = %d, expected 0", got)
	}
	if c.Session().Running() {
		t.Error("Running() should report false at zero")
	}
}

func TestDelayForDefaults(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		difficulty Difficulty
		expected   time.Duration
	}{
		{DifficultyEasy, 1500 * time.Millisecond},
		{DifficultyNormal, 1000 * time.Millisecond},
		{"unknown", 1000 * time.Millisecond},
		{"", 1000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			if got := DelayFor(tt.difficulty, rng); got != tt.expected {
				t.Errorf("DelayFor(%q) = %v, expected %v", tt.difficulty, got, tt.expected)
			}
		})
	}
}

func TestDelayForHardRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lo, hi := 600*time.Millisecond, 1200*time.Millisecond

	sawLo, sawHi := false, false
	for i := 0; i < 20000; i++ {
		d := DelayFor(DifficultyHard, rng)
		if d < lo || d > hi {
			t.Fatalf("hard delay %v outside [%v, %v]", d, lo, hi)
		}
		if d%time.Millisecond != 0 {
			t.Fatalf("hard delay %v is not a whole number of milliseconds", d)
		}
		sawLo = sawLo || d == lo
		sawHi = sawHi || d == hi
	}
	if !sawLo || !sawHi {
		t.Errorf("hard delays should reach both bounds, saw 600ms=%v 1200ms=%v", sawLo, sawHi)
	}
}

func TestDelaysForSwappedHardRange(t *testing.T) {
	d := Delays{HardMin: 900 * time.Millisecond, HardMax: 700 * time.Millisecond}
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		got := d.For(DifficultyHard, rng)
		if got < 700*time.Millisecond || got > 900*time.Millisecond {
			t.Fatalf("For(hard) = %v outside [700ms, 900ms]", got)
		}
	}
}

func TestDoubleStartKeepsOneChain(t *testing.T) {
	c, field, sched := newTestController(t, 3, 3, Options{})

	c.Start()
	c.Start()

	if sched.Len() != 2 {
		t.Errorf("pending events after double Start = %d, expected countdown and one hide", sched.Len())
	}
	if n := field.VisibleCount(); n != 1 {
		t.Errorf("visible moles after double Start = %d, expected 1", n)
	}

	// One countdown: ten seconds of ticks leave the clock at zero, not below.
	for i := 0; i < 5; i++ {
		sched.Advance(time.Second)
	}
	if got := c.Session().RemainingSeconds; got != 5 {
		t.Errorf("RemainingSeconds after 5s = %d, expected 5", got)
	}
	if n := field.VisibleCount(); n > 1 {
		t.Errorf("visible moles = %d, expected at most 1", n)
	}
}

func TestStaleEpochIgnored(t *testing.T) {
	c, _, sched := newTestController(t, 3, 3, Options{Difficulty: DifficultyEasy})

	c.Start()
	sched.Advance(time.Second) // old hide due at 1.5s
	c.Start()
	sched.Advance(time.Second) // new hide due at 2.5s

	s := c.Session()
	if s.Reveals != 1 {
		t.Errorf("Reveals = %d, expected 1 from the new session only", s.Reveals)
	}
	if s.RemainingSeconds != 9 {
		t.Errorf("RemainingSeconds = %d, expected 9", s.RemainingSeconds)
	}
}

func TestFullSessionEndsIdle(t *testing.T) {
	c, field, sched := newTestController(t, 3, 3, Options{})
	c.Start()

	for i := 0; i < 1500; i++ {
		sched.Advance(10 * time.Millisecond)
	}

	s := c.Session()
	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %v, expected idle", s.Phase)
	}
	if s.RemainingSeconds != 0 {
		t.Errorf("RemainingSeconds = %d, expected 0", s.RemainingSeconds)
	}
	if sched.Len() != 0 {
		t.Errorf("pending events after session = %d, expected 0", sched.Len())
	}
	if field.VisibleCount() != 0 {
		t.Errorf("visible moles after session = %d, expected 0", field.VisibleCount())
	}
	// At least one reveal per 1.2s of play
	if s.Reveals < 9 {
		t.Errorf("Reveals = %d, expected at least 9", s.Reveals)
	}
}

func TestRevealChainUsesDifficulty(t *testing.T) {
	c, field, sched := newTestController(t, 3, 3, Options{Difficulty: DifficultyEasy})
	c.Start()

	first := visibleSlot(field)
	sched.Advance(1499 * time.Millisecond)
	if !field.Visible(first) {
		t.Fatal("easy mole should stay up for 1500ms")
	}
	sched.Advance(time.Millisecond)
	if field.Visible(first) {
		t.Error("easy mole should hide at 1500ms")
	}
	if c.Session().Reveals != 2 {
		t.Errorf("Reveals = %d, expected the chain to continue", c.Session().Reveals)
	}

	c.SetDifficulty(DifficultyNormal)
	second := visibleSlot(field)
	sched.Advance(1499 * time.Millisecond)
	if !field.Visible(second) {
		t.Error("mole revealed before SetDifficulty should keep the easy delay")
	}
	sched.Advance(time.Millisecond)

	third := visibleSlot(field)
	sched.Advance(999 * time.Millisecond)
	if !field.Visible(third) {
		t.Error("normal mole should stay up for 1000ms")
	}
	sched.Advance(time.Millisecond)
	if field.Visible(third) {
		t.Error("normal mole should hide at 1000ms")
	}
}

func TestHitDoesNotCancelAutoHide(t *testing.T) {
	c, field, sched := newTestController(t, 3, 3, Options{Difficulty: DifficultyNormal})
	c.Start()

	slot := visibleSlot(field)
	if !field.Press(slot) {
		t.Fatal("Press() on visible mole should run the handler")
	}
	if c.Session().Reveals != 1 {
		t.Fatalf("Reveals = %d, expected 1", c.Session().Reveals)
	}

	sched.Advance(999 * time.Millisecond)
	if field.VisibleCount() != 0 {
		t.Error("no mole should show until the pending hide fires")
	}
	sched.Advance(time.Millisecond)
	if c.Session().Reveals != 2 {
		t.Errorf("Reveals = %d, expected the pending hide to continue the chain", c.Session().Reveals)
	}
	if c.Session().Score != 1 {
		t.Errorf("Score = %d, expected 1", c.Session().Score)
	}
}

func TestStopCancelsPending(t *testing.T) {
	c, field, sched := newTestController(t, 3, 3, Options{})
	c.Start()
	c.Stop()

	if sched.Len() != 0 {
		t.Errorf("pending events after Stop = %d, expected 0", sched.Len())
	}
	if field.VisibleCount() != 0 {
		t.Error("Stop() should hide the shown mole")
	}
	if c.Session().Phase != PhaseIdle {
		t.Error("Stop() should leave the session idle")
	}
}
