package mole

import (
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whackamole/internal/schedule"
)

// DefaultDuration is the session length in seconds.
const DefaultDuration = 10

// maxResample bounds how often ChooseSlot redraws to avoid repeating a slot.
const maxResample = 16

// Status is the token returned by Start and Stop.
type Status string

const (
	StatusStarted Status = "game started"
	StatusStopped Status = "game stopped"
)

// Phase is the session-level state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Session is the mutable state of one play-through.
type Session struct {
	Epoch            uint64 // Increments on every Start
	Phase            Phase
	RemainingSeconds int
	Score            int
	LastTarget       SlotID
	Difficulty       Difficulty
	Reveals          int // Moles shown this session
}

// Running reports whether the countdown has time left.
func (s Session) Running() bool {
	return s.RemainingSeconds > 0
}

// Options configures a Controller. Zero fields take defaults.
type Options struct {
	Duration   int // Session length in seconds
	Delays     Delays
	Difficulty Difficulty
	Rand       *rand.Rand
	Logger     *log.Logger
}

// Controller drives whack-a-mole sessions: a one-second countdown and a
// chain of reveal/hide events, both on one Scheduler.
// It is not safe for concurrent use; the game loop that advances the
// scheduler is its only caller.
type Controller struct {
	board    Board
	display  Display
	sched    *schedule.Scheduler
	rng      *rand.Rand
	delays   Delays
	duration int
	logger   *log.Logger

	session   Session
	countdown schedule.Handle
	hide      schedule.Handle
	shown     SlotID // Slot whose hide is pending, or NoSlot
}

// NewController creates an idle controller. The board must have at least one slot.
func NewController(board Board, display Display, sched *schedule.Scheduler, opts Options) (*Controller, error) {
	if len(board.Slots()) == 0 {
		return nil, ErrEmptyBoard
	}

	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Delays == (Delays{}) {
		opts.Delays = DefaultDelays()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = DifficultyHard
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Controller{
		board:    board,
		display:  display,
		sched:    sched,
		rng:      opts.Rand,
		delays:   opts.Delays,
		duration: opts.Duration,
		logger:   opts.Logger,
		session: Session{
			Phase:      PhaseIdle,
			LastTarget: NoSlot,
			Difficulty: opts.Difficulty,
		},
		shown: NoSlot,
	}, nil
}

// Session returns a copy of the current session state.
func (c *Controller) Session() Session {
	return c.session
}

// Difficulty returns the difficulty used for the next reveal.
func (c *Controller) Difficulty() Difficulty {
	return c.session.Difficulty
}

// SetDifficulty changes the difficulty. A running session picks it up on its next reveal.
func (c *Controller) SetDifficulty(d Difficulty) {
	c.session.Difficulty = d
}

// Duration returns the configured session length in seconds.
func (c *Controller) Duration() int {
	return c.duration
}

// Start begins a new session, superseding any session in progress.
func (c *Controller) Start() Status {
	if c.session.Phase == PhaseRunning {
		c.logger.Debug("session restarted", "epoch", c.session.Epoch, "score", c.session.Score)
	}
	c.cancelPending()

	c.session = Session{
		Epoch:      c.session.Epoch + 1,
		Phase:      PhaseRunning,
		LastTarget: NoSlot,
		Difficulty: c.session.Difficulty,
	}

	c.clearScore()
	c.setDuration(c.duration)
	c.attachHandlers()
	c.startCountdown()
	c.Reveal()

	c.logger.Debug("session started",
		"epoch", c.session.Epoch,
		"difficulty", c.session.Difficulty,
		"duration", c.duration,
	)
	return StatusStarted
}

// Stop ends the session: the countdown and any pending hide are cancelled.
func (c *Controller) Stop() Status {
	c.cancelPending()
	if c.session.Phase == PhaseRunning {
		c.logger.Debug("session stopped",
			"epoch", c.session.Epoch,
			"score", c.session.Score,
			"reveals", c.session.Reveals,
		)
	}
	c.session.Phase = PhaseIdle
	return StatusStopped
}

// Tick decrements the remaining time by one second, never below zero.
func (c *Controller) Tick() int {
	if c.session.RemainingSeconds > 0 {
		c.session.RemainingSeconds--
		c.display.SetTimeText(strconv.Itoa(c.session.RemainingSeconds))
	}
	return c.session.RemainingSeconds
}

// Reveal shows a mole in a fresh slot and schedules its hide.
// When the hide fires the chain continues while time remains, else the session stops.
func (c *Controller) Reveal() schedule.Handle {
	delay := c.DelayFor(c.session.Difficulty)
	slot := c.ChooseSlot(c.board)
	return c.showAndHide(slot, delay)
}

// DelayFor returns the reveal delay for a difficulty from this controller's delay table.
func (c *Controller) DelayFor(d Difficulty) time.Duration {
	return c.delays.For(d, c.rng)
}

// ChooseSlot picks a random slot from board, avoiding the previous target
// when the board has more than one slot. It records the choice as the last target.
func (c *Controller) ChooseSlot(board Board) SlotID {
	slots := board.Slots()
	if len(slots) == 0 {
		return NoSlot
	}

	slot := c.pick(slots)
	c.session.LastTarget = slot
	return slot
}

func (c *Controller) pick(slots []SlotID) SlotID {
	last := c.session.LastTarget
	if len(slots) == 1 || last == NoSlot {
		return slots[c.rng.Intn(len(slots))]
	}

	for i := 0; i < maxResample; i++ {
		if slot := slots[c.rng.Intn(len(slots))]; slot != last {
			return slot
		}
	}

	// Drawing from the remaining slots keeps the choice uniform.
	others := make([]SlotID, 0, len(slots)-1)
	for _, slot := range slots {
		if slot != last {
			others = append(others, slot)
		}
	}
	if len(others) == 0 {
		return last
	}
	return others[c.rng.Intn(len(others))]
}

// OnTargetActivated scores a hit and hides the slot. A pending auto-hide for
// the slot still fires later and continues the chain.
func (c *Controller) OnTargetActivated(slot SlotID) int {
	c.session.Score++
	c.display.SetScoreText(strconv.Itoa(c.session.Score))
	c.display.SetSlotVisible(slot, false)
	return c.session.Score
}

func (c *Controller) showAndHide(slot SlotID, delay time.Duration) schedule.Handle {
	epoch := c.session.Epoch

	c.display.SetSlotVisible(slot, true)
	c.session.Reveals++
	c.shown = slot

	c.hide = c.sched.After(delay, func() {
		if epoch != c.session.Epoch {
			return
		}
		c.hide = 0
		c.shown = NoSlot
		c.display.SetSlotVisible(slot, false)
		c.continueOrStop()
	})
	return c.hide
}

func (c *Controller) continueOrStop() {
	if c.session.RemainingSeconds > 0 {
		c.Reveal()
		return
	}
	c.Stop()
}

func (c *Controller) startCountdown() {
	epoch := c.session.Epoch
	c.countdown = c.sched.Every(time.Second, func() {
		if epoch != c.session.Epoch {
			return
		}
		c.Tick()
	})
}

func (c *Controller) attachHandlers() {
	for _, slot := range c.board.Slots() {
		c.board.OnActivate(slot, func(s SlotID) {
			c.OnTargetActivated(s)
		})
	}
}

func (c *Controller) clearScore() {
	c.session.Score = 0
	c.display.SetScoreText(strconv.Itoa(c.session.Score))
}

func (c *Controller) setDuration(seconds int) {
	c.session.RemainingSeconds = seconds
	c.display.SetTimeText(strconv.Itoa(c.session.RemainingSeconds))
}

// cancelPending drops the countdown and any pending hide, hiding its slot.
func (c *Controller) cancelPending() {
	if c.countdown != 0 {
		c.sched.Cancel(c.countdown)
		c.countdown = 0
	}
	if c.hide != 0 {
		c.sched.Cancel(c.hide)
		c.hide = 0
	}
	if c.shown != NoSlot {
		c.display.SetSlotVisible(c.shown, false)
		c.shown = NoSlot
	}
}
