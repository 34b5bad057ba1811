// Package mole implements Whack-a-Mole.
// Moles pop out of a grid of holes one at a time; the player hits them with
// the key laid out over the hole or a mouse click before they duck back in.
package mole

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whackamole/internal/config"
	"github.com/vovakirdan/whackamole/internal/core"
	"github.com/vovakirdan/whackamole/internal/registry"
	"github.com/vovakirdan/whackamole/internal/schedule"
)

// Game IDs for the two board sizes.
const (
	IDClassic = "mole"
	IDBig     = "mole_big"
)

// Layout of one hole on screen, in cells.
const (
	CellW = 9
	CellH = 4
	GapX  = 2
	GapY  = 1

	boardTop = 3 // HUD takes the first rows
)

// Visual characters for rendering
const (
	MoleHead = "(o.o)"
	MoleBody = "/###\\"
	HoleRim  = "~~~~~"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to new controllers.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Controller to the terminal platform.
type Game struct {
	id    string
	title string
	big   bool

	runtime core.RuntimeConfig
	cfg     config.MoleConfig
	sched   *schedule.Scheduler
	field   *Field
	ctrl    *Controller

	preset    config.DifficultyPreset // Overrides the package preset when set
	tick      time.Duration           // Virtual time per Step
	played    bool                    // At least one session has started
	best      int                     // Best score since Reset
	lastScore int                     // Score of the last finished session
	wasActive bool
	grid      core.Grid // Where the last Render put the holes
	laidOut   bool      // The last Render drew the board
}

// New creates the classic 3x3 game.
func New() *Game {
	return &Game{id: IDClassic, title: "Whack-a-Mole"}
}

// NewBig creates the 4x4 game.
func NewBig() *Game {
	return &Game{id: IDBig, title: "Whack-a-Mole XL", big: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset builds a fresh idle board. The player starts the first session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadMole(configPath)
	if err != nil {
		cfg = config.DefaultMoleConfig()
	}

	// Apply difficulty preset if set
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	config.ApplyMolePreset(&cfg, preset)
	g.cfg = cfg

	board := cfg.Boards.Classic
	if g.big {
		board = cfg.Boards.Big
	}

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tick = time.Second / time.Duration(tickRate)

	field, err := NewField(board.Rows, board.Cols)
	if err != nil {
		def := config.DefaultMoleConfig().Boards.Classic
		field, _ = NewField(def.Rows, def.Cols)
	}
	g.field = field
	g.sched = schedule.New()

	ctrl, err := NewController(g.field, g.field, g.sched, Options{
		Duration:   cfg.Session.DurationSeconds,
		Delays:     DelaysFromConfig(cfg.Delays),
		Difficulty: Difficulty(cfg.Difficulty),
		Rand:       rand.New(rand.NewSource(runtime.Seed)),
		Logger:     logger,
	})
	if err != nil {
		// NewField never returns an empty board
		panic(fmt.Sprintf("mole: %v", err))
	}
	g.ctrl = ctrl

	g.played = false
	g.best = 0
	g.lastScore = 0
	g.wasActive = false
	g.grid = g.boardGrid()
	g.laidOut = false
}

// SetDifficulty selects the difficulty for this instance.
func (g *Game) SetDifficulty(name string) error {
	p, err := config.ParseDifficultyPreset(name)
	if err != nil {
		return err
	}
	g.preset = p
	if g.ctrl != nil && p != "" {
		g.ctrl.SetDifficulty(Difficulty(p))
	}
	return nil
}

// Step applies input and advances the virtual clock by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionDifficulty) {
		g.ctrl.SetDifficulty(g.ctrl.Difficulty().Next())
	}

	running := g.ctrl.Session().Phase == PhaseRunning
	if in.Has(core.ActionRestart) || (in.Has(core.ActionStart) && !running) {
		g.ctrl.Start()
		g.played = true
	}

	for _, t := range in.Targets {
		g.field.Press(SlotID(t))
	}

	g.sched.Advance(g.tick)
	g.observe()

	return core.StepResult{State: g.State()}
}

// observe records the score when a session ends.
func (g *Game) observe() {
	s := g.ctrl.Session()
	active := s.Phase == PhaseRunning
	if g.wasActive && !active {
		g.lastScore = s.Score
		if s.Score > g.best {
			g.best = s.Score
		}
	}
	g.wasActive = active
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.ctrl.Session()
	return core.GameState{
		Score:      s.Score,
		GameOver:   g.played && s.Phase == PhaseIdle,
		Running:    s.Phase == PhaseRunning,
		Difficulty: string(s.Difficulty),
	}
}

// Controller returns the session controller.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Field returns the board.
func (g *Game) Field() *Field {
	return g.field
}

// Best returns the best score since Reset.
func (g *Game) Best() int {
	return g.best
}

// SlotAt maps a grid position to a slot index.
func (g *Game) SlotAt(row, col int) (int, bool) {
	slot, ok := g.field.SlotAt(row, col)
	return int(slot), ok
}

// HitTest maps a screen cell from the last Render to a slot index.
// Gaps between holes hit nothing.
func (g *Game) HitTest(x, y int) (int, bool) {
	if !g.laidOut {
		return int(NoSlot), false
	}
	row, col, ok := g.grid.At(x, y)
	if !ok {
		return int(NoSlot), false
	}
	return g.SlotAt(row, col)
}

// BoardSize returns the screen size of the hole grid.
func (g *Game) BoardSize() (w, h int) {
	return g.boardGrid().Size()
}

// boardGrid returns the hole layout at the origin.
func (g *Game) boardGrid() core.Grid {
	return core.Grid{
		Rows:  g.field.Rows(),
		Cols:  g.field.Cols(),
		CellW: CellW,
		CellH: CellH,
		GapX:  GapX,
		GapY:  GapY,
	}
}

// Render draws the HUD, the holes, and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.drawHUD(dst)

	area := core.NewRect(0, boardTop, dst.Width(), dst.Height()-boardTop)
	grid, ok := g.boardGrid().CenterIn(area)
	g.laidOut = ok
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorBrightRed)
		return
	}

	g.grid = grid
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			g.drawHole(dst, row, col)
		}
	}

	s := g.ctrl.Session()
	switch {
	case s.Phase == PhaseRunning:
	case g.played:
		g.drawCenteredMessage(dst, "TIME'S UP!",
			fmt.Sprintf("Score: %d  |  Press SPACE to play again", g.lastScore))
	default:
		g.drawCenteredMessage(dst, g.title,
			fmt.Sprintf("%s  |  Press SPACE to start", s.Difficulty.Label()))
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.ctrl.Session()

	timeColor := core.ColorBrightWhite
	if s.Phase == PhaseRunning && s.RemainingSeconds <= 3 {
		timeColor = core.ColorBrightRed
	}

	x := 2
	x = drawLabel(dst, x, 0, " Score: ", g.field.ScoreText(), core.ColorBrightYellow)
	x = drawLabel(dst, x, 0, "  Time: ", g.field.TimeText(), timeColor)
	x = drawLabel(dst, x, 0, "  Difficulty: ", s.Difficulty.Label(), core.ColorBrightCyan)
	drawLabel(dst, x, 0, "  Best: ", fmt.Sprint(g.best), core.ColorBrightGreen)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

func drawLabel(dst *core.Screen, x, y int, label, value string, c core.Color) int {
	if value == "" {
		value = "-"
	}
	dst.DrawTextColor(x, y, label, core.ColorGray)
	x += len(label)
	dst.DrawTextColor(x, y, value, c)
	return x + len(value)
}

func (g *Game) drawHole(dst *core.Screen, row, col int) {
	cell := g.grid.Cell(row, col)
	x, y := cell.X, cell.Y
	slot, _ := g.field.SlotAt(row, col)
	up := g.field.Visible(slot)

	border := core.ColorGray
	if up {
		border = core.ColorBrightYellow
	}
	dst.DrawBox(cell, border)

	if key, ok := core.TargetKey(row, col); ok {
		dst.DrawTextColor(x+1, y, key, core.ColorBrightWhite)
	}

	inner := x + (CellW-len(HoleRim))/2
	if up {
		dst.DrawTextColor(inner, y+1, MoleHead, core.ColorOrange)
		dst.DrawTextColor(inner, y+2, MoleBody, core.ColorOrange)
		return
	}
	dst.DrawTextColor(inner, y+2, HoleRim, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextColor(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorWhite)
}

// Register the games with the registry
func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDBig, func() registry.Game {
		return NewBig()
	})
}
