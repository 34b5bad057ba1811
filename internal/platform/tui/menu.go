package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/whackamole/internal/config"
	"github.com/vovakirdan/whackamole/internal/core"
	"github.com/vovakirdan/whackamole/internal/registry"
	"github.com/vovakirdan/whackamole/internal/storage"
)

// menuDifficulties is the left/right cycle; "" keeps the configured default.
var menuDifficulties = append([]config.DifficultyPreset{""}, config.DifficultyPresets()...)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	menuItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuDiffStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).MarginTop(1)
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

const menuControls = "↑/↓ board • ←/→ difficulty • enter play • tab scores • q quit"

// menuOutcome is how the menu was left.
type menuOutcome int

const (
	menuOpen menuOutcome = iota
	menuPlay
	menuScores
	menuQuit
)

// MenuModel is the Bubble Tea model for the board picker.
type MenuModel struct {
	games      []registry.GameInfo
	cursor     int
	difficulty int // Index into menuDifficulties
	config     core.RuntimeConfig
	store      *storage.Store
	bests      map[string]int // Game ID to high score at the chosen difficulty
	keyMapper  *KeyMapper
	outcome    menuOutcome
	embedded   bool // Hosted by SessionModel, which reads the outcome
}

// NewMenuModel lists every registered game.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		games:     registry.List(),
		config:    cfg,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
	m.loadBests()
	return m
}

// loadBests reads each board's high score. Errors leave the board blank.
func (m *MenuModel) loadBests() {
	if m.store == nil {
		return
	}
	m.bests = make(map[string]int, len(m.games))
	for _, g := range m.games {
		if high, err := m.store.HighScore(g.ID, string(m.Difficulty())); err == nil && high > 0 {
			m.bests[g.ID] = high
		}
	}
}

// WithDifficulty preselects a difficulty by name. Unknown names keep the default.
func (m MenuModel) WithDifficulty(name string) MenuModel {
	p, err := config.ParseDifficultyPreset(name)
	if err != nil {
		return m
	}
	for i, d := range menuDifficulties {
		if d == p {
			m.difficulty = i
			break
		}
	}
	m.loadBests()
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(menuDifficulties)

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.games)-1, 0))
	case MenuActionLeft:
		m.difficulty = (m.difficulty + n - 1) % n
		m.loadBests()
	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % n
		m.loadBests()
	case MenuActionSelect:
		if len(m.games) > 0 {
			return m.leave(menuPlay)
		}
	case MenuActionScoreboard:
		return m.leave(menuScores)
	case MenuActionQuit, MenuActionBack:
		m.outcome = menuQuit
		return m, tea.Quit
	}
	return m, nil
}

// leave records the outcome. A standalone menu ends its program; a hosted one
// lets SessionModel switch screens.
func (m MenuModel) leave(o menuOutcome) (tea.Model, tea.Cmd) {
	m.outcome = o
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

func (m MenuModel) View() string {
	if m.outcome == menuQuit {
		return ""
	}

	rows := make([]string, 0, len(m.games)+3)
	rows = append(rows, menuTitleStyle.Render("W H A C K - A - M O L E"))
	for i, g := range m.games {
		label := g.Title
		if best, ok := m.bests[g.ID]; ok {
			label = fmt.Sprintf("%s  (best %d)", g.Title, best)
		}
		if i == m.cursor {
			rows = append(rows, menuSelectedStyle.Render("> "+label))
			continue
		}
		rows = append(rows, menuItemStyle.Render(label))
	}
	rows = append(rows,
		menuDiffStyle.Render(fmt.Sprintf("◀ %s ▶", m.Difficulty().Label())),
		menuDimStyle.Render(menuControls),
	)

	body := lipgloss.JoinVertical(lipgloss.Center, rows...)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return body
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// SelectedGame returns the chosen game ID once the player pressed enter.
func (m MenuModel) SelectedGame() (string, bool) {
	if m.outcome != menuPlay {
		return "", false
	}
	return m.games[m.cursor].ID, true
}

// Difficulty returns the chosen difficulty; empty means the config default.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return menuDifficulties[m.difficulty]
}

func (m MenuModel) IsQuitting() bool {
	return m.outcome == menuQuit
}

func (m MenuModel) WantsScoreboard() bool {
	return m.outcome == menuScores
}

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes the menu's final state. A menu left open counts as quit.
func (m MenuModel) Result() MenuResult {
	r := MenuResult{
		Config:     m.config,
		Difficulty: string(m.Difficulty()),
	}
	switch m.outcome {
	case menuPlay:
		r.GameID, _ = m.SelectedGame()
	case menuScores:
		r.WantsScoreboard = true
	default:
		r.Quit = true
	}
	return r
}

// RunMenu shows the menu in its own program. difficulty preselects the
// difficulty shown.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, difficulty string) (MenuResult, error) {
	final, err := tea.NewProgram(
		NewMenuModel(store, cfg).WithDifficulty(difficulty),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
