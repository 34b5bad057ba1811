package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/whackamole/internal/config"
	"github.com/vovakirdan/whackamole/internal/registry"
	"github.com/vovakirdan/whackamole/internal/storage"
)

// maxScores is how many entries one table loads.
const maxScores = 100

// scoreboardChrome is the rows around the table: title, tabs, filter, stats, borders, help.
const scoreboardChrome = 11

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 4)

	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	scoreStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	filterOnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	filterOffStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextBoard  key.Binding
	PrevBoard  key.Binding
	Difficulty key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextBoard, k.Difficulty, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextBoard, k.PrevBoard, k.Difficulty},
		{k.Up, k.Down, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev board"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the high scores of one board at a time,
// optionally filtered by difficulty.
type ScoreboardModel struct {
	games      []registry.GameInfo
	board      int // Index into games
	difficulty int // Index into menuDifficulties; 0 shows all
	store      *storage.Store
	scores     []storage.ScoreEntry
	stats      *storage.GameStats
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
	embedded   bool // Hosted by SessionModel; back does not end the program
}

// NewScoreboardModel creates a scoreboard showing the first registered board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(height)
	m.load()
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 7},
			{Title: "Mode", Width: 8},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-scoreboardChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches scores and stats for the current board and filter.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.loadErr = nil, nil, nil

	if gameID, ok := m.gameID(); ok && m.store != nil {
		difficulty := string(menuDifficulties[m.difficulty])
		m.scores, m.loadErr = m.store.TopScores(gameID, difficulty, maxScores)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(gameID, difficulty)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(s.Score),
			config.DifficultyPreset(s.Difficulty).Label(),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) gameID() (string, bool) {
	if len(m.games) == 0 {
		return "", false
	}
	return m.games[m.board].ID, true
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Difficulty):
			m.difficulty = (m.difficulty + 1) % len(menuDifficulties)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.NextBoard):
			m.cycleBoard(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.cycleBoard(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-scoreboardChrome, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleBoard(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.board = (m.board + delta + len(m.games)) % len(m.games)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		scoreTitleStyle.Render("HIGH SCORES"),
		m.boardTabs(),
		m.filterTabs(),
		scoreStatsStyle.Render(m.statsLine()),
		panelStyle.Render(m.body()),
	)
	if m.width > 0 {
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}
	return "\n" + body + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m ScoreboardModel) boardTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.board {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) filterTabs() string {
	tabs := make([]string, len(menuDifficulties))
	for i, d := range menuDifficulties {
		label := "All"
		if d != "" {
			label = d.Label()
		}
		if i == m.difficulty {
			tabs[i] = filterOnStyle.Render("[" + label + "]")
		} else {
			tabs[i] = filterOffStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No rounds played"
	}
	return fmt.Sprintf("Best %d  •  %d rounds  •  avg %.1f",
		m.stats.HighScore, m.stats.GamesCount, m.stats.AvgScore)
}

func (m ScoreboardModel) body() string {
	switch {
	case m.loadErr != nil:
		return errStyle.Render(fmt.Sprintf("Could not load scores:\n%v", m.loadErr))
	case m.store == nil:
		return emptyStyle.Render("Scores are not being saved.")
	case len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nWhack some moles to set a high score!")
	}
	return m.table.View()
}

// Board returns the ID of the board shown, or empty if none is registered.
func (m ScoreboardModel) Board() string {
	id, _ := m.gameID()
	return id
}

// Scores returns the entries currently listed.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
