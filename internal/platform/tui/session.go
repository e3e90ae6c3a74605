package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/faststack/internal/random"
)

type screen int

const (
	screenMenu screen = iota
	screenScores
	screenGame
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard reachable from the menu. It is the top-level model for
// interactive play and for SSH sessions.
type SessionModel struct {
	env      Env
	screen   screen
	menu     MenuModel
	scores   ScoreboardModel
	game     GameModel
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(env Env, width, height int) SessionModel {
	return SessionModel{
		env:    env,
		menu:   NewMenuModel(env.Store, width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// Sub-models signal completion with tea.Quit; the session swallows those
// and switches screens instead.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.env.Store, "", m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		return m.startGame()
	}

	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	mode := m.menu.Selected().Mode
	logger := m.env.logger()

	seed, err := random.NewSeed()
	if err != nil {
		logger.Error("could not draw a seed", "error", err)
		return m.backToMenu()
	}

	game, err := NewGameModel(m.env, GameSetup{
		Mode:    mode,
		Options: mode.Options(m.env.Config.Options),
		Seed:    seed,
	})
	if err != nil {
		logger.Error("could not start game", "mode", mode.ID, "error", err)
		return m.backToMenu()
	}
	game.width, game.height = m.width, m.height
	game.help.Width = m.width

	logger.Info("game started", "mode", mode.ID, "seed", seed)
	m.game = game
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.env.Store, m.width, m.height)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return center(m.scores.View(), m.width, m.height)
	}
	return m.menu.View()
}

// RunSession runs the interactive menu in the local terminal.
func RunSession(env Env) error {
	p := tea.NewProgram(
		NewSessionModel(env, 0, 0),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
