package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/faststack/internal/config"
	"github.com/vovakirdan/faststack/internal/control"
	"github.com/vovakirdan/faststack/internal/core"
	"github.com/vovakirdan/faststack/internal/engine"
	"github.com/vovakirdan/faststack/internal/random"
	"github.com/vovakirdan/faststack/internal/registry"
	"github.com/vovakirdan/faststack/internal/replay"
	"github.com/vovakirdan/faststack/internal/storage"
)

// Env carries the collaborators shared by every screen of a session.
type Env struct {
	Config config.Config
	Store  *storage.Store // nil when the database could not be opened
	Logger *log.Logger
	Keys   *KeyMapper

	// NoReplay disables writing replay files for finished games.
	NoReplay bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (env Env) now() time.Time {
	if env.Now != nil {
		return env.Now()
	}
	return time.Now()
}

func (env Env) logger() *log.Logger {
	if env.Logger != nil {
		return env.Logger
	}
	return log.Default()
}

// GameSetup selects what a GameModel plays.
type GameSetup struct {
	Mode    registry.Mode
	Options engine.Options
	Seed    uint32

	// FixedSeed makes restarts replay the same piece sequence.
	FixedSeed bool

	// Replay, when set, is played back instead of reading the keyboard.
	Replay *replay.Replay
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// GameModel is the Bubble Tea model for one game of faststack.
type GameModel struct {
	env   Env
	setup GameSetup
	seed  uint32

	engine   *engine.Engine
	ctrl     *control.Controller
	held     *keyHolder
	recorder *replay.Recorder // nil when not recording
	player   *replay.Player   // nil unless playing back
	frames   int              // Playback length in ticks

	screen *core.Screen
	help   help.Model
	width  int
	height int

	status     string
	saved      bool
	standalone bool // Quit ends the program instead of returning to the menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model with a game ready to start.
func NewGameModel(env Env, setup GameSetup) (GameModel, error) {
	if setup.Replay != nil {
		setup.Options = setup.Replay.Options
		setup.Seed = setup.Replay.Seed
		setup.FixedSeed = true
	}

	w, h := boardSize(setup.Options)
	m := GameModel{
		env:    env,
		setup:  setup,
		held:   newKeyHolder(setup.Options.MsPerTick),
		screen: core.NewScreen(w, h),
		help:   help.New(),
	}
	if err := m.start(setup.Seed); err != nil {
		return GameModel{}, err
	}
	return m, nil
}

// start replaces the current game with a fresh one built from seed.
func (m *GameModel) start(seed uint32) error {
	e, err := engine.New(m.setup.Options, seed)
	if err != nil {
		return fmt.Errorf("tui: cannot start game: %w", err)
	}

	m.seed = seed
	m.engine = e
	m.ctrl = control.New(m.setup.Options)
	m.held.Reset()
	m.saved = false
	m.status = ""
	m.recorder = nil
	m.player = nil

	switch {
	case m.setup.Replay != nil:
		m.player = replay.NewPlayer(m.setup.Replay)
		m.frames = math.MaxInt
		if m.setup.Replay.Result != nil {
			m.frames = m.setup.Replay.Result.Frames
		}
	case !m.env.NoReplay:
		m.recorder = replay.NewRecorder(m.setup.Mode.ID, seed, m.setup.Options, m.env.now())
	}
	return nil
}

// restart begins a new game after the restart key.
func (m *GameModel) restart() {
	seed, err := random.Resolve(m.seed, m.setup.FixedSeed, nil)
	if err != nil {
		m.env.logger().Warn("could not draw a new seed, reusing the last one", "error", err)
		seed = m.seed
	}
	if err := m.start(seed); err != nil {
		m.env.logger().Error("restart failed", "error", err)
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return m.nextTick()
}

func (m GameModel) nextTick() tea.Cmd {
	return tickCmd(m.setup.Options.MsPerTick, m.setup.Options.TicksPerDraw)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey feeds keyboard input to the key holder.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	k, ok := m.env.Keys.MapKey(msg)
	if !ok {
		return m, nil
	}

	if m.player != nil {
		// Playback ignores everything but quit.
		if k == control.KeyQuit {
			return m.leave()
		}
		return m, nil
	}

	m.held.Press(k)
	return m, nil
}

// handleTick runs TicksPerDraw engine ticks and reacts to the outcome.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	for range max(m.setup.Options.TicksPerDraw, 1) {
		if !m.step() {
			break
		}
	}

	switch m.engine.State() {
	case engine.StateQuit:
		return m.leave()
	case engine.StateRestart:
		m.restart()
	}

	if m.engine.Completed() && !m.saved {
		m.saveResult()
	}

	return m, m.nextTick()
}

// step runs one engine tick. It returns false when the driver has to act
// before the next tick.
func (m *GameModel) step() bool {
	var keys control.Keys
	if m.player != nil {
		if m.player.Tick() >= m.frames || !m.engine.Running() {
			return false
		}
		keys = m.player.Next()
	} else {
		keys = m.held.Keys()
		m.held.Advance()
		if m.recorder != nil && m.engine.Running() {
			m.recorder.Record(keys)
		}
	}

	replay.Step(m.engine, m.ctrl, keys)

	switch m.engine.State() {
	case engine.StateQuit, engine.StateRestart:
		return false
	}
	return !m.engine.Completed()
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	if m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	m.backToMenu = true
	return m, nil
}

// saveResult writes the replay and hiscore of a completed game.
// Failures are logged and the game carries on.
func (m *GameModel) saveResult() {
	m.saved = true
	if m.player != nil {
		return
	}

	e := m.engine
	logger := m.env.logger()

	var replayPath string
	if m.recorder != nil {
		path, err := replay.Save(m.env.Config.Paths.Replays, m.recorder.Finish(e))
		if err != nil {
			logger.Warn("could not save replay", "error", err)
		} else {
			replayPath = path
			logger.Debug("replay saved", "path", path)
		}
	}

	store := m.env.Store
	if store == nil {
		return
	}

	mode := m.setup.Mode.ID
	best, hasBest, err := store.BestTime(mode)
	if err != nil {
		logger.Warn("could not read best time", "mode", mode, "error", err)
	}

	stats := e.Stats()
	ms := e.ElapsedMs()
	_, err = store.SaveScore(storage.Score{
		Mode:    mode,
		Goal:    m.setup.Options.Goal,
		Ticks:   e.TotalTicks(),
		TimeMs:  ms,
		Blocks:  stats.BlocksPlaced,
		Keys:    stats.KeysPressed,
		Finesse: stats.Finesse,
		Lines:   stats.LinesCleared,
		Seed:    m.seed,
		Replay:  replayPath,
	})
	if err != nil {
		logger.Warn("could not save score", "mode", mode, "error", err)
		return
	}

	switch {
	case !hasBest || ms < best:
		m.status = "New best!"
	default:
		m.status = "Best " + FormatTime(best)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	DrawGame(m.screen, m.engine)

	title := m.setup.Mode.Title
	if m.player != nil {
		title = "Replay: " + title
	}
	title = fmt.Sprintf("%s  (seed %d)", title, m.seed)

	status := m.status
	if m.player != nil && !m.engine.Running() {
		status = "End of replay"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		RenderScreen(m.screen),
		statusStyle.Render(status),
		helpStyle.Render(m.help.View(m.env.Keys.Help())),
	)
	return center(content, m.width, m.height)
}

// Engine returns the engine of the current game.
func (m GameModel) Engine() *engine.Engine {
	return m.engine
}

// Status returns the message shown under the board.
func (m GameModel) Status() string {
	return m.status
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user left the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits.
func Run(env Env, setup GameSetup) error {
	model, err := NewGameModel(env, setup)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
