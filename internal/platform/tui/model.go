package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/loop"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/replay"
	"github.com/vovakirdan/brickfall/internal/spectate"
	"github.com/vovakirdan/brickfall/internal/storage"
)

// Minimum terminal size that still shows a recognizable field.
const (
	minScreenW = 40
	minScreenH = 16
)

// chromeRows are the terminal rows taken by the HUD and the help line.
const chromeRows = 2

// Options wires a game session to its collaborators. Every field is optional.
type Options struct {
	Store  *storage.Store // replays are saved here when the session ends
	Player string         // stored with each replay and used as stream name

	Hub    *spectate.Hub // live frames are published here
	Stream string        // defaults to Player, then the game ID

	Logger *log.Logger
	Clock  loop.Clock

	// Watch plays this journal back instead of reading the keyboard.
	Watch *replay.Journal
}

// configured is implemented by games that expose their simulation config.
type configured interface {
	Config() config.BreakoutConfig
}

// GameModel runs one game in the terminal: frames drive the fixed-timestep
// driver, keys feed the held-input latch and the scene is drawn into cells.
type GameModel struct {
	game   registry.Game
	opts   Options
	config core.RuntimeConfig

	driver   *loop.Driver
	input    *HeldInput
	recorder *replay.Recorder
	player   *replay.Player
	screen   *core.Screen

	keys GameKeyMap
	help help.Model

	state      core.GameState
	paused     bool
	saved      bool
	lastSaved  int64
	quitting   bool
	backToMenu bool
	err        error
}

// NewGameModel resets the game and prepares a model for it. In watch mode
// the game must have been built with the journal's layout and configuration,
// see replay.NewGame.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) (GameModel, error) {
	if err := game.Reset(cfg); err != nil {
		return GameModel{}, err
	}

	if opts.Clock == nil {
		opts.Clock = loop.RealClock{}
	}
	if opts.Stream == "" {
		opts.Stream = opts.Player
	}
	if opts.Stream == "" {
		opts.Stream = game.ID()
	}

	m := GameModel{
		game:   game,
		opts:   opts,
		config: cfg,
		input:  &HeldInput{},
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-chromeRows, 0)),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		state:  game.State(),
	}
	m.driver = newDriver(game, opts)
	m.startRecording()
	return m, nil
}

func newDriver(game registry.Game, opts Options) *loop.Driver {
	cfg := config.DefaultBreakoutConfig()
	if c, ok := game.(configured); ok {
		cfg = c.Config()
	}
	return loop.New(opts.Clock, cfg.Timing.Tick,
		loop.WithMaxTicks(cfg.Loop.MaxTicksPerFrame),
		loop.WithBurstWarn(cfg.Loop.BurstWarnTicks),
		loop.WithLogger(opts.Logger),
	)
}

func (m *GameModel) startRecording() {
	m.saved = false
	m.lastSaved = 0
	if m.opts.Watch != nil {
		m.player = replay.NewPlayer(*m.opts.Watch)
		m.recorder = nil
		return
	}
	if src, ok := m.game.(replay.Source); ok {
		m.recorder = replay.NewRecorder(src)
	}
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return frameCmd(m.config.FPS)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 0))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.paused || m.state.Finished || m.player != nil {
			m.finish()
			m.backToMenu = true
			return m, tea.Quit
		}

	case core.ActionPause:
		m.paused = !m.paused
		m.input.Release()

	case core.ActionRestart:
		if m.state.Finished && m.player == nil {
			m.restart()
		}

	default:
		if !m.paused && m.player == nil {
			m.input.Press(action, m.opts.Clock.Now())
		}
	}

	return m, nil
}

// handleFrame runs the ticks owed since the previous frame.
func (m GameModel) handleFrame() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	intents := m.input.Intents(m.opts.Clock.Now())
	step := func() {
		if m.paused || m.state.Finished {
			return
		}

		in := intents
		if m.player != nil {
			var ok bool
			if in, ok = m.player.Next(); !ok {
				return
			}
		} else {
			// Launch reaches only the first tick of the batch.
			in.Launch = m.input.TakeLaunch()
			if m.recorder != nil {
				m.recorder.Record(in)
			}
		}

		m.state = m.game.Step(in).State
	}

	m.driver.Frame(step, m.publish)

	if m.state.Finished && !m.saved {
		m.saveReplay()
	}

	return m, frameCmd(m.config.FPS)
}

// publish sends the current scene to spectators.
func (m GameModel) publish() {
	if m.opts.Hub == nil {
		return
	}
	if err := m.opts.Hub.Publish(m.opts.Stream, m.scene()); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("cannot publish frame", "stream", m.opts.Stream, "err", err)
	}
}

func (m GameModel) scene() core.Scene {
	s := m.game.Scene()
	if m.paused {
		s.Status = "paused"
	}
	return s
}

// restart rebuilds the layout after it was cleared.
func (m *GameModel) restart() {
	if err := m.game.Reset(m.config); err != nil {
		m.err = err
		return
	}
	m.state = m.game.State()
	m.err = nil
	m.input.Release()
	m.startRecording()
}

// finish saves the replay and closes the spectator stream.
func (m *GameModel) finish() {
	if !m.saved {
		m.saveReplay()
	}
	if m.opts.Hub != nil {
		m.opts.Hub.End(m.opts.Stream)
	}
}

// saveReplay stores the session's journal. Sessions without a tick are skipped.
func (m *GameModel) saveReplay() {
	m.saved = true
	if m.recorder == nil || m.recorder.Ticks() == 0 || m.opts.Store == nil {
		return
	}

	j := m.recorder.Journal(m.game.Hash(), m.state.BlocksLeft)
	id, err := m.opts.Store.SaveReplay(m.opts.Player, j)
	if err != nil {
		m.err = err
		if m.opts.Logger != nil {
			m.opts.Logger.Error("cannot save replay", "err", err)
		}
		return
	}
	m.lastSaved = id
	if m.opts.Logger != nil {
		m.opts.Logger.Info("replay saved", "id", id, "layout", j.Layout, "ticks", j.Ticks)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var (
	hudStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// draw renders the scene, border and overlays into the screen buffer.
func (m GameModel) draw() {
	s := m.screen
	s.Clear()

	field := core.NewRect(0, 0, s.Width(), s.Height())
	s.DrawBox(field, core.ColorGray)

	scene := m.scene()
	inner := core.NewRect(1, 1, field.W-2, field.H-2)
	scene.Draw(NewScreenCanvas(s, inner, scene.Width, scene.Height))

	switch {
	case m.paused:
		m.drawBanner(inner, "PAUSED", "P to resume  B for menu")
	case m.player != nil && m.player.Done():
		m.drawBanner(inner, "END OF REPLAY", "B for menu  Q to quit")
	case m.state.Finished:
		sub := "R to restart  B for menu"
		if m.lastSaved > 0 {
			sub = fmt.Sprintf("replay #%d saved  %s", m.lastSaved, sub)
		}
		m.drawBanner(inner, "CLEARED", sub)
	}
}

func (m GameModel) drawBanner(area core.Rect, title, subtitle string) {
	w := max(len(subtitle), len(title)) + 4
	box := core.NewRect(area.X+(area.W-w)/2, area.Y+area.H/2-2, w, 5)
	m.screen.DrawRect(box, ' ', core.ColorDefault)
	m.screen.DrawBox(box, core.ColorBrightWhite)
	m.screen.DrawText(box.X+(w-len(title))/2, box.Y+1, title)
	m.screen.DrawText(box.X+(w-len(subtitle))/2, box.Y+3, subtitle)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.config.ScreenW < minScreenW || m.config.ScreenH < minScreenH {
		return fmt.Sprintf("Terminal too small: need at least %dx%d, have %dx%d.\nResize or press q to quit.",
			minScreenW, minScreenH, m.config.ScreenW, m.config.ScreenH)
	}

	m.draw()

	var b strings.Builder
	b.WriteString(hudStyle.Render(m.hud()))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m GameModel) hud() string {
	label := m.game.Title()
	if m.player != nil {
		label += " (replay)"
	}
	if m.opts.Hub != nil {
		label += " [live: " + m.opts.Stream + "]"
	}
	status := m.scene().Status
	if m.err != nil {
		status = "error: " + m.err.Error()
	}
	return fmt.Sprintf(" %s  %s  tick %d", label, status, m.state.Tick)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the last session error, if any.
func (m GameModel) Err() error {
	return m.err
}

// LastReplay returns the ID of the replay saved by this session, or 0.
func (m GameModel) LastReplay() int64 {
	return m.lastSaved
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model, err := NewGameModel(game, cfg, opts)
	if err != nil {
		return err
	}
	_, err = RunModel(model)
	return err
}

// RunModel runs a prepared game model until the user leaves it. quit is
// false when the user asked to go back to the menu.
func RunModel(model GameModel) (quit bool, err error) {
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return true, err
	}
	gm, ok := final.(GameModel)
	if !ok {
		return true, nil
	}
	if gm.Err() != nil {
		return gm.IsQuitting(), errors.Join(errors.New("tui: session ended with an error"), gm.Err())
	}
	return !gm.BackToMenu(), nil
}

// Watch plays a recorded journal back in the terminal.
func Watch(j replay.Journal, cfg core.RuntimeConfig, opts Options) error {
	game, err := replay.NewGame(j)
	if err != nil {
		return err
	}
	opts.Watch = &j
	return Run(game, cfg, opts)
}
