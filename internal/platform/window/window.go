// Package window runs a game in a desktop window using ebiten.
package window

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/loop"
	"github.com/vovakirdan/brickfall/internal/replay"
	"github.com/vovakirdan/brickfall/internal/spectate"
	"github.com/vovakirdan/brickfall/internal/storage"
)

// Scale is the number of window pixels per world unit.
const Scale = 2

// Game is the simulation the window drives.
type Game interface {
	replay.Source
	ID() string
	Title() string
	Reset(core.RuntimeConfig) error
	Step(core.Intents) core.StepResult
	Scene() core.Scene
	State() core.GameState
	Hash() uint64
}

// Options wires a window session to its collaborators. Every field is optional.
type Options struct {
	Store  *storage.Store
	Player string
	Hub    *spectate.Hub
	Stream string
	Logger *log.Logger
	Clock  loop.Clock
}

// Session owns the timing, recording and publishing of one windowed game.
// It is independent of ebiten so it can run headless.
type Session struct {
	game     Game
	opts     Options
	cfg      config.BreakoutConfig
	driver   *loop.Driver
	recorder *replay.Recorder
	state    core.GameState
	launch   bool
	paused   bool
	saved    int64
	err      error
}

// NewSession resets game and prepares its driver.
func NewSession(game Game, opts Options) (*Session, error) {
	if err := game.Reset(core.DefaultConfig()); err != nil {
		return nil, err
	}
	if opts.Stream == "" {
		opts.Stream = opts.Player
	}
	if opts.Stream == "" {
		opts.Stream = game.ID()
	}

	cfg := game.Config()
	s := &Session{
		game:     game,
		opts:     opts,
		cfg:      cfg,
		recorder: replay.NewRecorder(game),
		state:    game.State(),
	}
	s.driver = loop.New(opts.Clock, cfg.Timing.Tick,
		loop.WithMaxTicks(cfg.Loop.MaxTicksPerFrame),
		loop.WithBurstWarn(cfg.Loop.BurstWarnTicks),
		loop.WithLogger(opts.Logger),
	)
	return s, nil
}

// Launch latches a launch request until a tick consumes it.
func (s *Session) Launch() {
	s.launch = true
}

// TogglePause pauses or resumes the simulation.
func (s *Session) TogglePause() {
	s.paused = !s.paused
	s.launch = false
}

// Frame runs the ticks owed since the previous frame with the held
// directions and publishes the resulting scene.
func (s *Session) Frame(left, right bool) int {
	return s.driver.Frame(func() {
		if s.paused || s.state.Finished {
			return
		}
		in := core.Intents{Left: left, Right: right, Launch: s.launch}
		s.launch = false
		s.recorder.Record(in)
		s.state = s.game.Step(in).State
	}, s.publish)
}

func (s *Session) publish() {
	if s.opts.Hub == nil {
		return
	}
	if err := s.opts.Hub.Publish(s.opts.Stream, s.Scene()); err != nil && s.opts.Logger != nil {
		s.opts.Logger.Warn("cannot publish frame", "stream", s.opts.Stream, "err", err)
	}
}

// Restart rebuilds the layout and starts a new recording.
func (s *Session) Restart() error {
	if err := s.Close(); err != nil {
		return err
	}
	if err := s.game.Reset(core.DefaultConfig()); err != nil {
		return err
	}
	s.recorder = replay.NewRecorder(s.game)
	s.state = s.game.State()
	s.saved = 0
	return nil
}

// Scene returns the scene to draw, with the pause status applied.
func (s *Session) Scene() core.Scene {
	scene := s.game.Scene()
	if s.paused {
		scene.Status = "paused"
	}
	return scene
}

// State returns the game state after the last tick.
func (s *Session) State() core.GameState {
	return s.state
}

// SavedReplay returns the ID of the last replay saved, or 0.
func (s *Session) SavedReplay() int64 {
	return s.saved
}

// Close saves the session's replay, if it has any tick, and ends the stream.
func (s *Session) Close() error {
	if s.opts.Hub != nil {
		s.opts.Hub.End(s.opts.Stream)
	}
	if s.opts.Store == nil || s.recorder.Ticks() == 0 {
		return nil
	}

	j := s.recorder.Journal(s.game.Hash(), s.state.BlocksLeft)
	s.recorder = replay.NewRecorder(s.game)
	id, err := s.opts.Store.SaveReplay(s.opts.Player, j)
	if err != nil {
		return fmt.Errorf("window: save replay: %w", err)
	}
	s.saved = id
	if s.opts.Logger != nil {
		s.opts.Logger.Info("replay saved", "id", id, "layout", j.Layout, "ticks", j.Ticks)
	}
	return nil
}

// ebitenGame adapts a Session to ebiten's update/draw cycle.
type ebitenGame struct {
	session *Session
	proj    Projection
	w, h    int
}

func (g *ebitenGame) Update() error {
	if ebiten.IsWindowBeingClosed() ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.session.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.Launch()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.session.State().Finished {
		if err := g.session.Restart(); err != nil {
			return err
		}
	}

	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	g.session.Frame(left, right)
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	screen.Fill(core.ColorDefault.RGBA())

	scene := g.session.Scene()
	scene.Draw(NewImageCanvas(screen, g.proj))

	status := fmt.Sprintf("%s  tick %d", scene.Status, scene.Tick)
	if g.session.State().Finished {
		status += "  R to restart"
	}
	ebitenutil.DebugPrintAt(screen, status, 4, 4)
}

func (g *ebitenGame) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

// Run opens a window for game and blocks until it is closed.
func Run(game Game, opts Options) error {
	session, err := NewSession(game, opts)
	if err != nil {
		return err
	}

	world := session.cfg.World
	g := &ebitenGame{
		session: session,
		proj:    Projection{Scale: Scale, WorldH: world.Height},
		w:       int(world.Width * Scale),
		h:       int(world.Height * Scale),
	}

	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowClosingHandled(true)

	runErr := ebiten.RunGame(g)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}
	return errors.Join(runErr, session.Close())
}
