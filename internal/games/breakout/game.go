package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/registry"
)

// Game phases reported through core.GameState.
const (
	PhaseServe   = "serve"   // Ball resting on the paddle, waiting for launch
	PhasePlaying = "playing" // Ball in flight
	PhaseCleared = "cleared" // Every block destroyed
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path used by games built with New.
func SetConfigPath(path string) {
	configPath = path
}

// Ball is the moving circle. Pos is the lower-left corner of its bounding
// square; Angle is in radians counter-clockwise from +x and Speed is in
// world units per tick.
type Ball struct {
	core.Circle
	Angle float64
	Speed float64
}

// Resting reports whether the ball sits on a paddle whose top edge is at top.
func (b Ball) Resting(top, threshold float64) bool {
	return b.Speed == 0 && b.Pos.Y() <= top+threshold
}

// Game is the ball/paddle/block simulation. It owns all simulation state;
// Scene and Snapshot only read it.
type Game struct {
	layout Layout

	cfg    config.BreakoutConfig
	pinned bool // cfg was supplied by the caller and is never reloaded

	runtime core.RuntimeConfig

	paddle core.Box
	ball   Ball
	blocks []Block
	total  int
	tick   uint64
}

// New creates a classic-layout game that loads its configuration on Reset.
func New() *Game {
	return NewLayout("classic")
}

// NewLayout creates a game for a built-in layout that loads its
// configuration on Reset. Unknown IDs fall back to the classic layout.
func NewLayout(id string) *Game {
	l, ok := LayoutByID(id)
	if !ok {
		l, _ = LayoutByID("classic")
	}
	return &Game{layout: l}
}

// NewWithConfig creates and resets a game with a fixed configuration.
// Invalid configurations and layouts that do not fit are rejected here,
// before any tick runs.
func NewWithConfig(layoutID string, cfg config.BreakoutConfig) (*Game, error) {
	l, ok := LayoutByID(layoutID)
	if !ok {
		return nil, fmt.Errorf("breakout: unknown layout %q", layoutID)
	}
	g := &Game{layout: l, cfg: cfg, pinned: true}
	if err := g.Reset(core.DefaultConfig()); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the registry identifier of the game's layout.
func (g *Game) ID() string {
	if g.layout.ID == "classic" {
		return "breakout"
	}
	return "breakout_" + g.layout.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.layout.ID == "classic" {
		return "Breakout"
	}
	return "Breakout (" + g.layout.Name + ")"
}

// LayoutID returns the ID of the block layout being played.
func (g *Game) LayoutID() string {
	return g.layout.ID
}

// Config returns the configuration of the current session.
func (g *Game) Config() config.BreakoutConfig {
	return g.cfg
}

// Reset builds a fresh session: paddle centered, ball resting on it and the
// full block field.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime

	if !g.pinned {
		cfg, err := config.LoadBreakout(configPath)
		if err != nil {
			return err
		}
		g.cfg = cfg
	} else if err := g.cfg.Validate(); err != nil {
		return err
	}

	blocks, err := g.layout.Build(g.cfg)
	if err != nil {
		return err
	}

	g.blocks = blocks
	g.total = len(blocks)
	g.tick = 0
	g.paddle = core.NewBox(
		(g.cfg.World.Width-g.cfg.Paddle.Width)/2, 0,
		g.cfg.Paddle.Width, g.cfg.Paddle.Height,
	)
	g.ball = Ball{Circle: core.Circle{Radius: g.cfg.Ball.Radius}}
	g.restBall()
	return nil
}

// restBall stops the ball and places it on the paddle's horizontal center.
// The travel angle is kept.
func (g *Game) restBall() {
	r := g.ball.Radius
	g.ball.Speed = 0
	g.ball.Pos = core.V(g.paddle.Left()+g.paddle.W/2-r, g.paddle.Top())
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.Intents) core.StepResult {
	if len(g.blocks) == 0 {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	moved := g.movePaddle(in.Direction())

	if g.ball.Resting(g.paddle.Top(), g.cfg.Ball.RestThreshold) {
		g.ball.Pos = g.ball.Pos.Add(core.V(moved, 0))
		if in.Launch {
			g.launch(moved)
		}
		return core.StepResult{State: g.State()}
	}

	return g.advanceBall()
}

// movePaddle applies the horizontal intent and returns the distance the
// paddle actually travelled after clamping to the world.
func (g *Game) movePaddle(dir int) float64 {
	before := g.paddle.Left()
	x := core.Clamp(before+float64(dir)*g.cfg.Paddle.Speed, 0, g.cfg.World.Width-g.paddle.W)
	g.paddle.Pos = core.V(x, g.paddle.Bottom())
	return x - before
}

func (g *Game) launch(moved float64) {
	switch {
	case moved > 0:
		g.ball.Angle = LaunchRight
	case moved < 0:
		g.ball.Angle = LaunchLeft
	default:
		g.ball.Angle = LaunchStraight
	}
	g.ball.Speed = g.cfg.Ball.LaunchSpeed
}

func (g *Game) heading() core.Vec {
	return core.V(math.Cos(g.ball.Angle), math.Sin(g.ball.Angle)).Mul(g.ball.Speed)
}

// advanceBall moves a ball in flight: predict, collide, resolve.
func (g *Game) advanceBall() core.StepResult {
	r := g.ball.Radius
	predicted := g.ball.Pos.Add(g.heading())
	center := predicted.Add(core.V(r, r))

	before := len(g.blocks)
	var sides Sides
	g.blocks, sides = CollideBlocks(center, r, g.blocks)
	result := core.StepResult{Destroyed: before - len(g.blocks)}

	if fellOut(predicted) {
		g.restBall()
		result.BallLost = true
		result.State = g.State()
		return result
	}
	sides = sides.Or(wallSides(predicted, r, g.cfg.World.Width, g.cfg.World.Height))

	// A paddle hit only remaps the angle; the ball still moves to predicted.
	if _, hit := Probe(center, r, g.paddle); hit {
		g.ball.Angle = PaddleRedirect(g.ball.Angle)
	}

	switch {
	case sides.Any():
		g.ball.Angle = Resolve(g.ball.Angle, sides)
		g.ball.Speed += g.cfg.Ball.BounceSpeedIncrement
		if limit := g.cfg.Ball.MaxSpeed; limit > 0 && g.ball.Speed > limit {
			g.ball.Speed = limit
		}
		g.ball.Pos = g.ball.Pos.Add(g.heading())
	default:
		g.ball.Pos = predicted
	}
	g.ball.Angle = NormalizeAngle(g.ball.Angle)

	result.State = g.State()
	return result
}

// Ball returns a copy of the ball.
func (g *Game) Ball() Ball {
	return g.ball
}

// Paddle returns the paddle rectangle.
func (g *Game) Paddle() core.Box {
	return g.paddle
}

// Blocks returns a copy of the live block collection.
func (g *Game) Blocks() []Block {
	return append([]Block(nil), g.blocks...)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := PhasePlaying
	switch {
	case len(g.blocks) == 0:
		phase = PhaseCleared
	case g.ball.Speed == 0:
		phase = PhaseServe
	}
	return core.GameState{
		Phase:      phase,
		Tick:       g.tick,
		BlocksLeft: len(g.blocks),
		Finished:   phase == PhaseCleared,
	}
}

// Scene returns everything needed to draw the current frame.
func (g *Game) Scene() core.Scene {
	blocks := make([]core.Shape, len(g.blocks))
	for i, b := range g.blocks {
		blocks[i] = core.Shape{Kind: core.ShapeRect, X: b.Left(), Y: b.Bottom(), W: b.W, H: b.H, Color: b.Color()}
	}
	d := 2 * g.ball.Radius
	return core.Scene{
		Width:  g.cfg.World.Width,
		Height: g.cfg.World.Height,
		Tick:   g.tick,
		Status: fmt.Sprintf("%s  blocks %d/%d", g.State().Phase, len(g.blocks), g.total),
		Ball: core.Shape{
			Kind: core.ShapeCircle, X: g.ball.Pos.X(), Y: g.ball.Pos.Y(), W: d, H: d,
			Color: core.ColorBrightWhite,
		},
		Paddle: core.Shape{
			Kind: core.ShapePaddle, X: g.paddle.Left(), Y: g.paddle.Bottom(), W: g.paddle.W, H: g.paddle.H,
			Color: core.ColorBrightBlue,
		},
		Blocks: blocks,
	}
}

// Hash fingerprints the simulation state.
func (g *Game) Hash() uint64 {
	snap := g.Snapshot()
	return snap.Hash()
}

// Register the layouts with the registry
func init() {
	for _, l := range Layouts() {
		registry.Register(NewLayout(l.ID).ID(), func() registry.Game {
			return NewLayout(l.ID)
		})
	}
}
