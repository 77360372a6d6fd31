package replay

import (
	"fmt"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/breakout"
)

// NewGame builds a fresh game with the layout and configuration j was
// recorded under.
func NewGame(j Journal) (*breakout.Game, error) {
	g, err := breakout.NewWithConfig(j.Layout, j.Config)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return g, nil
}

// Simulate re-runs a journal headless and returns the game in its final state.
func Simulate(j Journal) (*breakout.Game, error) {
	g, err := NewGame(j)
	if err != nil {
		return nil, err
	}
	for in := range j.Intents() {
		g.Step(in)
	}
	return g, nil
}

// Verify re-simulates a journal and checks it reproduces the recorded state.
func Verify(j Journal) error {
	g, err := Simulate(j)
	if err != nil {
		return err
	}
	if h := g.Hash(); h != j.FinalHash {
		return fmt.Errorf("%w: hash %016x, recorded %016x", ErrMismatch, h, j.FinalHash)
	}
	if left := g.State().BlocksLeft; left != j.BlocksLeft {
		return fmt.Errorf("%w: %d blocks left, recorded %d", ErrMismatch, left, j.BlocksLeft)
	}
	return nil
}

// Player feeds a journal's intents back one tick at a time.
type Player struct {
	runs []Run
	run  int
	used uint32
	tick uint64
}

// NewPlayer creates a player positioned at the first tick of j.
func NewPlayer(j Journal) *Player {
	return &Player{runs: j.Runs}
}

// Next returns the intents for the next tick, or false once the journal is
// exhausted.
func (p *Player) Next() (core.Intents, bool) {
	for p.run < len(p.runs) && p.used >= p.runs[p.run].Count {
		p.run++
		p.used = 0
	}
	if p.run >= len(p.runs) {
		return core.Intents{}, false
	}
	p.used++
	p.tick++
	return core.IntentsFromBits(p.runs[p.run].Bits), true
}

// Done reports whether every recorded tick has been played.
func (p *Player) Done() bool {
	for p.run < len(p.runs) && p.used >= p.runs[p.run].Count {
		p.run++
		p.used = 0
	}
	return p.run >= len(p.runs)
}

// Tick returns the number of ticks played so far.
func (p *Player) Tick() uint64 {
	return p.tick
}
