package replay

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
)

// Source is a game whose session can be journaled.
type Source interface {
	LayoutID() string
	Config() config.BreakoutConfig
}

// Recorder accumulates the intents of every tick of one session.
type Recorder struct {
	layout string
	cfg    config.BreakoutConfig
	runs   []Run
	ticks  uint64
}

// NewRecorder starts recording a session of the given game.
func NewRecorder(src Source) *Recorder {
	return &Recorder{layout: src.LayoutID(), cfg: src.Config()}
}

// Record appends the intents fed to one tick.
func (r *Recorder) Record(in core.Intents) {
	r.ticks++
	b := in.Bits()
	if n := len(r.runs); n > 0 && r.runs[n-1].Bits == b && r.runs[n-1].Count < math.MaxUint32 {
		r.runs[n-1].Count++
		return
	}
	r.runs = append(r.runs, Run{Bits: b, Count: 1})
}

// Ticks returns the number of ticks recorded so far.
func (r *Recorder) Ticks() uint64 {
	return r.ticks
}

// Journal closes the recording with the final state of the game.
func (r *Recorder) Journal(finalHash uint64, blocksLeft int) Journal {
	return Journal{
		Version:    Version,
		Layout:     r.layout,
		Config:     r.cfg,
		Ticks:      r.ticks,
		BlocksLeft: blocksLeft,
		FinalHash:  finalHash,
		Runs:       append([]Run(nil), r.runs...),
	}
}
