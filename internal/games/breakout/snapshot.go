package breakout

import "math"

// Snapshot contains the complete simulation state for replay verification.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick   uint64
	Layout string

	PaddleX float64
	PaddleY float64

	BallX     float64
	BallY     float64
	BallAngle float64
	BallSpeed float64

	// Live blocks, flattened as X, Y, W, H per block
	BlockCount int
	BlockData  []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	blockData := make([]float64, 0, len(g.blocks)*4)
	for _, b := range g.blocks {
		blockData = append(blockData, b.Left(), b.Bottom(), b.W, b.H)
	}

	return Snapshot{
		Tick:       g.tick,
		Layout:     g.layout.ID,
		PaddleX:    g.paddle.Left(),
		PaddleY:    g.paddle.Bottom(),
		BallX:      g.ball.Pos.X(),
		BallY:      g.ball.Pos.Y(),
		BallAngle:  g.ball.Angle,
		BallSpeed:  g.ball.Speed,
		BlockCount: len(g.blocks),
		BlockData:  blockData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floats contribute their exact bit patterns.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for i := 0; i < len(snap.Layout); i++ {
		h = h*31 + uint64(snap.Layout[i])
	}
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleY)
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallAngle)
	h = h*31 + math.Float64bits(snap.BallSpeed)
	h = h*31 + uint64(snap.BlockCount) //#nosec G115 -- hash computation

	for _, v := range snap.BlockData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}
