package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default configuration: a 480x320 world,
// a 64x16 paddle, a radius-8 ball and six alternating rows of 8 and 7 blocks,
// simulated at one tick per 20ms.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		World: WorldConfig{
			Width:  480,
			Height: 320,
		},
		Paddle: PaddleConfig{
			Width:  64,
			Height: 16,
			Speed:  2.0,
		},
		Ball: BallConfig{
			Radius:               8,
			LaunchSpeed:          2.0,
			BounceSpeedIncrement: 0.5,
			RestThreshold:        1.0,
			MaxSpeed:             0,
		},
		Blocks: BlocksConfig{
			Width:   32,
			Height:  16,
			GapX:    4,
			GapY:    4,
			Rows:    6,
			Columns: []int{8, 7},
		},
		Timing: TimingConfig{
			Tick: 20 * time.Millisecond,
		},
		Loop: LoopConfig{
			MaxTicksPerFrame: 0,
			BurstWarnTicks:   25,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
