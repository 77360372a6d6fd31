// Package config provides YAML-based configuration loading and validation
// for the breakout simulation.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// BreakoutConfig contains every fixed constant of the simulation.
// Values are supplied at initialization and never derived at runtime.
type BreakoutConfig struct {
	World  WorldConfig  `yaml:"world"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
	Blocks BlocksConfig `yaml:"blocks"`
	Timing TimingConfig `yaml:"timing"`
	Loop   LoopConfig   `yaml:"loop"`
}

// WorldConfig defines the playfield extent in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the paddle size and horizontal speed (units/tick).
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// BallConfig defines the ball and its speed policy.
type BallConfig struct {
	Radius               float64 `yaml:"radius"`
	LaunchSpeed          float64 `yaml:"launch_speed"`           // units/tick on launch
	BounceSpeedIncrement float64 `yaml:"bounce_speed_increment"` // added on every flagged bounce
	RestThreshold        float64 `yaml:"rest_threshold"`         // height above the paddle still counted as resting
	MaxSpeed             float64 `yaml:"max_speed"`              // 0 = unbounded
}

// BlocksConfig defines the block field.
// When Pattern is empty the field is the alternating layout: Rows rows,
// row i holding Columns[i%len(Columns)] centered blocks.
type BlocksConfig struct {
	Width   float64  `yaml:"width"`
	Height  float64  `yaml:"height"`
	GapX    float64  `yaml:"gap_x"`
	GapY    float64  `yaml:"gap_y"`
	Rows    int      `yaml:"rows"`
	Columns []int    `yaml:"columns"`
	Pattern []string `yaml:"pattern,omitempty"`
}

// TimingConfig defines the fixed simulation tick.
type TimingConfig struct {
	Tick time.Duration `yaml:"tick"`
}

// LoopConfig tunes the fixed-timestep driver.
type LoopConfig struct {
	MaxTicksPerFrame int `yaml:"max_ticks_per_frame"` // 0 = unbounded catch-up
	BurstWarnTicks   int `yaml:"burst_warn_ticks"`    // log when one frame runs more ticks than this
}

// TicksPerSecond returns the simulation rate implied by the tick duration.
func (c BreakoutConfig) TicksPerSecond() float64 {
	if c.Timing.Tick <= 0 {
		return 0
	}
	return float64(time.Second) / float64(c.Timing.Tick)
}

// Validate rejects configurations the simulation cannot run with.
// All violations are reported together.
func (c BreakoutConfig) Validate() error {
	var errs []error
	// Written as !(v > 0) so NaN fails too.
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("config: %s must be positive and finite, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("config: %s must not be negative or infinite, got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	nonNegative("paddle.speed", c.Paddle.Speed)
	positive("ball.radius", c.Ball.Radius)
	positive("ball.launch_speed", c.Ball.LaunchSpeed)
	nonNegative("ball.bounce_speed_increment", c.Ball.BounceSpeedIncrement)
	nonNegative("ball.rest_threshold", c.Ball.RestThreshold)
	nonNegative("ball.max_speed", c.Ball.MaxSpeed)
	positive("blocks.width", c.Blocks.Width)
	positive("blocks.height", c.Blocks.Height)
	nonNegative("blocks.gap_x", c.Blocks.GapX)
	nonNegative("blocks.gap_y", c.Blocks.GapY)

	if c.Paddle.Width > c.World.Width {
		errs = append(errs, fmt.Errorf("config: paddle.width %v exceeds world.width %v", c.Paddle.Width, c.World.Width))
	}
	if 2*c.Ball.Radius > c.World.Width || 2*c.Ball.Radius > c.World.Height {
		errs = append(errs, fmt.Errorf("config: ball diameter %v does not fit the world", 2*c.Ball.Radius))
	}
	if c.Ball.MaxSpeed > 0 && c.Ball.MaxSpeed < c.Ball.LaunchSpeed {
		errs = append(errs, fmt.Errorf("config: ball.max_speed %v is below ball.launch_speed %v", c.Ball.MaxSpeed, c.Ball.LaunchSpeed))
	}

	if len(c.Blocks.Pattern) == 0 {
		if c.Blocks.Rows < 0 {
			errs = append(errs, fmt.Errorf("config: blocks.rows must not be negative, got %d", c.Blocks.Rows))
		}
		if c.Blocks.Rows > 0 && len(c.Blocks.Columns) == 0 {
			errs = append(errs, errors.New("config: blocks.columns must list at least one row width"))
		}
		for i, n := range c.Blocks.Columns {
			if n < 0 {
				errs = append(errs, fmt.Errorf("config: blocks.columns[%d] must not be negative, got %d", i, n))
			}
		}
	}

	if c.Timing.Tick <= 0 {
		errs = append(errs, fmt.Errorf("config: timing.tick must be positive, got %v", c.Timing.Tick))
	}
	if c.Loop.MaxTicksPerFrame < 0 {
		errs = append(errs, fmt.Errorf("config: loop.max_ticks_per_frame must not be negative, got %d", c.Loop.MaxTicksPerFrame))
	}
	if c.Loop.BurstWarnTicks < 0 {
		errs = append(errs, fmt.Errorf("config: loop.burst_warn_ticks must not be negative, got %d", c.Loop.BurstWarnTicks))
	}

	return errors.Join(errs...)
}
