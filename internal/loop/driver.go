// Package loop implements the fixed-timestep driver that decouples simulation
// ticks from render frames.
package loop

import (
	"time"

	"github.com/charmbracelet/log"
)

// Driver accumulates wall-clock time and converts it into a whole number of
// fixed-duration simulation ticks per frame.
//
// By default catch-up is unbounded: a long stall runs every owed tick in one
// burst before the next render. WithMaxTicks opts into clamping.
type Driver struct {
	clock Clock
	tick  time.Duration

	acc     time.Duration
	last    time.Time
	started bool

	maxTicks  int
	burstWarn int
	logger    *log.Logger

	ticks   uint64
	frames  uint64
	dropped time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithMaxTicks caps the ticks run by one frame. Time owed beyond the cap is
// dropped. Zero or negative keeps catch-up unbounded.
func WithMaxTicks(n int) Option {
	return func(d *Driver) {
		d.maxTicks = n
	}
}

// WithBurstWarn logs a warning whenever one frame runs more than n ticks.
func WithBurstWarn(n int) Option {
	return func(d *Driver) {
		d.burstWarn = n
	}
}

// WithLogger sets the logger for burst and clamp reports.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// New creates a driver that runs one step per tick of wall time.
// It panics if tick is not positive.
func New(clock Clock, tick time.Duration, opts ...Option) *Driver {
	if tick <= 0 {
		panic("loop: tick duration must be positive")
	}
	if clock == nil {
		clock = RealClock{}
	}
	d := &Driver{clock: clock, tick: tick}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tick returns the fixed tick duration.
func (d *Driver) Tick() time.Duration {
	return d.tick
}

// Advance adds elapsed to the accumulator and calls step once for every whole
// tick it now holds. The remainder carries over to the next call.
// It returns the number of steps run.
func (d *Driver) Advance(elapsed time.Duration, step func()) int {
	if elapsed > 0 {
		d.acc += elapsed
	}

	owed := int(d.acc / d.tick)
	if d.maxTicks > 0 && owed > d.maxTicks {
		drop := time.Duration(owed-d.maxTicks) * d.tick
		d.acc -= drop
		d.dropped += drop
		if d.logger != nil {
			d.logger.Warn("catch-up clamped", "owed", owed, "ran", d.maxTicks, "dropped", drop)
		}
	}

	n := 0
	for d.acc >= d.tick {
		d.acc -= d.tick
		step()
		n++
	}
	d.ticks += uint64(n)

	if d.burstWarn > 0 && n > d.burstWarn && d.logger != nil {
		d.logger.Warn("simulation burst", "ticks", n, "elapsed", elapsed)
	}
	return n
}

// Frame measures the time since the previous frame, runs the owed ticks and
// then renders once. The first frame only starts the clock.
func (d *Driver) Frame(step, render func()) int {
	now := d.clock.Now()
	if !d.started {
		d.started = true
		d.last = now
	}
	elapsed := now.Sub(d.last)
	d.last = now

	n := d.Advance(elapsed, step)
	d.frames++
	if render != nil {
		render()
	}
	return n
}

// Resync restarts frame measurement from now, discarding the time since the
// previous frame. Accumulated time is kept.
func (d *Driver) Resync() {
	d.last = d.clock.Now()
	d.started = true
}

// Accumulated returns the time owed that is still short of a full tick.
func (d *Driver) Accumulated() time.Duration {
	return d.acc
}

// Alpha returns how far the accumulator is into the next tick, in [0, 1).
func (d *Driver) Alpha() float64 {
	return float64(d.acc) / float64(d.tick)
}

// Stats reports totals since the driver was created.
func (d *Driver) Stats() (ticks, frames uint64, dropped time.Duration) {
	return d.ticks, d.frames, d.dropped
}
