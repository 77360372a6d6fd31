package core

// RuntimeConfig contains configuration passed to games at initialization.
// Simulation constants live in config.BreakoutConfig; this only describes
// the host the game is displayed on.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
	FPS     int // Render frames per second (independent of the tick rate)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase      string // serve, playing or cleared
	Tick       uint64 // Simulation steps executed since the last reset
	BlocksLeft int    // Live blocks remaining
	Finished   bool   // Whether the layout has been cleared
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// BallLost is set on the tick the ball crossed the bottom boundary.
	BallLost bool
	// Destroyed is the number of blocks removed this tick.
	Destroyed int
}
