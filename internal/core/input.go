package core

// Action represents a semantic action, abstracted from physical key presses.
// This allows the platform to map keys or gamepad buttons to high-level intents.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow, h - move paddle left
	ActionRight          // D, Right arrow, l - move paddle right
	ActionLaunch         // Space - launch the resting ball
	ActionUp             // Up, k - menu navigation
	ActionDown           // Down, j - menu navigation
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R - rebuild the layout after it is cleared
	ActionPause          // P, Escape - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionLaunch:
		return "Launch"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Intents are the boolean inputs the simulation consumes each tick.
// Left and Right are level-triggered; Launch is edge-triggered and must be
// delivered to a single tick only.
type Intents struct {
	Left   bool
	Right  bool
	Launch bool
}

const (
	bitLeft uint8 = 1 << iota
	bitRight
	bitLaunch
)

// Bits packs the intents into a compact bit set for journaling.
func (in Intents) Bits() uint8 {
	var b uint8
	if in.Left {
		b |= bitLeft
	}
	if in.Right {
		b |= bitRight
	}
	if in.Launch {
		b |= bitLaunch
	}
	return b
}

// IntentsFromBits unpacks a bit set produced by Bits.
func IntentsFromBits(b uint8) Intents {
	return Intents{
		Left:   b&bitLeft != 0,
		Right:  b&bitRight != 0,
		Launch: b&bitLaunch != 0,
	}
}

// Direction returns -1, 0 or 1 for the horizontal intent.
// Pressing both directions cancels out.
func (in Intents) Direction() int {
	d := 0
	if in.Left {
		d--
	}
	if in.Right {
		d++
	}
	return d
}
