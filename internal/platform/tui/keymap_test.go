package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionLaunch},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", runeKey('r'), core.ActionRestart},
		{"b", runeKey('b'), core.ActionBack},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.expected {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestHeldInputWindow(t *testing.T) {
	var h HeldInput
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)

	if in := h.Intents(t0.Add(100 * time.Millisecond)); !in.Left || in.Right {
		t.Errorf("Intents(+100ms) = %+v, expected left held", in)
	}
	if in := h.Intents(t0.Add(holdWindow)); in.Left {
		t.Errorf("Intents(+holdWindow) = %+v, expected left released", in)
	}

	// Auto-repeat keeps the key held.
	h.Press(core.ActionLeft, t0.Add(150*time.Millisecond))
	if in := h.Intents(t0.Add(300 * time.Millisecond)); !in.Left {
		t.Errorf("Intents(+300ms) after repeat = %+v, expected left held", in)
	}
}

func TestHeldInputOppositeDirection(t *testing.T) {
	var h HeldInput
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionRight, t0.Add(10*time.Millisecond))

	in := h.Intents(t0.Add(20 * time.Millisecond))
	if in.Left || !in.Right {
		t.Errorf("Intents() = %+v, expected only right held", in)
	}
}

func TestHeldInputLaunchLatch(t *testing.T) {
	var h HeldInput
	t0 := time.Unix(1000, 0)

	if h.TakeLaunch() {
		t.Error("TakeLaunch() = true before any press")
	}

	h.Press(core.ActionLaunch, t0)
	if in := h.Intents(t0); in.Launch {
		t.Error("Intents() reported launch; it must only come from TakeLaunch")
	}
	if !h.TakeLaunch() {
		t.Error("TakeLaunch() = false after a press")
	}
	if h.TakeLaunch() {
		t.Error("TakeLaunch() = true twice for one press")
	}
}

func TestHeldInputRelease(t *testing.T) {
	var h HeldInput
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionRight, t0)
	h.Press(core.ActionLaunch, t0)
	h.Release()

	if in := h.Intents(t0); in != (core.Intents{}) {
		t.Errorf("Intents() after Release = %+v, expected none", in)
	}
	if h.TakeLaunch() {
		t.Error("TakeLaunch() after Release = true")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionReplays},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}
