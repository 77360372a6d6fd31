package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/loop"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	clock := loop.NewManualClock(time.Unix(0, 0))
	m := NewSessionModel(core.DefaultConfig(), Options{Player: "ssh-user", Clock: clock})

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || m.game == nil {
		t.Fatalf("view = %v after selecting a layout, expected the game", m.view)
	}

	m, _ = sessionUpdate(t, m, runeKey('p'))
	m, cmd := sessionUpdate(t, m, runeKey('b'))
	if m.view != viewMenu {
		t.Errorf("view = %v after back, expected the menu", m.view)
	}
	if m.quitting {
		t.Error("session quit when the game went back to the menu")
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("back to menu returned tea.Quit")
		}
	}
}

func TestSessionReplaysWithoutStore(t *testing.T) {
	m := NewSessionModel(core.DefaultConfig(), Options{})

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewReplays {
		t.Fatalf("view = %v after tab, expected replays", m.view)
	}

	// Enter on an empty list does nothing.
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewReplays {
		t.Errorf("view = %v after enter on an empty list, expected replays", m.view)
	}

	m, _ = sessionUpdate(t, m, runeKey('b'))
	if m.view != viewMenu {
		t.Errorf("view = %v after back, expected the menu", m.view)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(core.DefaultConfig(), Options{})

	m, cmd := sessionUpdate(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Fatal("q in the menu did not quit the session")
	}
	if m.View() != "" {
		t.Errorf("View() = %q after quit, expected empty", m.View())
	}
}

func TestSessionStreamNames(t *testing.T) {
	at := time.Unix(1700000000, 42)

	tests := []struct {
		user     string
		expected string
	}{
		{"alice", "alice-1700000000000000042"},
		{"", "guest-1700000000000000042"},
	}
	for _, tt := range tests {
		if got := sessionStream(tt.user, at); got != tt.expected {
			t.Errorf("sessionStream(%q) = %q, expected %q", tt.user, got, tt.expected)
		}
	}

	if sessionStream("alice", at) == sessionStream("alice", at.Add(time.Nanosecond)) {
		t.Error("two connections of one user should get distinct streams")
	}
}
