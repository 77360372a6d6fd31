package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickfall/internal/core"
	_ "github.com/vovakirdan/brickfall/internal/games/breakout"
)

func menuUpdate(m MenuModel, msg tea.Msg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuListsLayouts(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	ids := make(map[string]bool)
	for _, item := range m.items {
		ids[item.GameID] = true
	}
	for _, id := range []string{"breakout", "breakout_pyramid", "breakout_checker"} {
		if !ids[id] {
			t.Errorf("menu is missing %q", id)
		}
	}

	if view := m.View(); !strings.Contains(view, "Breakout") {
		t.Errorf("View() does not list the layouts:\n%s", view)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res.Quit || res.WantsReplays {
		t.Fatalf("Result() = %+v, expected a selection", res)
	}
	if res.GameID != m.items[1].GameID {
		t.Errorf("GameID = %q, expected %q", res.GameID, m.items[1].GameID)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at the top, expected 0", m.cursor)
	}
	for range len(m.items) + 2 {
		m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuReplaysAndQuit(t *testing.T) {
	m := menuUpdate(NewMenuModel(nil, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.Result().WantsReplays {
		t.Error("Result().WantsReplays = false after tab")
	}

	m = menuUpdate(NewMenuModel(nil, core.DefaultConfig()), runeKey('q'))
	if !m.Result().Quit {
		t.Error("Result().Quit = false after q")
	}
}

func TestLayoutOf(t *testing.T) {
	tests := map[string]string{
		"breakout":         "classic",
		"breakout_pyramid": "pyramid",
		"breakout_checker": "checker",
	}
	for id, expected := range tests {
		if got := layoutOf(id); got != expected {
			t.Errorf("layoutOf(%q) = %q, expected %q", id, got, expected)
		}
	}
}
