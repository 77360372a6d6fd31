// Package tui provides the Bubble Tea integration: the terminal frame loop,
// key-hold input, cell rendering, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per render frame. The frame handler runs however many
// simulation ticks the elapsed time owes, then the view is redrawn.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends a frame message at the given rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
