package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/replay"
	"github.com/vovakirdan/brickfall/internal/storage"
)

const maxReplays = 100 // Max replays to load

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Verify key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Verify, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Watch, k.Verify, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "watch"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for the replay browser.
type ReplaysModel struct {
	store    *storage.Store
	replays  []storage.ReplaySummary
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	width    int
	height   int
	status   string
	watch    int64 // Set when user picks a replay to watch
	quitting bool
	back     bool
}

// NewReplaysModel creates a browser over the most recent replays in store.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	m := ReplaysModel{
		store:  store,
		keys:   DefaultReplaysKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the terminal.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Layout", Width: 10},
		{Title: "Player", Width: 12},
		{Title: "Ticks", Width: 8},
		{Title: "Left", Width: 5},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the replay list from the store.
func (m *ReplaysModel) load() {
	m.replays = nil
	if m.store != nil {
		replays, err := m.store.ListReplays(maxReplays)
		if err != nil {
			m.status = "cannot list replays: " + err.Error()
		}
		m.replays = replays
	}

	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.Layout,
			player,
			strconv.FormatUint(r.Ticks, 10),
			strconv.Itoa(r.BlocksLeft),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// current returns the highlighted replay.
func (m ReplaysModel) current() (storage.ReplaySummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplaySummary{}, false
	}
	return m.replays[i], true
}

// Init initializes the browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				m.watch = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			if r, ok := m.current(); ok {
				m.status = m.verify(r.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok {
				if err := m.store.DeleteReplay(r.ID); err != nil {
					m.status = "cannot delete: " + err.Error()
				} else {
					m.status = fmt.Sprintf("replay #%d deleted", r.ID)
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verify re-simulates a stored replay and describes the outcome.
func (m ReplaysModel) verify(id int64) string {
	entry, err := m.store.Replay(id)
	if err != nil {
		return "cannot load: " + err.Error()
	}
	switch err := replay.Verify(entry.Journal); {
	case err == nil:
		return fmt.Sprintf("replay #%d verified (%d ticks)", id, entry.Ticks)
	case errors.Is(err, replay.ErrMismatch):
		return fmt.Sprintf("replay #%d diverged: %v", id, err)
	default:
		return fmt.Sprintf("replay #%d: %v", id, err)
	}
}

// View renders the browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nPlay a layout to record one!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(" " + m.status)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Watching returns the ID of the replay picked for playback, or 0.
func (m ReplaysModel) Watching() int64 {
	return m.watch
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplaysModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}

// RunReplays runs the replay browser until the user leaves it. Picked replays
// are played back in place; the function returns true when the user went
// back to the menu.
func RunReplays(store *storage.Store, cfg core.RuntimeConfig, opts Options) (goBack bool, err error) {
	for {
		p := tea.NewProgram(NewReplaysModel(store, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return false, err
		}

		m, ok := finalModel.(ReplaysModel)
		if !ok || m.IsQuitting() {
			return false, nil
		}
		if m.IsGoingBack() {
			return true, nil
		}

		entry, err := store.Replay(m.Watching())
		if err != nil {
			return false, err
		}
		watchOpts := opts
		watchOpts.Store = nil
		watchOpts.Player = entry.Player
		if err := Watch(entry.Journal, cfg, watchOpts); err != nil {
			return false, err
		}
	}
}
