package window

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/breakout"
	"github.com/vovakirdan/brickfall/internal/loop"
	"github.com/vovakirdan/brickfall/internal/replay"
	"github.com/vovakirdan/brickfall/internal/storage"
)

func TestProjectionRect(t *testing.T) {
	p := Projection{Scale: 2, WorldH: 320}

	tests := []struct {
		name     string
		box      core.Box
		expected Frame
	}{
		{"paddle on the floor", core.NewBox(208, 0, 64, 16), Frame{X: 416, Y: 608, W: 128, H: 32}},
		{"block under the ceiling", core.NewBox(98, 300, 32, 16), Frame{X: 196, Y: 8, W: 64, H: 32}},
		{"full world", core.NewBox(0, 0, 480, 320), Frame{X: 0, Y: 0, W: 960, H: 640}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Rect(tc.box); got != tc.expected {
				t.Errorf("Rect(%+v) = %+v, expected %+v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestProjectionCircle(t *testing.T) {
	p := Projection{Scale: 2, WorldH: 320}

	cx, cy, r := p.Circle(core.Circle{Pos: core.V(232, 16), Radius: 8})
	if cx != 480 || cy != 592 || r != 16 {
		t.Errorf("Circle() = (%v, %v, %v), expected (480, 592, 16)", cx, cy, r)
	}
}

func newTestSession(t *testing.T, opts Options) (*Session, *breakout.Game, *loop.ManualClock) {
	t.Helper()

	game, err := breakout.NewWithConfig("classic", config.DefaultBreakoutConfig())
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	clock := loop.NewManualClock(time.Unix(0, 0))
	opts.Clock = clock

	s, err := NewSession(game, opts)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	s.Frame(false, false)
	return s, game, clock
}

func TestSessionFrame(t *testing.T) {
	s, game, clock := newTestSession(t, Options{})
	start := game.Paddle().Left()

	clock.Advance(100 * time.Millisecond)
	if n := s.Frame(false, true); n != 5 {
		t.Errorf("Frame() = %d ticks, expected 5", n)
	}
	if got := game.Paddle().Left(); got != start+10 {
		t.Errorf("paddle x = %v, expected %v", got, start+10)
	}
	if s.State().Tick != 5 {
		t.Errorf("Tick = %d, expected 5", s.State().Tick)
	}
}

func TestSessionLaunchAndPause(t *testing.T) {
	s, game, clock := newTestSession(t, Options{})

	s.Launch()
	clock.Advance(60 * time.Millisecond)
	s.Frame(false, false)
	if game.Ball().Speed == 0 {
		t.Fatal("ball still resting after launch")
	}
	if s.launch {
		t.Error("launch still latched after a tick consumed it")
	}

	s.TogglePause()
	before := s.State().Tick
	clock.Advance(time.Second)
	s.Frame(false, false)
	if s.State().Tick != before {
		t.Errorf("Tick = %d while paused, expected %d", s.State().Tick, before)
	}
	if s.Scene().Status != "paused" {
		t.Errorf("Scene().Status = %q, expected paused", s.Scene().Status)
	}
}

func TestSessionCloseSavesReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	s, _, clock := newTestSession(t, Options{Store: store, Player: "window"})
	s.Launch()
	clock.Advance(2 * time.Second)
	s.Frame(true, false)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	id := s.SavedReplay()
	if id == 0 {
		t.Fatal("SavedReplay() = 0 after Close")
	}

	entry, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay(%d) error = %v", id, err)
	}
	if entry.Ticks != 100 || entry.Player != "window" {
		t.Errorf("stored replay = %+v, expected 100 ticks by window", entry.ReplaySummary)
	}
	if err := replay.Verify(entry.Journal); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	// A second close has nothing new to save.
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if n, err := store.ListReplays(10); err != nil || len(n) != 1 {
		t.Errorf("ListReplays() = %d entries, err %v, expected 1", len(n), err)
	}
}
