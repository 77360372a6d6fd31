package loop

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAdvanceCarriesRemainder(t *testing.T) {
	d := New(NewManualClock(epoch), 20*time.Millisecond)

	steps := 0
	n := d.Advance(55*time.Millisecond, func() { steps++ })

	if n != 2 || steps != 2 {
		t.Errorf("Advance(55ms) ran %d steps (returned %d), expected 2", steps, n)
	}
	if d.Accumulated() != 15*time.Millisecond {
		t.Errorf("Accumulated() = %v, expected 15ms", d.Accumulated())
	}

	n = d.Advance(5*time.Millisecond, func() { steps++ })
	if n != 1 || d.Accumulated() != 0 {
		t.Errorf("Advance(5ms) = %d with %v left, expected 1 with 0", n, d.Accumulated())
	}
}

func TestAdvanceExactTick(t *testing.T) {
	d := New(nil, 20*time.Millisecond)

	if n := d.Advance(20*time.Millisecond, func() {}); n != 1 {
		t.Errorf("Advance(20ms) = %d, expected 1", n)
	}
	if n := d.Advance(19*time.Millisecond, func() {}); n != 0 {
		t.Errorf("Advance(19ms) = %d, expected 0", n)
	}
	if n := d.Advance(-time.Second, func() {}); n != 0 {
		t.Errorf("Advance(-1s) = %d, expected 0", n)
	}
	if d.Accumulated() != 19*time.Millisecond {
		t.Errorf("Accumulated() = %v, expected 19ms", d.Accumulated())
	}
}

func TestFrameMeasuresClock(t *testing.T) {
	clock := NewManualClock(epoch)
	d := New(clock, 20*time.Millisecond)

	var order []string
	step := func() { order = append(order, "step") }
	render := func() { order = append(order, "render") }

	if n := d.Frame(step, render); n != 0 {
		t.Errorf("first Frame() = %d, expected 0", n)
	}

	clock.Advance(55 * time.Millisecond)
	if n := d.Frame(step, render); n != 2 {
		t.Errorf("Frame() after 55ms = %d, expected 2", n)
	}

	expected := []string{"render", "step", "step", "render"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Errorf("call order = %v, expected %v", order, expected)
	}

	clock.Advance(5 * time.Millisecond)
	if n := d.Frame(step, nil); n != 1 {
		t.Errorf("Frame() after 5ms more = %d, expected 1", n)
	}

	ticks, frames, dropped := d.Stats()
	if ticks != 3 || frames != 3 || dropped != 0 {
		t.Errorf("Stats() = %d, %d, %v; expected 3, 3, 0", ticks, frames, dropped)
	}
}

func TestUnboundedCatchUp(t *testing.T) {
	clock := NewManualClock(epoch)
	d := New(clock, 20*time.Millisecond)
	d.Frame(func() {}, nil)

	clock.Advance(time.Second)
	if n := d.Frame(func() {}, nil); n != 50 {
		t.Errorf("Frame() after a 1s stall = %d, expected 50", n)
	}
}

func TestMaxTicksClampsAndDrops(t *testing.T) {
	var buf bytes.Buffer
	d := New(nil, 20*time.Millisecond, WithMaxTicks(3), WithLogger(log.New(&buf)))

	n := d.Advance(210*time.Millisecond, func() {})

	if n != 3 {
		t.Errorf("Advance(210ms) = %d, expected 3", n)
	}
	if d.Accumulated() != 10*time.Millisecond {
		t.Errorf("Accumulated() = %v, expected the sub-tick remainder 10ms", d.Accumulated())
	}
	if _, _, dropped := d.Stats(); dropped != 140*time.Millisecond {
		t.Errorf("dropped = %v, expected 140ms", dropped)
	}
	if !strings.Contains(buf.String(), "catch-up clamped") {
		t.Errorf("expected a clamp warning, got %q", buf.String())
	}
}

func TestBurstWarning(t *testing.T) {
	var buf bytes.Buffer
	d := New(nil, 20*time.Millisecond, WithBurstWarn(5), WithLogger(log.New(&buf)))

	d.Advance(100*time.Millisecond, func() {})
	if buf.Len() != 0 {
		t.Errorf("no warning expected for 5 ticks, got %q", buf.String())
	}

	d.Advance(200*time.Millisecond, func() {})
	if !strings.Contains(buf.String(), "simulation burst") {
		t.Errorf("expected a burst warning, got %q", buf.String())
	}
}

func TestResyncSkipsPausedTime(t *testing.T) {
	clock := NewManualClock(epoch)
	d := New(clock, 20*time.Millisecond)
	d.Frame(func() {}, nil)

	clock.Advance(5 * time.Second)
	d.Resync()
	clock.Advance(40 * time.Millisecond)

	if n := d.Frame(func() {}, nil); n != 2 {
		t.Errorf("Frame() after Resync = %d, expected 2", n)
	}
}

func TestAlpha(t *testing.T) {
	d := New(nil, 20*time.Millisecond)
	d.Advance(25*time.Millisecond, func() {})

	if got := d.Alpha(); got != 0.25 {
		t.Errorf("Alpha() = %v, expected 0.25", got)
	}
}

func TestNewRejectsZeroTick(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New() should panic for a zero tick")
		}
	}()
	New(nil, 0)
}
