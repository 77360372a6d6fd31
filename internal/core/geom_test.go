package core

import "testing"

func TestBoxEdges(t *testing.T) {
	b := NewBox(5, 10, 20, 15)

	if b.Left() != 5 || b.Right() != 25 {
		t.Errorf("Left/Right = %v/%v, expected 5/25", b.Left(), b.Right())
	}
	if b.Bottom() != 10 || b.Top() != 25 {
		t.Errorf("Bottom/Top = %v/%v, expected 10/25", b.Bottom(), b.Top())
	}

	c := b.Center()
	if c.X() != 15 || c.Y() != 17.5 {
		t.Errorf("Center() = %v, expected (15, 17.5)", c)
	}
}

func TestBoxClosestPoint(t *testing.T) {
	b := NewBox(0, 0, 10, 10)

	tests := []struct {
		name     string
		p        Vec
		expected Vec
	}{
		{"inside", V(4, 6), V(4, 6)},
		{"left", V(-3, 5), V(0, 5)},
		{"right", V(14, 5), V(10, 5)},
		{"below", V(5, -2), V(5, 0)},
		{"above", V(5, 12), V(5, 10)},
		{"corner", V(-1, 11), V(0, 10)},
		{"on edge", V(10, 3), V(10, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := b.ClosestPoint(tc.p)
			if got != tc.expected {
				t.Errorf("ClosestPoint(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestBoxTranslate(t *testing.T) {
	b := NewBox(1, 2, 3, 4).Translate(10, -2)
	if b.Pos != V(11, 0) || b.W != 3 || b.H != 4 {
		t.Errorf("Translate() = %+v, expected pos (11, 0) size 3x4", b)
	}
}

func TestCircleCenter(t *testing.T) {
	c := Circle{Pos: V(24, 16), Radius: 8}

	if got := c.Center(); got != V(32, 24) {
		t.Errorf("Center() = %v, expected (32, 24)", got)
	}

	bounds := c.Bounds()
	if bounds.W != 16 || bounds.H != 16 || bounds.Pos != c.Pos {
		t.Errorf("Bounds() = %+v, expected 16x16 at %v", bounds, c.Pos)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := Clamp(-5.5, 0.0, 10.0); got != 0.0 {
		t.Errorf("Clamp(-5.5, 0, 10) = %v, expected 0", got)
	}
	if got := Clamp(415.5, 0.0, 416.0); got != 415.5 {
		t.Errorf("Clamp(415.5, 0, 416) = %v, expected 415.5", got)
	}
}

func TestIntentsDirection(t *testing.T) {
	tests := []struct {
		in       Intents
		expected int
	}{
		{Intents{}, 0},
		{Intents{Left: true}, -1},
		{Intents{Right: true}, 1},
		{Intents{Left: true, Right: true}, 0},
	}

	for _, tc := range tests {
		if got := tc.in.Direction(); got != tc.expected {
			t.Errorf("%+v.Direction() = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}

func TestIntentsBits(t *testing.T) {
	for b := uint8(0); b < 8; b++ {
		if got := IntentsFromBits(b).Bits(); got != b {
			t.Errorf("IntentsFromBits(%d).Bits() = %d", b, got)
		}
	}
}
