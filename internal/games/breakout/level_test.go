package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickfall/internal/config"
)

func TestClassicLayout(t *testing.T) {
	l, ok := LayoutByID("classic")
	if !ok {
		t.Fatal("classic layout missing")
	}
	blocks, err := l.Build(config.DefaultBreakoutConfig())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	perRow := map[int]int{}
	for _, b := range blocks {
		perRow[b.Row]++
	}
	for row := range 6 {
		expected := 8
		if row%2 == 1 {
			expected = 7
		}
		if perRow[row] != expected {
			t.Errorf("row %d has %d blocks, expected %d", row, perRow[row], expected)
		}
	}

	first := blocks[0]
	if first.Left() != 98 || first.Bottom() != 300 {
		t.Errorf("first block at (%v, %v), expected (98, 300)", first.Left(), first.Bottom())
	}

	// Every row is centered in the world.
	rows := map[int][2]float64{}
	for _, b := range blocks {
		r, seen := rows[b.Row]
		if !seen {
			r = [2]float64{b.Left(), b.Right()}
		}
		r[0] = min(r[0], b.Left())
		r[1] = max(r[1], b.Right())
		rows[b.Row] = r
	}
	for row, r := range rows {
		if r[0] != 480-r[1] {
			t.Errorf("row %d spans [%v, %v], not centered", row, r[0], r[1])
		}
	}
}

func TestPatternLayouts(t *testing.T) {
	tests := []struct {
		id       string
		expected int
	}{
		{"pyramid", 2 + 4 + 6 + 8 + 10},
		{"checker", 6*3 + 5*3},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			l, ok := LayoutByID(tc.id)
			if !ok {
				t.Fatalf("layout %q missing", tc.id)
			}
			blocks, err := l.Build(config.DefaultBreakoutConfig())
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			if len(blocks) != tc.expected {
				t.Errorf("%s has %d blocks, expected %d", tc.id, len(blocks), tc.expected)
			}
		})
	}
}

func TestConfiguredPattern(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Blocks.Pattern = []string{"#.#", ".#."}

	l, _ := LayoutByID("classic")
	blocks, err := l.Build(cfg)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("Build() gave %d blocks, expected 3", len(blocks))
	}
	// Three columns of 32 with gaps of 4 span 104 units.
	if blocks[0].Left() != 188 || blocks[2].Left() != 224 || blocks[2].Row != 1 {
		t.Errorf("unexpected placement: %+v", blocks)
	}
}

func TestLayoutMustFit(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Blocks.Columns = []int{14}

	l, _ := LayoutByID("classic")
	if _, err := l.Build(cfg); err == nil {
		t.Error("Build() should reject rows wider than the world")
	}

	cfg = config.DefaultBreakoutConfig()
	cfg.Blocks.GapY = math.NaN()
	if _, err := l.Build(cfg); err == nil {
		t.Error("Build() should reject blocks placed at NaN")
	}
}
