// Package breakout implements the brick-breaking simulation: a ball bouncing
// among a paddle, the world's walls and a field of destructible blocks.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
)

// Block is a destructible rectangle in the block field.
type Block struct {
	core.Box
	Row int
}

// rowColors cycles through the block rows from the top.
var rowColors = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
}

// Color returns the display color of the block's row.
func (b Block) Color() core.Color {
	return rowColors[b.Row%len(rowColors)]
}

// Layout describes how the block field is built.
// A layout without a pattern uses the configured pattern, or the alternating
// column layout when no pattern is configured either.
//
// Pattern characters:
//
//	'#' = block
//	'.' = empty
type Layout struct {
	ID      string
	Name    string
	Pattern []string
}

// Layouts returns every built-in layout.
func Layouts() []Layout {
	return []Layout{
		{ID: "classic", Name: "Classic"},

		{ID: "pyramid", Name: "Pyramid", Pattern: []string{
			"....##....",
			"...####...",
			"..######..",
			".########.",
			"##########",
		}},

		{ID: "checker", Name: "Checkerboard", Pattern: []string{
			"#.#.#.#.#.#",
			".#.#.#.#.#.",
			"#.#.#.#.#.#",
			".#.#.#.#.#.",
			"#.#.#.#.#.#",
			".#.#.#.#.#.",
		}},
	}
}

// LayoutByID returns a built-in layout by its ID.
func LayoutByID(id string) (Layout, bool) {
	for _, l := range Layouts() {
		if l.ID == id {
			return l, true
		}
	}
	return Layout{}, false
}

// Build places the layout's blocks in the world described by cfg.
// Rows are counted from the top of the world and every row is centered
// horizontally. It fails if a block would leave the world.
func (l Layout) Build(cfg config.BreakoutConfig) ([]Block, error) {
	pattern := l.Pattern
	if len(pattern) == 0 {
		pattern = cfg.Blocks.Pattern
	}

	var blocks []Block
	if len(pattern) == 0 {
		blocks = alternating(cfg)
	} else {
		blocks = fromPattern(cfg, pattern)
	}

	world := core.NewBox(0, 0, cfg.World.Width, cfg.World.Height)
	for _, b := range blocks {
		inside := b.Left() >= world.Left() && b.Right() <= world.Right() &&
			b.Bottom() >= world.Bottom() && b.Top() <= world.Top()
		if !inside {
			return nil, fmt.Errorf("breakout: layout %q does not fit a %gx%g world", l.ID, cfg.World.Width, cfg.World.Height)
		}
	}
	return blocks, nil
}

// alternating builds Rows rows where row i holds Columns[i%len(Columns)] blocks.
func alternating(cfg config.BreakoutConfig) []Block {
	bc := cfg.Blocks
	var blocks []Block
	for row := range bc.Rows {
		n := bc.Columns[row%len(bc.Columns)]
		left := rowLeft(cfg, n)
		y := rowBottom(cfg, row)
		for col := range n {
			blocks = append(blocks, Block{
				Box: core.NewBox(left+float64(col)*(bc.Width+bc.GapX), y, bc.Width, bc.Height),
				Row: row,
			})
		}
	}
	return blocks
}

// fromPattern builds blocks from an ASCII map. All rows share the left edge of
// the widest line so columns stay aligned.
func fromPattern(cfg config.BreakoutConfig, pattern []string) []Block {
	bc := cfg.Blocks
	width := 0
	for _, line := range pattern {
		width = max(width, len(line))
	}
	left := rowLeft(cfg, width)

	var blocks []Block
	for row, line := range pattern {
		y := rowBottom(cfg, row)
		for col := range len(line) {
			if line[col] != '#' {
				continue
			}
			blocks = append(blocks, Block{
				Box: core.NewBox(left+float64(col)*(bc.Width+bc.GapX), y, bc.Width, bc.Height),
				Row: row,
			})
		}
	}
	return blocks
}

func rowLeft(cfg config.BreakoutConfig, n int) float64 {
	bc := cfg.Blocks
	return (cfg.World.Width - float64(n)*(bc.Width+bc.GapX) + bc.GapX) / 2
}

func rowBottom(cfg config.BreakoutConfig, row int) float64 {
	bc := cfg.Blocks
	return cfg.World.Height - float64(row+1)*(bc.Height+bc.GapY)
}
