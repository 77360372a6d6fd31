package tui

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/core"
)

// Glyphs used to draw the scene into cells.
const (
	BallGlyph   = '●'
	PaddleGlyph = '▀'
	BlockGlyph  = '='
	BlockLeft   = '['
	BlockRight  = ']'
)

// ScreenCanvas projects world-space drawing onto a rectangle of screen cells.
// World y grows upward; screen rows grow downward.
type ScreenCanvas struct {
	screen *core.Screen
	area   core.Rect
	sx, sy float64
	worldH float64
}

// NewScreenCanvas maps a worldW x worldH world onto area of screen.
func NewScreenCanvas(screen *core.Screen, area core.Rect, worldW, worldH float64) *ScreenCanvas {
	return &ScreenCanvas{
		screen: screen,
		area:   area,
		sx:     float64(area.W) / worldW,
		sy:     float64(area.H) / worldH,
		worldH: worldH,
	}
}

// span converts a world interval to an inclusive range of cells.
// Every non-empty interval covers at least one cell.
func span(lo, hi, scale float64, limit int) (int, int) {
	first := int(math.Floor(lo * scale))
	last := int(math.Ceil(hi*scale)) - 1
	last = max(last, first)
	return core.Clamp(first, 0, limit-1), core.Clamp(last, 0, limit-1)
}

func (c *ScreenCanvas) cells(b core.Box) core.Rect {
	x0, x1 := span(b.Left(), b.Right(), c.sx, c.area.W)
	y0, y1 := span(c.worldH-b.Top(), c.worldH-b.Bottom(), c.sy, c.area.H)
	return core.NewRect(c.area.X+x0, c.area.Y+y0, x1-x0+1, y1-y0+1)
}

// FillRect draws a block as [==].
func (c *ScreenCanvas) FillRect(b core.Box, col core.Color) {
	r := c.cells(b)
	c.screen.DrawRect(r, BlockGlyph, col)
	if r.W >= 3 {
		for y := r.Y; y < r.Bottom(); y++ {
			c.screen.SetCell(r.X, y, BlockLeft, col)
			c.screen.SetCell(r.Right()-1, y, BlockRight, col)
		}
	}
}

// FillPaddle draws the paddle as a solid bar.
func (c *ScreenCanvas) FillPaddle(b core.Box, col core.Color) {
	c.screen.DrawRect(c.cells(b), PaddleGlyph, col)
}

// FillCircle draws the ball as a single cell at its center.
func (c *ScreenCanvas) FillCircle(ci core.Circle, col core.Color) {
	center := ci.Center()
	x := core.Clamp(int(math.Floor(center.X()*c.sx)), 0, c.area.W-1)
	y := core.Clamp(int(math.Floor((c.worldH-center.Y())*c.sy)), 0, c.area.H-1)
	c.screen.SetCell(c.area.X+x, c.area.Y+y, BallGlyph, col)
}
