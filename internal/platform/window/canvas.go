package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/brickfall/internal/core"
)

// Frame is a rectangle in image pixels, y growing downward.
type Frame struct {
	X, Y, W, H float32
}

// Projection maps world units onto image pixels, flipping the y axis.
type Projection struct {
	Scale  float64
	WorldH float64
}

// Rect returns the pixel rectangle covering b.
func (p Projection) Rect(b core.Box) Frame {
	return Frame{
		X: float32(b.Left() * p.Scale),
		Y: float32((p.WorldH - b.Top()) * p.Scale),
		W: float32(b.W * p.Scale),
		H: float32(b.H * p.Scale),
	}
}

// Circle returns the pixel center and radius of c.
func (p Projection) Circle(c core.Circle) (cx, cy, r float32) {
	center := c.Center()
	return float32(center.X() * p.Scale),
		float32((p.WorldH - center.Y()) * p.Scale),
		float32(c.Radius * p.Scale)
}

// ImageCanvas draws a scene onto an ebiten image.
type ImageCanvas struct {
	dst  *ebiten.Image
	proj Projection
}

// NewImageCanvas returns a canvas drawing onto dst.
func NewImageCanvas(dst *ebiten.Image, proj Projection) *ImageCanvas {
	return &ImageCanvas{dst: dst, proj: proj}
}

// FillRect fills the pixels covered by b.
func (c *ImageCanvas) FillRect(b core.Box, col core.Color) {
	r := c.proj.Rect(b)
	vector.DrawFilledRect(c.dst, r.X, r.Y, r.W, r.H, col.RGBA(), false)
}

// FillPaddle fills the paddle like any other rectangle.
func (c *ImageCanvas) FillPaddle(b core.Box, col core.Color) {
	c.FillRect(b, col)
}

// FillCircle fills an anti-aliased disc.
func (c *ImageCanvas) FillCircle(ci core.Circle, col core.Color) {
	cx, cy, r := c.proj.Circle(ci)
	vector.DrawFilledCircle(c.dst, cx, cy, r, col.RGBA(), true)
}
