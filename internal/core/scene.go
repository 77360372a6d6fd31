package core

// ShapeKind distinguishes the drawables of a Scene.
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapePaddle
)

// Shape is a colored drawable in world units, anchored at its lower-left corner.
// Circles use W as the diameter of their bounding square.
type Shape struct {
	Kind  ShapeKind `msgpack:"k" json:"kind"`
	X     float64   `msgpack:"x" json:"x"`
	Y     float64   `msgpack:"y" json:"y"`
	W     float64   `msgpack:"w" json:"w"`
	H     float64   `msgpack:"h" json:"h"`
	Color Color     `msgpack:"c" json:"color"`
}

// Box returns the shape's extent.
func (s Shape) Box() Box {
	return NewBox(s.X, s.Y, s.W, s.H)
}

// Scene is everything a render collaborator needs to draw one frame.
// It is a value copy of simulation state; drawing it never feeds back.
type Scene struct {
	Width  float64 `msgpack:"ww" json:"width"`
	Height float64 `msgpack:"wh" json:"height"`
	Tick   uint64  `msgpack:"t" json:"tick"`
	Status string  `msgpack:"s" json:"status"`
	Ball   Shape   `msgpack:"b" json:"ball"`
	Paddle Shape   `msgpack:"p" json:"paddle"`
	Blocks []Shape `msgpack:"bl" json:"blocks"`
}

// Canvas is the render context a Scene draws itself into.
// One canvas is shared by every draw call of a frame.
type Canvas interface {
	FillRect(b Box, c Color)
	FillCircle(c Circle, col Color)
	FillPaddle(b Box, c Color)
}

// Draw submits every shape of the scene to the canvas: blocks, then paddle,
// then ball, so the ball is never hidden.
func (s Scene) Draw(cv Canvas) {
	for _, b := range s.Blocks {
		drawShape(cv, b)
	}
	drawShape(cv, s.Paddle)
	drawShape(cv, s.Ball)
}

func drawShape(cv Canvas, s Shape) {
	switch s.Kind {
	case ShapeCircle:
		cv.FillCircle(Circle{Pos: V(s.X, s.Y), Radius: s.W / 2}, s.Color)
	case ShapePaddle:
		cv.FillPaddle(s.Box(), s.Color)
	default:
		cv.FillRect(s.Box(), s.Color)
	}
}
