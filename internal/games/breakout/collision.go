package breakout

import (
	"github.com/vovakirdan/brickfall/internal/core"
)

// Sides is the set of surfaces the ball's predicted position overlaps.
// Names are from the ball's point of view: Right means something lies on the
// ball's right, so a block struck on its left face reports Right.
type Sides struct {
	Top, Bottom, Left, Right bool
}

// Any reports whether at least one side is set.
func (s Sides) Any() bool {
	return s.Top || s.Bottom || s.Left || s.Right
}

// Or merges two outcomes flag by flag.
func (s Sides) Or(o Sides) Sides {
	return Sides{
		Top:    s.Top || o.Top,
		Bottom: s.Bottom || o.Bottom,
		Left:   s.Left || o.Left,
		Right:  s.Right || o.Right,
	}
}

// Probe tests a circle against a box.
// It reports the point of the box closest to center and whether that point
// lies strictly within radius of it.
func Probe(center core.Vec, radius float64, b core.Box) (core.Vec, bool) {
	p := b.ClosestPoint(center)
	d := center.Sub(p)
	if d.Dot(d) < radius*radius {
		return p, true
	}
	return core.Vec{}, false
}

// Classify names the sides struck by a contact at hit on box b.
// The four checks are independent; a corner contact sets two flags.
func Classify(hit core.Vec, b core.Box) Sides {
	return Sides{
		Bottom: hit.Y() >= b.Top(),
		Top:    hit.Y() <= b.Bottom(),
		Right:  hit.X() <= b.Left(),
		Left:   hit.X() >= b.Right(),
	}
}

// CollideBlocks tests every block against the ball, removes each block that
// was hit and returns the surviving blocks with the OR of all struck sides.
// The surviving blocks reuse the backing array of blocks.
func CollideBlocks(center core.Vec, radius float64, blocks []Block) ([]Block, Sides) {
	var sides Sides
	live := blocks[:0]
	for _, b := range blocks {
		hit, ok := Probe(center, radius, b.Box)
		if !ok {
			live = append(live, b)
			continue
		}
		sides = sides.Or(Classify(hit, b.Box))
	}
	clear(blocks[len(live):])
	return live, sides
}

// wallSides checks the ball's bounding box at pos against the left, right and
// top walls. The bottom boundary is handled separately as a lost ball.
func wallSides(pos core.Vec, radius, width, height float64) Sides {
	return Sides{
		Left:  pos.X() < 0,
		Right: pos.X()+2*radius > width,
		Top:   pos.Y()+2*radius > height,
	}
}

// fellOut reports whether the ball's bounding box reached the bottom boundary.
func fellOut(pos core.Vec) bool {
	return pos.Y() <= 0
}
