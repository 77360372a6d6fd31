// Package core provides fundamental types and utilities shared by the
// simulation and its rendering/input collaborators. It contains no terminal
// or windowing dependencies to keep game logic pure and testable.
package core

import (
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/exp/constraints"
)

// Vec is a 2D world-space vector. World y grows upward.
type Vec = mgl64.Vec2

// V is shorthand for building a Vec.
func V(x, y float64) Vec {
	return Vec{x, y}
}

// Box is an axis-aligned rectangle in world units anchored at its lower-left corner.
type Box struct {
	Pos  Vec
	W, H float64
}

// NewBox creates a box with the given lower-left corner and extent.
func NewBox(x, y, w, h float64) Box {
	return Box{Pos: V(x, y), W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.Pos.X() }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.Pos.X() + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Pos.Y() }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Pos.Y() + b.H }

// Center returns the center point of the box.
func (b Box) Center() Vec {
	return V(b.Pos.X()+b.W/2, b.Pos.Y()+b.H/2)
}

// ClosestPoint returns the point of the box nearest to p.
// Each coordinate is clamped independently to the box's extent, so a point
// inside the box is returned unchanged.
func (b Box) ClosestPoint(p Vec) Vec {
	return V(
		Clamp(p.X(), b.Left(), b.Right()),
		Clamp(p.Y(), b.Bottom(), b.Top()),
	)
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.Pos = b.Pos.Add(V(dx, dy))
	return b
}

// Circle describes a circle by the lower-left corner of its bounding square.
type Circle struct {
	Pos    Vec
	Radius float64
}

// Center recovers the circle's center from its bounding-box corner.
func (c Circle) Center() Vec {
	return c.Pos.Add(V(c.Radius, c.Radius))
}

// Bounds returns the circle's bounding square.
func (c Circle) Bounds() Box {
	return Box{Pos: c.Pos, W: 2 * c.Radius, H: 2 * c.Radius}
}

// Rect is an integer cell rectangle on a Screen (top-left origin, y grows down).
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T constraints.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
