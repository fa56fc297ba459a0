// Package core provides fundamental types and utilities shared by the cave
// simulation and its front ends. It has no external dependencies (especially
// no Bubble Tea) so that game logic stays pure and testable.
package core

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// RectF is an axis-aligned box in world units, stored by its minimum corner.
// World space is y-up, so Y is the lowest edge.
type RectF struct {
	X, Y float64
	W, H float64
}

// CenteredRect returns a w×h box centred on (cx, cy).
func CenteredRect(cx, cy, w, h float64) RectF {
	return RectF{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Intersects reports whether the two boxes overlap with positive area.
// Boxes that only touch along an edge do not intersect.
func (r RectF) Intersects(o RectF) bool {
	if r.X >= o.X+o.W || o.X >= r.X+r.W {
		return false
	}
	if r.Y >= o.Y+o.H || o.Y >= r.Y+r.H {
		return false
	}
	return true
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
