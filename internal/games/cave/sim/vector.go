package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector in world space (y-up). Angles are in degrees,
// counter-clockwise from +x.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Unit returns the unit vector pointing at angle degrees.
func Unit(angle float64) Vec2 {
	return V(1, 0).Rotate(angle)
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) LenSq() float64 {
	return v.Dot(v)
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to length 1. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Rotate turns v counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	r := mgl64.Rotate2D(mgl64.DegToRad(deg)).Mul2x1(mgl64.Vec2{v.X, v.Y})
	return Vec2{r.X(), r.Y()}
}

// Angle returns the direction of v in degrees, in (-180, 180].
func (v Vec2) Angle() float64 {
	return mgl64.RadToDeg(math.Atan2(v.Y, v.X))
}

// AngleTo returns the signed angle in degrees that rotates v onto o.
func (v Vec2) AngleTo(o Vec2) float64 {
	return o.Angle() - v.Angle()
}

// Finite reports whether both components are real numbers.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
