// Package geom holds the small amount of geometry and animation math shared by
// every sketch: vectors, interpolation, containment tests, curves, progress
// accumulators and bounded trails.
package geom

import "math"

// Vec is a point or offset on the canvas. Y grows downwards.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Len returns the euclidean length
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector in the same direction.
// The zero vector stays zero.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Angle returns the direction of v in radians, as atan2(y, x)
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Lerp interpolates linearly between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates linearly between two points
func LerpVec(a, b Vec, t float64) Vec {
	return Vec{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Map re-maps v from the range [a0, a1] onto [b0, b1] without clamping
func Map(v, a0, a1, b0, b1 float64) float64 {
	if a1 == a0 {
		return b0
	}
	return b0 + (v-a0)/(a1-a0)*(b1-b0)
}
