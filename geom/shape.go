package geom

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectCentered builds a rectangle of the given size around c
func RectCentered(c Vec, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Right() float64 {
	return r.X + r.W
}

func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

func (r Rect) Center() Vec {
	return Vec{r.X + r.W/2, r.Y + r.H/2}
}

// ContainsInclusive reports whether p lies inside r or on its edge.
func (r Rect) ContainsInclusive(p Vec) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsStrict reports whether p lies inside r, edges excluded.
func (r Rect) ContainsStrict(p Vec) bool {
	return p.X > r.X && p.X < r.Right() && p.Y > r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely within r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Right() <= r.Right() && o.Y >= r.Y && o.Bottom() <= r.Bottom()
}

// OverlapsX reports whether the horizontal extents of r and o share any
// point, touching edges included.
func (r Rect) OverlapsX(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right()
}

// Clamp moves p to the closest point inside r
func (r Rect) Clamp(p Vec) Vec {
	return Vec{Clamp(p.X, r.X, r.Right()), Clamp(p.Y, r.Y, r.Bottom())}
}

// Circle is a disc with centre C and radius R.
type Circle struct {
	C Vec
	R float64
}

// Contains is the hit test used for pointer presses: the point must be
// strictly closer to the centre than the radius.
func (c Circle) Contains(p Vec) bool {
	return c.C.Dist(p) < c.R
}

// ContainsInclusive also counts points exactly on the rim.
func (c Circle) ContainsInclusive(p Vec) bool {
	return c.C.Dist(p) <= c.R
}

// Inside reports whether c lies completely within container.
func (c Circle) Inside(container Circle) bool {
	return c.C.Dist(container.C) <= container.R-c.R
}

// Overlap returns how far the two discs interpenetrate along the line between
// their centres. Zero or negative means they do not overlap.
func (c Circle) Overlap(o Circle) float64 {
	return c.R + o.R - c.C.Dist(o.C)
}

func (c Circle) Left() float64 {
	return c.C.X - c.R
}

func (c Circle) Right() float64 {
	return c.C.X + c.R
}

// OverlapPercent expresses the overlap of two discs relative to the smaller
// diameter, capped at 100. Discs that do not overlap return 0.
func OverlapPercent(a, b Circle) float64 {
	overlap := a.Overlap(b)
	if overlap <= 0 {
		return 0
	}
	return math.Min(100, overlap/(2*math.Min(a.R, b.R))*100)
}
