package geom

import "math"

// CubicBezier evaluates one coordinate of a cubic Bezier at t
func CubicBezier(a, b, c, d, t float64) float64 {
	u := 1 - t
	return u*u*u*a + 3*u*u*t*b + 3*u*t*t*c + t*t*t*d
}

// CubicBezierVec evaluates a cubic Bezier at t
func CubicBezierVec(a, b, c, d Vec, t float64) Vec {
	return Vec{
		CubicBezier(a.X, b.X, c.X, d.X, t),
		CubicBezier(a.Y, b.Y, c.Y, d.Y, t),
	}
}

// SineArc moves along the straight line from a to b and lifts the point by
// sin(t*pi)*height, so the arc peaks halfway and lands exactly on b.
func SineArc(a, b Vec, t, height float64) Vec {
	p := LerpVec(a, b, t)
	p.Y -= math.Sin(t*math.Pi) * height
	return p
}

// SineWave samples n points of a sine wave running from x0 to x1 around
// baseline y, completing the given number of radians over the span.
func SineWave(x0, x1, baseline, amplitude, radians float64, n int) []Vec {
	if n < 2 {
		return []Vec{{x0, baseline}}
	}
	points := make([]Vec, n)
	last := float64(n - 1)
	for i := range points {
		f := float64(i)
		points[i] = Vec{
			X: Map(f, 0, last, x0, x1),
			Y: baseline + math.Sin(Map(f, 0, last, 0, radians))*amplitude,
		}
	}
	return points
}

// PolylineAt interpolates along points with a fractional index, clamped to
// the ends of the line.
func PolylineAt(points []Vec, index float64) Vec {
	if len(points) == 0 {
		return Vec{}
	}
	if index <= 0 {
		return points[0]
	}
	last := len(points) - 1
	if index >= float64(last) {
		return points[last]
	}
	i := int(index)
	return LerpVec(points[i], points[i+1], index-float64(i))
}
