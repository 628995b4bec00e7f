package geom

import "github.com/charmbracelet/harmonica"

// Spring smooths a 2D point towards a moving target using a damped spring on
// each axis.
type Spring struct {
	spring harmonica.Spring
	vel    Vec
}

// NewSpring creates a spring stepped at fps frames per second. Damping below 1
// overshoots, 1 is critically damped.
func NewSpring(fps int, frequency, damping float64) *Spring {
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Step advances pos one frame towards target and returns the new position
func (s *Spring) Step(pos, target Vec) Vec {
	var next Vec
	next.X, s.vel.X = s.spring.Update(pos.X, s.vel.X, target.X)
	next.Y, s.vel.Y = s.spring.Update(pos.Y, s.vel.Y, target.Y)
	return next
}

// Velocity returns the current per-axis velocity
func (s *Spring) Velocity() Vec {
	return s.vel
}

func (s *Spring) Reset() {
	s.vel = Vec{}
}

// Retune swaps the spring's coefficients and keeps its current velocity.
func (s *Spring) Retune(fps int, frequency, damping float64) {
	s.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
}
