package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// Passage tracks a body going into a barrier and out again.
type Passage struct {
	Entered  bool
	Exited   bool
	Passed   bool
	FromLeft bool
	// Directional passages only count exits on the side opposite the entry.
	Directional bool
}

// Update advances the passage with the body's current position and reports
// whether the body is strictly inside the barrier.
func (p *Passage) Update(barrier geom.Rect, pos geom.Vec) bool {
	inside := barrier.ContainsStrict(pos)
	mid := barrier.Center().X

	if inside && !p.Entered {
		p.Entered = true
		p.FromLeft = pos.X < mid
	}
	if !inside && p.Entered && !p.Exited {
		if !p.Directional || p.FromLeft != (pos.X < mid) {
			p.Exited = true
			p.Passed = true
		}
	}
	return inside
}

func (p *Passage) Reset() {
	*p = Passage{Directional: p.Directional}
}

// BarrierDistance approximates how far pos is from the barrier, treating it as
// a circle around its centre with radius half its longer side.
func BarrierDistance(barrier geom.Rect, pos geom.Vec) float64 {
	radius := math.Max(barrier.W, barrier.H) / 2
	return math.Max(0, pos.Dist(barrier.Center())-radius)
}

type throughState struct {
	Barrier geom.Rect
	Mover   ecs.EntityId
	Home    geom.Vec
	Passage Passage
	Trail   *geom.Trail
}

type throughSystem struct {
	sketch.Context
	State ecs.Singleton[throughState]
}

func (s *throughSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)

	if s.Action() == "reset" {
		state.Passage.Reset()
		state.Trail.Clear()
		mover.Vec = state.Home
	}
	if mover.Drag.Dragging && s.Pointer.Get().Moved {
		state.Trail.Push(mover.Vec)
	}

	inside := state.Passage.Update(state.Barrier, mover.Vec)
	p := state.Passage

	switch {
	case p.Passed:
		mover.Fill.RGBA = sketch.Green
		s.Say("Circle has moved THROUGH the barrier", true)
	case inside:
		mover.Fill.RGBA = sketch.Yellow
		s.Say("Circle is passing through the barrier", false)
	case p.Entered:
		mover.Fill.RGBA = sketch.Orange
		s.Say("Circle entered but hasn't exited", false)
	default:
		mover.Fill.RGBA = sketch.Orange
		s.Say("Circle hasn't passed through yet", false)
	}
	s.Info(
		fmt.Sprintf("Inside barrier: %t", inside),
		fmt.Sprintf("Has entered: %t", p.Entered),
		fmt.Sprintf("Has exited: %t", p.Exited),
		fmt.Sprintf("Has passed through: %t", p.Passed),
	)
}

type throughDirectionalSystem struct {
	sketch.Context
	State ecs.Singleton[throughState]
}

func side(left bool) string {
	if left {
		return "left"
	}
	return "right"
}

func (s *throughDirectionalSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)

	if state.Passage.Passed && BarrierDistance(state.Barrier, mover.Vec) > 50 {
		state.Passage.Reset()
	}
	inside := state.Passage.Update(state.Barrier, mover.Vec)
	p := state.Passage
	onLeft := mover.X < state.Barrier.Center().X

	switch {
	case inside:
		mover.Fill.RGBA = sketch.Yellow
	case p.Passed && !onLeft:
		mover.Fill.RGBA = sketch.Green
	default:
		mover.Fill.RGBA = sketch.Orange
	}

	// a completed pass outranks being back inside the barrier
	switch {
	case p.Passed:
		direction := "left to right"
		if onLeft {
			direction = "right to left"
		}
		s.Say("Circle moved through barrier ("+direction+")", true)
	case inside:
		s.Say("Inside barrier - entered from "+side(p.FromLeft), false)
	case p.Entered:
		s.Say("Circle entered but hasn't exited", false)
	default:
		s.Say("Drag the circle THROUGH the barrier", false)
	}
	s.Info(fmt.Sprintf("Distance from barrier: %d", round(BarrierDistance(state.Barrier, mover.Vec))))
}

func setupThrough(scene *sketch.Scene, directional bool) throughState {
	state := throughState{
		Barrier: geom.Rect{X: 180, Y: 50, W: 40, H: 200},
		Home:    geom.V(100, 150),
		Passage: Passage{Directional: directional},
	}
	scene.Outline(state.Barrier, sketch.Blue, 3, sketch.Fill{RGBA: sketch.Alpha(sketch.Blue, 100)}, sketch.Layer(-1),
		sketch.Label{Text: "Barrier", Offset: geom.V(0, -state.Barrier.H/2-10), Color: sketch.Ink})
	state.Mover = scene.Ball(state.Home, 20, sketch.Orange,
		sketch.Draggable{Constrain: directional}, labelAbove("Moving Circle", 16))
	return state
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "through",
		Variant:     "classic",
		Summary:     "Drag the circle into the barrier and out the other side",
		Setup: func(scene *sketch.Scene) error {
			state := setupThrough(scene, false)
			state.Trail = scene.Trail(100, sketch.Orange)
			scene.Button(geom.Rect{X: 10, Y: 80, W: 80, H: 25}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&throughSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "through",
		Variant:     "directional",
		Summary:     "Passing through counts only when the circle leaves on the far side",
		Setup: func(scene *sketch.Scene) error {
			scene.Singleton(setupThrough(scene, true))
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&throughDirectionalSystem{}} }),
	})
}
