package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// Pass follows a body moving horizontally in direction Dir (+1 right, -1
// left) and notes when it goes beyond the reference line at Ref.
type Pass struct {
	Ref    float64
	Dir    float64
	Passed bool
}

// Update checks x against the reference and reports whether this is the
// step on which the body went past it.
func (p *Pass) Update(x float64) bool {
	if p.Passed || (x-p.Ref)*p.Dir <= 0 {
		return false
	}
	p.Passed = true
	return true
}

// Approaching reports whether x is still short of the reference.
func (p *Pass) Approaching(x float64) bool {
	return (x-p.Ref)*p.Dir < 0
}

type pastState struct {
	Pass   Pass
	Start  float64
	Stop   float64
	Speed  float64
	Moving bool
	Mover  ecs.EntityId
	Trail  *geom.Trail
}

type pastSystem struct {
	sketch.Context
	State ecs.Singleton[pastState]
}

func (s *pastSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)

	if _, ok := s.Click(); ok && !state.Moving {
		mover.X = state.Start
		state.Pass.Passed = false
		state.Moving = true
		state.Trail.Clear()
	}
	if state.Moving {
		state.Trail.Push(mover.Vec)
		mover.X += state.Speed
		state.Pass.Update(mover.X)
		if mover.X > state.Stop {
			state.Moving = false
		}
	}

	switch {
	case state.Pass.Passed:
		mover.Fill.RGBA = sketch.Green
		s.Say("Circle moved PAST the reference point", true)
	case state.Moving && state.Pass.Approaching(mover.X):
		mover.Fill.RGBA = sketch.Yellow
		s.Say("Circle is approaching the reference point", false)
	case state.Moving:
		mover.Fill.RGBA = sketch.Yellow
		s.Say("Circle is moving PAST the reference point", false)
	default:
		mover.Fill.RGBA = sketch.Orange
		s.Say("Click to move circle PAST the reference point", false)
	}
}

type pastBothState struct {
	Pass   Pass
	Margin float64
	Speed  float64
	Moving bool
	Trail  *geom.Trail

	Ref      geom.Vec
	Mover    ecs.EntityId
	Heading  ecs.EntityId
	Marker   ecs.EntityId
	Span     ecs.EntityId
	Distance ecs.EntityId
}

type pastBothSystem struct {
	sketch.Context
	State ecs.Singleton[pastBothState]
}

func (s *pastBothSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	mover := s.Body(state.Mover)
	marker := s.Body(state.Marker)

	start := func(dir float64) {
		if state.Moving {
			return
		}
		state.Pass.Dir = dir
		state.Pass.Passed = false
		state.Moving = true
		state.Trail.Clear()
		mover.Vec = geom.V(-state.Margin, state.Ref.Y)
		if dir < 0 {
			mover.X = canvas.Width + state.Margin
		}
		sketch.SetHidden(frame.Commands, marker, true)
	}
	switch s.Action() {
	case "left":
		start(-1)
	case "right":
		start(1)
	case "reset":
		state.Moving = false
		state.Pass = Pass{Ref: state.Pass.Ref, Dir: 1}
		state.Trail.Clear()
		mover.Vec = geom.V(-state.Margin, state.Ref.Y)
		sketch.SetHidden(frame.Commands, marker, true)
	}
	if p, ok := s.Click(); ok {
		if p.X < state.Ref.X {
			start(-1)
		} else {
			start(1)
		}
	}

	if state.Moving {
		state.Trail.Push(mover.Vec)
		mover.X += state.Speed * state.Pass.Dir
		if state.Pass.Update(mover.X) {
			marker.Vec = mover.Vec
			sketch.SetHidden(frame.Commands, marker, false)
		}
		if mover.X > canvas.Width+state.Margin || mover.X < -state.Margin {
			state.Moving = false
		}
	}

	heading := s.Body(state.Heading)
	if state.Moving {
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Heading)
		seg.From, seg.To = mover.Vec, mover.Add(geom.V(15*state.Pass.Dir, 0))
	}
	sketch.SetHidden(frame.Commands, heading, !state.Moving)

	measuring := state.Moving || state.Pass.Passed
	span, distance := s.Body(state.Span), s.Body(state.Distance)
	if measuring {
		offset := mover.X - state.Ref.X
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Span)
		seg.From, seg.To = state.Ref.Add(geom.V(0, 40)), mover.Add(geom.V(0, 40))
		where := "before reference"
		if offset*state.Pass.Dir > 0 {
			where = "past reference"
		}
		distance.Vec = geom.V((state.Ref.X+mover.X)/2, state.Ref.Y+62)
		distance.Label.Text = fmt.Sprintf("%dpx (%s)", round(math.Abs(offset)), where)
	}
	sketch.SetHidden(frame.Commands, span, !measuring)
	sketch.SetHidden(frame.Commands, distance, !measuring)

	switch {
	case state.Pass.Passed:
		mover.Fill.RGBA = sketch.Green
		s.Say("Object moved PAST the reference point", true)
	case state.Moving && state.Pass.Approaching(mover.X):
		mover.Fill.RGBA = sketch.Yellow
		s.Say("Object is approaching the reference point", false)
	case state.Moving:
		mover.Fill.RGBA = sketch.Yellow
		s.Say("Object is moving PAST the reference point", false)
	default:
		mover.Fill.RGBA = sketch.Orange
		s.Say("Click to move object PAST the reference point", false)
	}

	direction := "Right"
	if state.Pass.Dir < 0 {
		direction = "Left"
	}
	s.Info(
		fmt.Sprintf("Position: %d", round(mover.X)),
		fmt.Sprintf("Reference X: %d", round(state.Ref.X)),
		fmt.Sprintf("Has passed: %t", state.Pass.Passed),
		"Direction: "+direction,
	)
}

func referenceMark(scene *sketch.Scene, at geom.Vec, r float64, text string) {
	h := scene.Canvas.Height
	scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: geom.V(at.X, 0), To: geom.V(at.X, h),
		Width: 1, Color: sketch.Alpha(sketch.Blue, 120), Dashed: true})
	scene.Ball(at.Add(geom.V(3, 3)), r, sketch.Alpha(sketch.Dark, 50), sketch.Layer(-1))
	scene.Ball(at, r, sketch.Blue, sketch.Label{Text: text, Color: sketch.White})
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "past",
		Variant:     "oneway",
		Summary:     "The circle travels beyond the reference point",
		Params:      sketch.Params{"speed": 2},
		Setup: func(scene *sketch.Scene) error {
			ref := geom.V(200, 150)
			state := pastState{
				Pass:  Pass{Ref: ref.X, Dir: 1},
				Start: 50,
				Stop:  scene.Canvas.Width + 30,
				Speed: scene.Params.Get("speed"),
			}
			referenceMark(scene, ref, 20, "REF")
			state.Trail = scene.Trail(50, sketch.Orange)
			state.Mover = scene.Ball(geom.V(state.Start, ref.Y), 12.5, sketch.Orange, sketch.Layer(1))
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&pastSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "past",
		Variant:     "bidirectional",
		Summary:     "Send the object past the reference from either side",
		Params:      sketch.Params{"speed": 2},
		Setup: func(scene *sketch.Scene) error {
			ref := geom.V(200, 150)
			state := pastBothState{
				Pass:   Pass{Ref: ref.X, Dir: 1},
				Margin: 50,
				Speed:  scene.Params.Get("speed"),
				Ref:    ref,
			}
			referenceMark(scene, ref, 30, "")
			scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: ref.Add(geom.V(-10, 0)), To: ref.Add(geom.V(10, 0)), Width: 2, Color: sketch.White})
			scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: ref.Add(geom.V(0, -10)), To: ref.Add(geom.V(0, 10)), Width: 2, Color: sketch.White})
			centred(scene, ref.Add(geom.V(0, -40)), "Reference Point", sketch.Ink)

			state.Trail = scene.Trail(150, sketch.Orange)
			state.Marker = scene.Storage.Spawn(sketch.Position{}, sketch.Box{W: 2, H: 40, Centered: true}, sketch.Fill{RGBA: sketch.Green},
				sketch.Label{Text: "Passed here", Offset: geom.V(0, -30), Color: sketch.Green}, sketch.Hidden{})
			state.Span = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 1, Color: sketch.Purple, Dashed: true}, sketch.Hidden{})
			state.Distance = scene.Storage.Spawn(sketch.Position{}, sketch.Label{Color: sketch.Purple}, sketch.Hidden{})
			state.Heading = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Red}, sketch.Layer(2), sketch.Hidden{})
			state.Mover = scene.Ball(geom.V(-state.Margin, ref.Y), 15, sketch.Orange, sketch.Layer(1), labelAbove("Moving Object", 15))

			scene.Button(geom.Rect{X: 250, Y: 10, W: 60, H: 20}, "< Left", "left")
			scene.Button(geom.Rect{X: 320, Y: 10, W: 60, H: 20}, "Right >", "right")
			scene.Button(geom.Rect{X: 250, Y: 35, W: 50, H: 20}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&pastBothSystem{}} }),
	})
}
