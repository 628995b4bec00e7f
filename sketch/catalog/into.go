package catalog

import (
	"fmt"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// InContainer reports whether the mover lies fully inside the container circle.
func InContainer(container, mover geom.Circle) bool {
	return mover.Inside(container)
}

const intoArcHeight = 80

type intoBoxState struct {
	Box           geom.Rect
	BoxID         ecs.EntityId
	Mover         ecs.EntityId
	Start, Target geom.Vec
	Progress      geom.Progress
	Moving        bool
	Guide         []ecs.EntityId
}

type intoBoxSystem struct {
	sketch.Context
	State ecs.Singleton[intoBoxState]
}

func (s *intoBoxSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)

	if _, ok := s.Click(); ok {
		state.Progress.Reset()
		state.Moving = true
		mover.Vec = state.Start
	}
	if state.Moving {
		state.Progress.Advance()
		mover.Vec = geom.SineArc(state.Start, state.Target, state.Progress.Value, intoArcHeight)
		if state.Progress.Done() {
			state.Moving = false
		}
	}

	inside := state.Box.ContainsStrict(mover.Vec)
	box := s.Body(state.BoxID)
	if inside {
		mover.Fill.RGBA = sketch.Red
		box.Fill.RGBA = sketch.Alpha(sketch.Green, 150)
	} else {
		mover.Fill.RGBA = sketch.Blue
		box.Fill.RGBA = sketch.Alpha(sketch.Gray, 150)
	}
	for _, id := range state.Guide {
		sketch.SetHidden(frame.Commands, s.Body(id), state.Progress.Done())
	}

	switch {
	case state.Progress.Done():
		s.Say("Circle moved INTO the box!", true)
	case state.Moving:
		s.Say("Moving INTO the box...", false)
	default:
		s.Say("Click to move circle INTO the box", false)
	}
	s.Info(fmt.Sprintf("Inside: %t", inside))
}

// intoStarts are the entry points chosen with keys 1 to 4.
var intoStarts = []struct {
	key sketch.Key
	at  geom.Vec
}{
	{'1', geom.V(80, 150)},
	{'2', geom.V(280, 80)},
	{'3', geom.V(380, 150)},
	{'4', geom.V(280, 220)},
}

type intoContainerState struct {
	Container  ecs.EntityId
	Mover      ecs.EntityId
	Path       ecs.EntityId
	Start      geom.Vec
	Progress   geom.Progress
	Moving     bool
	HasEntered bool
	WasOutside bool
	Trail      *geom.Trail
}

type intoContainerSystem struct {
	sketch.Context
	State ecs.Singleton[intoContainerState]
}

func (s *intoContainerSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	container, mover := s.Body(state.Container), s.Body(state.Mover)

	for _, start := range intoStarts {
		if s.Key(start.key) {
			state.Start = start.at
			state.Progress.Reset()
			state.Moving = false
			state.HasEntered = false
			state.Trail.Clear()
			mover.Vec = start.at
		}
	}

	if _, ok := s.Click(); ok && (state.HasEntered || !state.Moving) {
		state.Progress.Reset()
		state.Moving = true
		state.HasEntered = false
		state.WasOutside = true
		state.Trail.Clear()
		mover.Vec = state.Start
	}

	if state.Moving {
		state.Progress.Advance()
		mover.Vec = geom.LerpVec(state.Start, container.Vec, state.Progress.Value)
		state.Trail.Push(mover.Vec)
		if state.Progress.Done() {
			state.Moving = false
			state.HasEntered = true
		}
	}

	inside := InContainer(container.Shape(), mover.Shape())
	if inside && state.WasOutside && !state.Moving {
		state.HasEntered = true
	}
	state.WasOutside = !inside

	stroke := ecs.ReadComponent[sketch.Stroke](frame.Storage, state.Container)
	if inside {
		container.Fill.RGBA = sketch.Alpha(sketch.Green, 100)
		stroke.Color = sketch.Green
	} else {
		container.Fill.RGBA = sketch.Alpha(sketch.Blue, 100)
		stroke.Color = sketch.Blue
	}

	path := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Path)
	path.From, path.To = state.Start, container.Vec
	sketch.SetHidden(frame.Commands, s.Body(state.Path), state.HasEntered)

	switch {
	case state.HasEntered:
		s.Say("Object has entered the container!", true)
	case state.Moving:
		s.Say("Moving INTO the container...", false)
	default:
		s.Say("Click to move the yellow circle INTO the blue container", false)
	}

	status := "OUTSIDE"
	if inside {
		status = "INSIDE"
	}
	s.Info(
		"Status: "+status,
		fmt.Sprintf("Distance from center: %.1fpx", mover.Dist(container.Vec)),
		fmt.Sprintf("Container radius: %dpx", round(container.Circle.R)),
		"Keys 1-4: enter from left, top, right, bottom",
	)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "into",
		Variant:     "box",
		Summary:     "A circle arcs into an open box, seen from the side",
		Params:      sketch.Params{"speed": 0.015},
		Setup: func(scene *sketch.Scene) error {
			state := intoBoxState{
				Box:      geom.Rect{X: 280, Y: 150, W: 100, H: 80},
				Start:    geom.V(80, 200),
				Target:   geom.V(330, 170),
				Progress: geom.Progress{Step: scene.Params.Get("speed")},
			}
			var arc []geom.Vec
			for i := 0; i <= 20; i++ {
				arc = append(arc, geom.SineArc(state.Start, state.Target, float64(i)/20, intoArcHeight))
			}
			state.Guide = dots(scene, arc, 3, sketch.Alpha(sketch.Muted, 120))
			state.Mover = scene.Ball(state.Start, 10, sketch.Blue)
			// drawn after the circle so the box reads as in front of it
			state.BoxID = scene.Outline(state.Box, sketch.Muted, 3, sketch.Fill{RGBA: sketch.Alpha(sketch.Gray, 150)}, sketch.Layer(1))
			scene.Line(geom.V(state.Box.X, state.Box.Y), geom.V(state.Box.Right(), state.Box.Y), sketch.Dark, 4)
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&intoBoxSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "into",
		Variant:     "container",
		Summary:     "A circle travels into a circular container from one of four sides",
		Params:      sketch.Params{"speed": 0.015},
		Setup: func(scene *sketch.Scene) error {
			centre := geom.V(280, 150)
			state := intoContainerState{
				Start:      intoStarts[0].at,
				Progress:   geom.Progress{Step: scene.Params.Get("speed")},
				WasOutside: true,
			}
			state.Container = scene.Storage.Spawn(sketch.Position{Vec: centre}, sketch.Circle{R: 70},
				sketch.Fill{RGBA: sketch.Alpha(sketch.Blue, 100)}, sketch.Stroke{Color: sketch.Blue, Width: 3}, sketch.Layer(-1))
			state.Path = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: state.Start, To: centre, Width: 2, Color: sketch.Alpha(sketch.Gray, 100), Dashed: true})
			state.Trail = scene.Trail(40, sketch.Yellow)
			state.Mover = scene.Ball(state.Start, 15, sketch.Yellow)
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&intoContainerSystem{}} }),
	})
}
