package catalog

import (
	"fmt"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// CrossingBarrier reports whether x lies strictly between the barrier's sides.
func CrossingBarrier(barrier geom.Rect, x float64) bool {
	return x > barrier.X && x < barrier.Right()
}

// crossing is a circle travelling in a straight line from Start to End.
type crossing struct {
	Mover      ecs.EntityId
	Start, End geom.Vec
	Progress   geom.Progress
	Moving     bool
	Crossed    bool
	Trail      *geom.Trail
}

func (c *crossing) restart() {
	c.Progress.Reset()
	c.Moving = true
	c.Crossed = false
	c.Trail.Clear()
}

func (c *crossing) reset(mover *sketch.Body) {
	c.Progress.Reset()
	c.Moving = false
	c.Crossed = false
	c.Trail.Clear()
	mover.Vec = c.Start
}

// step advances the crossing by one frame and moves the mover.
func (c *crossing) step(mover *sketch.Body) {
	if !c.Moving {
		return
	}
	c.Progress.Advance()
	if c.Progress.Done() {
		c.Moving = false
		c.Crossed = true
	}
	mover.Vec = geom.LerpVec(c.Start, c.End, c.Progress.Value)
	c.Trail.Push(mover.Vec)
}

type acrossRoomState struct {
	crossing
}

type acrossRoomSystem struct {
	sketch.Context
	State ecs.Singleton[acrossRoomState]
}

func (s *acrossRoomSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)

	if _, ok := s.Click(); ok && !state.Moving {
		state.restart()
		mover.Vec = state.Start
	}
	state.step(mover)

	switch {
	case state.Crossed:
		mover.Fill.RGBA = sketch.Green
		s.Say("Circle moved ACROSS the room", true)
	case state.Moving:
		mover.Fill.RGBA = sketch.Yellow
		s.Say("Circle is moving ACROSS the room", false)
	default:
		mover.Fill.RGBA = sketch.Orange
		s.Say("Click to move circle ACROSS the room", false)
	}
	s.Info(fmt.Sprintf("Progress: %d%%", percent(state.Progress.Value)))
}

type acrossBarrierState struct {
	crossing
	Barrier geom.Rect
}

type acrossBarrierSystem struct {
	sketch.Context
	State ecs.Singleton[acrossBarrierState]
}

var magenta = sketch.Purple

func (s *acrossBarrierSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)

	if s.Action() == "reset" {
		state.reset(mover)
	}
	if _, ok := s.Click(); ok {
		switch {
		case state.Crossed:
			state.restart()
			mover.Vec = state.Start
		case !state.Moving:
			state.restart()
		}
	}
	state.step(mover)

	crossing := CrossingBarrier(state.Barrier, mover.X)
	switch {
	case crossing:
		mover.Fill.RGBA = magenta
	case state.Crossed:
		mover.Fill.RGBA = sketch.Green
	default:
		mover.Fill.RGBA = sketch.Yellow
	}

	switch {
	case state.Moving && crossing:
		s.Say("Circle is moving ACROSS the barrier", true)
	case state.Moving:
		s.Say("Circle is approaching/leaving the barrier", false)
	case state.Crossed:
		s.Say("Circle has moved ACROSS to the other side", true)
	default:
		s.Say("Click to move circle ACROSS the barrier", false)
	}

	s.Info(
		fmt.Sprintf("Progress: %d%%", percent(state.Progress.Value)),
		fmt.Sprintf("Position: (%d, %d)", round(mover.X), round(mover.Y)),
		fmt.Sprintf("Crossing barrier: %t", crossing),
		fmt.Sprintf("Has crossed: %t", state.Crossed),
	)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "across",
		Variant:     "room",
		Summary:     "A circle travels from one wall of a room to the other",
		Params:      sketch.Params{"speed": 0.02},
		Setup: func(scene *sketch.Scene) error {
			room := geom.Rect{X: 50, Y: 80, W: 300, H: 140}
			state := acrossRoomState{crossing{
				Start:    geom.V(70, 150),
				End:      geom.V(330, 150),
				Progress: geom.Progress{Step: scene.Params.Get("speed")},
			}}
			scene.Outline(room, sketch.Dark, 3, sketch.Fill{RGBA: sketch.Alpha(sketch.Gray, 60)}, sketch.Layer(-2))
			state.Trail = scene.Trail(80, sketch.Yellow)
			scene.Ball(state.Start, 6, sketch.Green, sketch.Layer(-1), sketch.Label{Text: "Start", Offset: geom.V(0, 20), Color: sketch.Ink})
			scene.Ball(state.End, 6, sketch.Red, sketch.Layer(-1), sketch.Label{Text: "End", Offset: geom.V(0, 20), Color: sketch.Ink})
			state.Mover = scene.Ball(state.Start, 15, sketch.Orange)
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&acrossRoomSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "across",
		Variant:     "barrier",
		Summary:     "A circle crosses a vertical barrier; it turns magenta while inside it",
		Params:      sketch.Params{"speed": 0.015},
		Setup: func(scene *sketch.Scene) error {
			state := acrossBarrierState{
				crossing: crossing{
					Start:    geom.V(50, 150),
					End:      geom.V(350, 150),
					Progress: geom.Progress{Step: scene.Params.Get("speed")},
				},
				Barrier: geom.Rect{X: 180, Y: 50, W: 40, H: 200},
			}
			scene.Line(state.Start, state.End, sketch.Alpha(sketch.Gray, 100), 2)
			scene.Outline(state.Barrier, sketch.Blue, 3, sketch.Fill{RGBA: sketch.Alpha(sketch.Blue, 100)}, sketch.Layer(-1),
				sketch.Label{Text: "Barrier", Offset: geom.V(0, -state.Barrier.H/2-10), Color: sketch.Ink})
			state.Trail = scene.Trail(100, sketch.Yellow)
			scene.Ball(state.Start, 6, sketch.Green, sketch.Layer(-1), labelAbove("Start", 3))
			scene.Ball(state.End, 6, sketch.Red, sketch.Layer(-1), labelAbove("End", 3))
			state.Mover = scene.Ball(state.Start, 15, sketch.Yellow, labelAbove("Moving Circle", 13))
			scene.Button(geom.Rect{X: 10, Y: 75, W: 60, H: 25}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&acrossBarrierSystem{}} }),
	})
}
