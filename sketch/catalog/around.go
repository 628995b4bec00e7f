package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// OrbitPosition returns the point at angle on a circle of the given radius.
func OrbitPosition(centre geom.Vec, radius, angle float64) geom.Vec {
	return centre.Add(geom.V(math.Cos(angle), math.Sin(angle)).Scale(radius))
}

const (
	orbitSpeedStep = 0.005
	orbitSpeedMin  = 0.005
	orbitSpeedMax  = 0.1
	orbitRadiusMin = 30
	orbitRadiusMax = 130
)

type aroundState struct {
	Obstacle ecs.EntityId
	Mover    ecs.EntityId
	Orbit    ecs.EntityId
	Heading  ecs.EntityId
	Angle    float64
	Speed    float64
	Radius   float64
	Moving   bool
	Trail    *geom.Trail
}

type aroundSystem struct {
	sketch.Context
	State ecs.Singleton[aroundState]
}

func (s *aroundSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	obstacle, mover := s.Body(state.Obstacle), s.Body(state.Mover)

	switch {
	case s.Key('+', '='):
		state.Speed = math.Min(state.Speed+orbitSpeedStep, orbitSpeedMax)
	case s.Key('-', '_'):
		state.Speed = math.Max(state.Speed-orbitSpeedStep, orbitSpeedMin)
	}
	switch {
	case s.Key(sketch.KeyUp):
		state.Radius = math.Min(state.Radius+10, orbitRadiusMax)
	case s.Key(sketch.KeyDown):
		state.Radius = math.Max(state.Radius-10, orbitRadiusMin)
	}

	if _, ok := s.Click(); ok {
		state.Moving = !state.Moving
		state.Trail.Clear()
		if !state.Moving {
			state.Angle = 0
		}
	}

	if state.Moving {
		state.Angle += state.Speed
		state.Trail.Push(mover.Vec)
	}
	mover.Vec = OrbitPosition(obstacle.Vec, state.Radius, state.Angle)
	s.Body(state.Orbit).Circle.R = state.Radius

	heading := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Heading)
	heading.From = mover.Vec
	heading.To = mover.Vec.Add(geom.V(math.Cos(state.Angle+math.Pi/2), math.Sin(state.Angle+math.Pi/2)).Scale(20))
	sketch.SetHidden(frame.Commands, s.Body(state.Heading), !state.Moving)

	if state.Moving {
		s.Say("Yellow circle moves AROUND blue obstacle", true)
	} else {
		s.Say("Click to start orbital motion around the obstacle", false)
	}
	s.Info(
		fmt.Sprintf("Speed: %.3f rad/frame", state.Speed),
		fmt.Sprintf("Orbit radius: %d", round(state.Radius)),
		"Keys: +/- speed, Up/Down orbit",
	)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "around",
		Variant:     "orbit",
		Summary:     "A small circle orbits a large obstacle",
		Params:      sketch.Params{"speed": 0.03, "orbitRadius": 80},
		Setup: func(scene *sketch.Scene) error {
			centre := geom.V(280, 150)
			state := aroundState{
				Speed:  scene.Params.Get("speed"),
				Radius: scene.Params.Get("orbitRadius"),
			}
			state.Orbit = ring(scene, centre, state.Radius, sketch.Gray, 1, sketch.Layer(-1))
			state.Trail = scene.Trail(60, sketch.Yellow)
			state.Obstacle = scene.Ball(centre, 50, sketch.Blue)
			state.Mover = scene.Ball(OrbitPosition(centre, state.Radius, 0), 12, sketch.Yellow, sketch.Layer(1))
			state.Heading = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 3, Color: sketch.Red}, sketch.Hidden{})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&aroundSystem{}} }),
	})
}
