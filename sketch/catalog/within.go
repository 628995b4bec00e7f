package catalog

import (
	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// IsWithin reports whether a point lies inside the container, edges included.
func IsWithin(container geom.Rect, p geom.Vec) bool {
	return container.ContainsInclusive(p)
}

func withinText(name string, within bool) string {
	if within {
		return name + " circle: within"
	}
	return name + " circle: not within"
}

type withinState struct {
	Container             geom.Rect
	Orange, Green         ecs.EntityId
	OrangeHome, GreenHome geom.Vec
	Guides                []ecs.EntityId
	ShowGuides            bool
	ShowDistances         bool
	GuidesButton          ecs.EntityId
	DistancesButton       ecs.EntityId
}

type withinSystem struct {
	sketch.Context
	State ecs.Singleton[withinState]
}

var (
	withinIn  = sketch.Stroke{Color: sketch.Green, Width: 3}
	withinOut = sketch.Stroke{Color: sketch.Red, Width: 2}
)

func (s *withinSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()

	orange, green := s.Body(state.Orange), s.Body(state.Green)

	action := s.Action()
	switch {
	case action == "boundaries" || s.Key('b'):
		state.ShowGuides = !state.ShowGuides
	case action == "distances" || s.Key('d'):
		state.ShowDistances = !state.ShowDistances
	case action == "reset" || s.Key('r'):
		orange.Vec, green.Vec = state.OrangeHome, state.GreenHome
	}
	toggleText(frame.Storage, state.GuidesButton, state.ShowGuides, "Boundaries")
	toggleText(frame.Storage, state.DistancesButton, state.ShowDistances, "Distances")
	for _, id := range state.Guides {
		sketch.SetHidden(frame.Commands, s.Body(id), !state.ShowGuides)
	}

	orangeIn := IsWithin(state.Container, orange.Vec)
	greenIn := IsWithin(state.Container, green.Vec)

	stroke := ecs.ReadComponent[sketch.Stroke](frame.Storage, state.Orange)
	*stroke = withinOut
	if orangeIn {
		*stroke = withinIn
	}

	s.Say(withinText("Orange", orangeIn)+" | "+withinText("Green", greenIn), orangeIn)

	s.Info()
	if state.ShowDistances {
		centre := state.Container.Center()
		s.Infof("Orange to centre: %d", round(orange.Dist(centre)))
		s.Infof("Green to centre: %d", round(green.Dist(centre)))
	}
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "within",
		Variant:     "classic",
		Summary:     "A circle is within the container while its centre is inside the rectangle",
		Setup: func(scene *sketch.Scene) error {
			container := geom.Rect{X: 100, Y: 80, W: 200, H: 140}
			state := withinState{
				Container:  container,
				OrangeHome: geom.V(150, 120),
				GreenHome:  geom.V(50, 50),
				ShowGuides: true,
			}

			scene.Rect(container, sketch.Alpha(sketch.Blue, 100), sketch.Stroke{Color: sketch.Dark, Width: 3}, sketch.Layer(-1))
			state.Guides = dashedRect(scene, container, sketch.Gray)
			const margin = 10
			inner := geom.Rect{X: container.X + margin, Y: container.Y + margin, W: container.W - 2*margin, H: container.H - 2*margin}
			state.Guides = append(state.Guides, dashedRect(scene, inner, sketch.Alpha(sketch.Red, 100))...)

			state.GuidesButton = scene.Button(geom.Rect{X: 250, Y: 10, W: 90, H: 20}, "Hide Boundaries", "boundaries")
			state.DistancesButton = scene.Button(geom.Rect{X: 250, Y: 35, W: 90, H: 20}, "Show Distances", "distances")
			scene.Button(geom.Rect{X: 350, Y: 10, W: 40, H: 20}, "Reset", "reset")

			drag := sketch.Draggable{KeepOffset: true, Constrain: true, Rim: true}
			state.Orange = scene.Ball(state.OrangeHome, 20, sketch.Orange, drag)
			state.Green = scene.Ball(state.GreenHome, 15, sketch.Green, withOrder(drag, 1))
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&withinSystem{}} }),
	})
}
