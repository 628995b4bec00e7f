package catalog

import (
	"fmt"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// BehindRelation describes how much of the back circle the front one hides.
func BehindRelation(back, front geom.Circle) string {
	percent := geom.OverlapPercent(back, front)
	if percent <= 0 {
		return "No overlap - no behind relationship"
	}
	return fmt.Sprintf("Blue is %d%% BEHIND Red", round(percent))
}

type behindState struct {
	Back, Front ecs.EntityId
	Badge       ecs.EntityId
}

type behindSystem struct {
	sketch.Context
	State ecs.Singleton[behindState]
}

func (s *behindSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	back, front := s.Body(state.Back), s.Body(state.Front)
	a, b := back.Shape(), front.Shape()
	percent := geom.OverlapPercent(a, b)
	overlapping := percent > 0

	backStroke := ecs.ReadComponent[sketch.Stroke](frame.Storage, state.Back)
	frontStroke := ecs.ReadComponent[sketch.Stroke](frame.Storage, state.Front)
	*backStroke = sketch.Stroke{Color: sketch.Ink, Width: 2}
	*frontStroke = sketch.Stroke{Color: sketch.Ink, Width: 2}
	if overlapping {
		*backStroke = sketch.Stroke{Color: sketch.Red, Width: 3}
		*frontStroke = sketch.Stroke{Color: sketch.Green, Width: 3}
	}

	badge := s.Body(state.Badge)
	badge.Vec = a.C.Add(geom.V(-10, -6))
	badge.Caption.Text = ""
	if overlapping {
		badge.Caption.Text = fmt.Sprintf("%d%%", round(percent))
	}

	s.Say(BehindRelation(a, b), overlapping)
	s.Info(
		fmt.Sprintf("Distance: %d", round(a.C.Dist(b.C))),
		"Drag circles; blue is always behind, red always in front",
	)
}

func setupBehind(scene *sketch.Scene, r float64, backLabel, frontLabel string) error {
	state := behindState{}
	// drawn in depth order, picked topmost first
	state.Back = scene.Ball(geom.V(120, 150), r, sketch.Blue, sketch.Layer(1), labelAbove(backLabel, r),
		sketch.Draggable{Order: 1})
	state.Front = scene.Ball(geom.V(280, 150), r, sketch.Red, sketch.Layer(2), labelAbove(frontLabel, r),
		sketch.Draggable{Order: 0})
	state.Badge = scene.Storage.Spawn(sketch.Position{Vec: geom.V(120, 150)}, sketch.Caption{Color: sketch.White})
	scene.Singleton(state)
	return nil
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "behind",
		Variant:     "classic",
		Summary:     "Drag the circles so the red one covers part of the blue one",
		Params:      sketch.Params{"radius": 25},
		Setup: func(scene *sketch.Scene) error {
			return setupBehind(scene, scene.Params.Get("radius"), "Blue", "Red")
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&behindSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "behind",
		Variant:     "large",
		Summary:     "Large discs labelled Back and Front",
		Params:      sketch.Params{"radius": 55},
		Setup: func(scene *sketch.Scene) error {
			return setupBehind(scene, scene.Params.Get("radius"), "Back", "Front")
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&behindSystem{}} }),
	})
}
