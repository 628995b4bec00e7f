package catalog

import (
	"fmt"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// AboveRelation describes which circle is higher. Smaller y is higher on the canvas.
func AboveRelation(blueY, redY float64) string {
	switch {
	case blueY < redY:
		return "Blue is ABOVE red"
	case redY < blueY:
		return "Red is ABOVE blue"
	}
	return "Circles are at SAME level"
}

// BelowRelation describes which circle is lower. Larger y is lower on the canvas.
func BelowRelation(greenY, orangeY float64) string {
	switch {
	case greenY > orangeY:
		return "Green is BELOW orange"
	case orangeY > greenY:
		return "Orange is BELOW green"
	}
	return "Circles are at SAME level"
}

type levelState struct {
	First, Second ecs.EntityId
	FirstLine     ecs.EntityId
	SecondLine    ecs.EntityId
	FirstName     string
	SecondName    string
	Relate        func(firstY, secondY float64) string
}

type levelSystem struct {
	sketch.Context
	State ecs.Singleton[levelState]
}

func (s *levelSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	first, second := s.Body(state.First), s.Body(state.Second)
	width := s.Canvas.Get().Width

	for _, pair := range []struct {
		body *sketch.Body
		line ecs.EntityId
	}{{first, state.FirstLine}, {second, state.SecondLine}} {
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, pair.line)
		seg.From = geom.V(0, pair.body.Y)
		seg.To = geom.V(width, pair.body.Y)
	}

	s.Say(state.Relate(first.Y, second.Y), first.Y != second.Y)
	s.Info(
		fmt.Sprintf("%s y: %d", state.FirstName, round(first.Y)),
		fmt.Sprintf("%s y: %d", state.SecondName, round(second.Y)),
		"Drag the circles to change the relationship",
	)
}

func setupLevels(scene *sketch.Scene, names [2]string, colors [2]sketch.Fill, at [2]geom.Vec, relate func(a, b float64) string) {
	const r = 20
	width := scene.Canvas.Width
	state := levelState{FirstName: names[0], SecondName: names[1], Relate: relate}

	state.FirstLine = scene.Storage.Spawn(hline(at[0].Y, width, colors[0]))
	state.SecondLine = scene.Storage.Spawn(hline(at[1].Y, width, colors[1]))
	state.First = scene.Ball(at[0], r, colors[0].RGBA, labelAbove(names[0], r),
		sketch.Draggable{Order: 0, Constrain: true})
	state.Second = scene.Ball(at[1], r, colors[1].RGBA, labelAbove(names[1], r),
		sketch.Draggable{Order: 1, Constrain: true})
	scene.Singleton(state)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "above",
		Variant:     "classic",
		Summary:     "Drag two circles; the one with the smaller y is above",
		Setup: func(scene *sketch.Scene) error {
			setupLevels(scene, [2]string{"Blue", "Red"}, [2]sketch.Fill{{sketch.Blue}, {sketch.Red}},
				[2]geom.Vec{geom.V(120, 100), geom.V(280, 180)}, AboveRelation)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&levelSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "below",
		Variant:     "classic",
		Summary:     "Drag two circles; the one with the larger y is below",
		Setup: func(scene *sketch.Scene) error {
			setupLevels(scene, [2]string{"Green", "Orange"}, [2]sketch.Fill{{sketch.Green}, {sketch.Orange}},
				[2]geom.Vec{geom.V(150, 80), geom.V(250, 200)}, BelowRelation)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&levelSystem{}} }),
	})
}
