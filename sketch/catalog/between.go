package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// BetweenZone returns the span a probe must fit in to be between two circles:
// from the inner edge of the left circle to the inner edge of the right one.
func BetweenZone(a, b geom.Circle) (left, right float64) {
	if a.C.X < b.C.X {
		return a.C.X + a.R, b.C.X - b.R
	}
	return b.C.X + b.R, a.C.X - a.R
}

// IsBetween reports whether the whole probe lies inside the between zone.
func IsBetween(a, b, probe geom.Circle) bool {
	left, right := BetweenZone(a, b)
	return probe.Left() >= left && probe.Right() <= right
}

// BetweenRelation classifies the probe against two boundary circles.
func BetweenRelation(a, b, probe geom.Circle) string {
	if IsBetween(a, b, probe) {
		return "Green is BETWEEN blue and red"
	}
	switch {
	case probe.C.X < math.Min(a.C.X, b.C.X):
		return "Green is to the LEFT of both circles"
	case probe.C.X > math.Max(a.C.X, b.C.X):
		return "Green is to the RIGHT of both circles"
	}
	return "Green is partially between (overlapping boundary)"
}

type betweenState struct {
	Blue, Red, Green ecs.EntityId
	Zone             ecs.EntityId
	Link             ecs.EntityId
}

type betweenSystem struct {
	sketch.Context
	State ecs.Singleton[betweenState]
}

var betweenGray = sketch.Gray

func (s *betweenSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	blue, red, green := s.Body(state.Blue), s.Body(state.Red), s.Body(state.Green)
	a, b, probe := blue.Shape(), red.Shape(), green.Shape()

	between := IsBetween(a, b, probe)
	green.Fill.RGBA = betweenGray
	if between {
		green.Fill.RGBA = sketch.Green
	}

	left, right := BetweenZone(a, b)
	zone := s.Body(state.Zone)
	zone.Vec = geom.V(left, 50)
	zone.Box.W = math.Max(0, right-left)
	zone.Fill.RGBA = sketch.Alpha(sketch.Gray, 40)
	if between {
		zone.Fill.RGBA = sketch.Alpha(sketch.Green, 60)
	}

	link := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Link)
	link.From, link.To = blue.Vec, red.Vec

	s.Say(BetweenRelation(a, b, probe), between)
	minX, maxX := math.Min(a.C.X, b.C.X), math.Max(a.C.X, b.C.X)
	s.Info(
		fmt.Sprintf("Left boundary: %d", round(minX)),
		fmt.Sprintf("Right boundary: %d", round(maxX)),
		fmt.Sprintf("Distance between: %d", round(maxX-minX)),
	)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "between",
		Variant:     "classic",
		Summary:     "Drag the green circle into the gap between blue and red",
		Setup: func(scene *sketch.Scene) error {
			state := betweenState{}
			state.Zone = scene.Rect(geom.Rect{X: 125, Y: 50, W: 150, H: 200}, sketch.Alpha(sketch.Gray, 40), sketch.Layer(-1))
			state.Link = scene.Line(geom.V(100, 150), geom.V(300, 150), sketch.Gray, 2)
			state.Blue = scene.Ball(geom.V(100, 150), 25, sketch.Blue, labelAbove("Blue", 25), sketch.Draggable{Order: 0})
			state.Red = scene.Ball(geom.V(300, 150), 25, sketch.Red, labelAbove("Red", 25), sketch.Draggable{Order: 1})
			state.Green = scene.Ball(geom.V(200, 150), 20, sketch.Green, labelAbove("Green", 20), sketch.Draggable{Order: 2})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&betweenSystem{}} }),
	})
}
