package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// Stacking tells which of two rectangles is under the other. A rectangle is
// under when its top edge is below the other's bottom edge.
type Stacking int

const (
	SameLevel Stacking = iota
	SecondUnder
	FirstUnder
)

// StackOrder compares a and b vertically.
func StackOrder(a, b geom.Rect) Stacking {
	switch {
	case b.Y > a.Bottom():
		return SecondUnder
	case a.Y > b.Bottom():
		return FirstUnder
	}
	return SameLevel
}

type underStackState struct {
	Upper, Lower         ecs.EntityId
	UpperHome, LowerHome geom.Vec
	Grid                 []ecs.EntityId
	Shadows              [2]ecs.EntityId
	Link                 ecs.EntityId
	Tags                 [2]ecs.EntityId
	ShowGrid             bool
	ShowShadows          bool
	GridButton           ecs.EntityId
	ShadowsButton        ecs.EntityId
}

type underStackSystem struct {
	sketch.Context
	State ecs.Singleton[underStackState]
}

func (s *underStackSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	upper, lower := s.Body(state.Upper), s.Body(state.Lower)

	action := s.Action()
	switch {
	case action == "grid" || s.Key('g', 'G'):
		state.ShowGrid = !state.ShowGrid
	case action == "shadows" || s.Key('s', 'S'):
		state.ShowShadows = !state.ShowShadows
	case action == "reset" || s.Key('r', 'R'):
		upper.Vec, lower.Vec = state.UpperHome, state.LowerHome
	}
	toggleText(frame.Storage, state.GridButton, state.ShowGrid, "Grid")
	toggleText(frame.Storage, state.ShadowsButton, state.ShowShadows, "Shadows")
	for _, id := range state.Grid {
		sketch.SetHidden(frame.Commands, s.Body(id), !state.ShowGrid)
	}

	ur, lr := upper.Rect(), lower.Rect()
	for i, r := range []geom.Rect{ur, lr} {
		shadow := s.Body(state.Shadows[i])
		shadow.Vec = geom.V(r.Center().X, r.Bottom()+10)
		sketch.SetHidden(frame.Commands, shadow, !state.ShowShadows)

		tag := s.Body(state.Tags[i])
		tag.Vec = geom.V(r.X, r.Y-18)
		tag.Caption.Text = fmt.Sprintf("y: %d", round(r.Y))
	}

	aligned := ur.OverlapsX(lr)
	link := s.Body(state.Link)
	if aligned {
		x := (max(ur.X, lr.X) + min(ur.Right(), lr.Right())) / 2
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Link)
		seg.From, seg.To = geom.V(x, ur.Bottom()), geom.V(x, lr.Y)
	}
	sketch.SetHidden(frame.Commands, link, !aligned)

	switch StackOrder(ur, lr) {
	case SecondUnder:
		s.Say("Lower Object is UNDER Upper Object", true)
	case FirstUnder:
		s.Say("Upper Object is UNDER Lower Object", true)
	default:
		s.Say("Objects are at similar vertical levels", false)
	}

	alignment := "Objects are not horizontally aligned"
	if aligned {
		alignment = "Objects are horizontally aligned"
	}
	s.Info(alignment, fmt.Sprintf("Vertical separation: %d pixels", round(math.Abs(ur.Bottom()-lr.Y))))
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "under",
		Variant:     "arc",
		Summary:     "The circle dips below the bridge from one side to the other",
		Params:      sketch.Params{"control": 260},
		Setup: func(scene *sketch.Scene) error {
			return setupArc(scene, underArc, geom.V(200, 120))
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&arcSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "under",
		Variant:     "stack",
		Summary:     "Drag two blocks to see which one is under the other",
		Setup: func(scene *sketch.Scene) error {
			state := underStackState{
				UpperHome:   geom.V(200, 80),
				LowerHome:   geom.V(180, 180),
				ShowGrid:    true,
				ShowShadows: true,
			}
			w, h := scene.Canvas.Width, scene.Canvas.Height
			grid := sketch.Alpha(sketch.Gray, 90)
			for y := 0.0; y <= h; y += 20 {
				state.Grid = append(state.Grid, scene.Storage.Spawn(sketch.Position{},
					sketch.Segment{From: geom.V(0, y), To: geom.V(w, y), Width: 1, Color: grid}))
				if int(y)%40 == 0 {
					state.Grid = append(state.Grid, scene.Text(geom.V(5, y+2), fmt.Sprintf("y=%d", int(y)), sketch.Muted))
				}
			}
			for x := 0.0; x <= w; x += 20 {
				state.Grid = append(state.Grid, scene.Storage.Spawn(sketch.Position{},
					sketch.Segment{From: geom.V(x, 0), To: geom.V(x, h), Width: 1, Color: grid}))
			}

			for i, width := range []float64{100, 80} {
				state.Shadows[i] = scene.Storage.Spawn(sketch.Position{}, sketch.Box{W: width + 20, H: 8, Centered: true},
					sketch.Fill{RGBA: sketch.Alpha(sketch.Dark, 40)}, sketch.Layer(-1))
				state.Tags[i] = scene.Text(geom.Vec{}, "", sketch.Ink)
			}
			state.GridButton = scene.Button(geom.Rect{X: 250, Y: 10, W: 70, H: 20}, "Hide Grid", "grid")
			state.ShadowsButton = scene.Button(geom.Rect{X: 325, Y: 10, W: 70, H: 20}, "Hide Shadows", "shadows")
			scene.Button(geom.Rect{X: 250, Y: 35, W: 50, H: 20}, "Reset", "reset")
			state.Link = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Red, Dashed: true}, sketch.Hidden{})

			drag := sketch.Draggable{KeepOffset: true, Constrain: true}
			state.Upper = scene.Rect(geom.Rect{X: 200, Y: 80, W: 100, H: 40}, sketch.Blue, drag,
				sketch.Stroke{Color: sketch.Dark, Width: 1}, sketch.Label{Text: "Upper Object", Color: sketch.White})
			state.Lower = scene.Rect(geom.Rect{X: 180, Y: 180, W: 80, H: 30}, sketch.Orange, withOrder(drag, 1),
				sketch.Stroke{Color: sketch.Dark, Width: 1}, sketch.Label{Text: "Lower Object", Color: sketch.Ink})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&underStackSystem{}} }),
	})
}
