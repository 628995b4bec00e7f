package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// Alignment holds the tuning of the beside test.
type Alignment struct {
	// Tolerance is the largest vertical offset that still counts as level.
	Tolerance float64
	// Snap is the largest horizontal distance between centres that counts as beside.
	Snap float64
}

// BesideSquare returns "left" or "right" when the circle sits level with the
// square, clear of it by at least 10px and no further than the snap distance.
// It returns "" otherwise.
func BesideSquare(centre geom.Vec, size float64, c geom.Circle, a Alignment) string {
	dx := math.Abs(c.C.X - centre.X)
	dy := math.Abs(c.C.Y - centre.Y)
	if dy > a.Tolerance || dx < size/2+c.R+10 || dx > a.Snap {
		return ""
	}
	if c.C.X < centre.X {
		return "left"
	}
	return "right"
}

// SnapBeside pulls a released circle that is nearly level with the square
// onto the square's row, and next to it when it is within snapping distance.
func SnapBeside(centre geom.Vec, size float64, c geom.Circle, a Alignment) geom.Vec {
	p := c.C
	if math.Abs(p.Y-centre.Y) > a.Tolerance*1.5 {
		return p
	}
	p.Y = centre.Y
	gap := size/2 + c.R + 20
	if dx := math.Abs(p.X - centre.X); dx < a.Snap {
		switch {
		case p.X < centre.X:
			p.X = centre.X - gap
		case p.X > centre.X:
			p.X = centre.X + gap
		}
	}
	return p
}

type besideState struct {
	Centre  geom.Vec
	Size    float64
	Align   Alignment
	Square  ecs.EntityId
	Circle  ecs.EntityId
	Band    ecs.EntityId
	Zones   []ecs.EntityId
	Link    ecs.EntityId
	Measure ecs.EntityId
	Home    geom.Vec
}

type besideSystem struct {
	sketch.Context
	State ecs.Singleton[besideState]
}

func (s *besideSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	circle := s.Body(state.Circle)
	r := circle.Circle.R
	gap := state.Size/2 + r + 20

	switch {
	case s.Key('1'):
		circle.Vec = geom.V(state.Centre.X-gap, state.Centre.Y)
	case s.Key('2'):
		circle.Vec = geom.V(state.Centre.X+gap, state.Centre.Y)
	case s.Key('3'):
		circle.Vec = geom.V(state.Centre.X, state.Centre.Y-80)
	case s.Key('r', 'R'):
		circle.Vec = state.Home
	}
	if circle.Drag.JustReleased {
		circle.Vec = SnapBeside(state.Centre, state.Size, circle.Shape(), state.Align)
	}

	side := BesideSquare(state.Centre, state.Size, circle.Shape(), state.Align)
	beside := side != ""
	dx, dy := math.Abs(circle.X-state.Centre.X), math.Abs(circle.Y-state.Centre.Y)

	square := s.Body(state.Square)
	if beside {
		square.Fill.RGBA = sketch.Green
		circle.Fill.RGBA = sketch.Green
	} else {
		square.Fill.RGBA = sketch.Blue
		circle.Fill.RGBA = sketch.Yellow
	}
	sketch.SetHidden(frame.Commands, s.Body(state.Band), dy > state.Align.Tolerance)
	for _, id := range state.Zones {
		sketch.SetHidden(frame.Commands, s.Body(id), beside)
	}

	link := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Link)
	link.From, link.To = circle.Vec, state.Centre
	sketch.SetHidden(frame.Commands, s.Body(state.Link), !beside)
	measure := s.Body(state.Measure)
	measure.Vec = geom.LerpVec(circle.Vec, state.Centre, 0.5).Add(geom.V(-12, -18))
	measure.Caption.Text = fmt.Sprintf("%dpx", round(circle.Dist(state.Centre)))
	sketch.SetHidden(frame.Commands, measure, !beside)

	if beside {
		s.Say(fmt.Sprintf("Circle is BESIDE the square (%s side)!", side), true)
	} else {
		s.Say("Circle is NOT beside the square", false)
	}

	status := "STATUS: NOT BESIDE"
	if beside {
		status = "STATUS: BESIDE (" + side + ")"
	}
	s.Info(
		status,
		fmt.Sprintf("Circle: (%d, %d)", round(circle.X), round(circle.Y)),
		fmt.Sprintf("Square: (%d, %d)", round(state.Centre.X), round(state.Centre.Y)),
		fmt.Sprintf("H-Distance: %dpx", round(dx)),
		fmt.Sprintf("V-Distance: %dpx", round(dy)),
	)
}

// BesideZone returns which zone flanking the rectangle holds p: "left",
// "right" or "". Zones are zoneW wide, zoneH tall and centred on the
// rectangle's row. Edges count as inside.
func BesideZone(rect geom.Rect, zoneW, zoneH float64, p geom.Vec) string {
	centre := rect.Center()
	left := geom.Rect{X: rect.X - zoneW, Y: centre.Y - zoneH/2, W: zoneW, H: zoneH}
	right := geom.Rect{X: rect.Right(), Y: left.Y, W: zoneW, H: zoneH}
	switch {
	case left.ContainsInclusive(p):
		return "left"
	case right.ContainsInclusive(p):
		return "right"
	}
	return ""
}

type besideZonesState struct {
	Rect         geom.Rect
	ZoneW, ZoneH float64
	Circle       ecs.EntityId
	Zones        [2]ecs.EntityId
}

type besideZonesSystem struct {
	sketch.Context
	State ecs.Singleton[besideZonesState]
}

func (s *besideZonesSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	circle := s.Body(state.Circle)
	side := BesideZone(state.Rect, state.ZoneW, state.ZoneH, circle.Vec)

	circle.Fill.RGBA = sketch.Orange
	for i, name := range []string{"left", "right"} {
		zone := s.Body(state.Zones[i])
		zone.Fill.RGBA = sketch.Alpha(sketch.Green, 50)
		if side == name {
			zone.Fill.RGBA = sketch.Alpha(sketch.Green, 120)
			circle.Fill.RGBA = sketch.Green
		}
	}

	if side == "" {
		s.Say("Circle is NOT beside the rectangle", false)
		return
	}
	s.Say("Circle is BESIDE the rectangle ("+side+")", true)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "beside",
		Variant:     "classic",
		Summary:     "Drag the circle level with the square and just to one side of it",
		Params:      sketch.Params{"alignmentTolerance": 30, "snapDistance": 80},
		Setup: func(scene *sketch.Scene) error {
			state := besideState{
				Centre: geom.V(200, 150),
				Size:   60,
				Home:   geom.V(100, 100),
				Align: Alignment{
					Tolerance: scene.Params.Get("alignmentTolerance"),
					Snap:      scene.Params.Get("snapDistance"),
				},
			}
			width := scene.Canvas.Width
			tol, snap := state.Align.Tolerance, state.Align.Snap

			scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: geom.V(0, state.Centre.Y), To: geom.V(width, state.Centre.Y),
				Width: 1, Color: sketch.Gray, Dashed: true})
			state.Band = scene.Rect(geom.Rect{Y: state.Centre.Y - tol, W: width, H: 2 * tol}, sketch.Alpha(sketch.Green, 40),
				sketch.Layer(-2), sketch.Label{Text: "ALIGNED", Offset: geom.V(-width/2+35, 0), Color: sketch.Green})
			for _, dir := range []float64{-1, 1} {
				zone := geom.RectCentered(geom.V(state.Centre.X+dir*(state.Size/2+snap/2), state.Centre.Y), snap, state.Size+2*tol)
				name := "BESIDE (left)"
				if dir > 0 {
					name = "BESIDE (right)"
				}
				state.Zones = append(state.Zones, scene.Outline(zone, sketch.Alpha(sketch.Green, 120), 1,
					sketch.Fill{RGBA: sketch.Alpha(sketch.Green, 30)}, sketch.Layer(-1),
					sketch.Label{Text: name, Color: sketch.Alpha(sketch.Green, 200)}))
			}
			state.Square = scene.Storage.Spawn(sketch.Position{Vec: state.Centre}, sketch.Box{W: state.Size, H: state.Size, Centered: true},
				sketch.Fill{RGBA: sketch.Blue}, sketch.Stroke{Color: sketch.Dark, Width: 2})
			state.Link = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Green}, sketch.Hidden{})
			state.Measure = scene.Storage.Spawn(sketch.Position{}, sketch.Caption{Color: sketch.Green}, sketch.Hidden{})
			state.Circle = scene.Ball(state.Home, 20, sketch.Yellow, sketch.Layer(1), sketch.Draggable{Constrain: true})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&besideSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "beside",
		Variant:     "zones",
		Summary:     "Drag the circle into one of the zones flanking the rectangle",
		Params:      sketch.Params{"zoneWidth": 60, "zoneHeight": 140},
		Setup: func(scene *sketch.Scene) error {
			state := besideZonesState{
				Rect:  geom.RectCentered(geom.V(200, 150), 80, 140),
				ZoneW: scene.Params.Get("zoneWidth"),
				ZoneH: scene.Params.Get("zoneHeight"),
			}
			scene.Rect(state.Rect, sketch.Blue, sketch.Stroke{Color: sketch.Dark, Width: 2})
			centre := state.Rect.Center()
			for i, x := range []float64{state.Rect.X - state.ZoneW, state.Rect.Right()} {
				zone := geom.Rect{X: x, Y: centre.Y - state.ZoneH/2, W: state.ZoneW, H: state.ZoneH}
				state.Zones[i] = scene.Outline(zone, sketch.Green, 1, sketch.Fill{RGBA: sketch.Alpha(sketch.Green, 50)}, sketch.Layer(-1),
					sketch.Label{Text: "BESIDE", Offset: geom.V(0, state.ZoneH/2+15), Color: sketch.Green})
			}
			state.Circle = scene.Ball(geom.V(80, 150), 20, sketch.Orange, sketch.Layer(1), sketch.Draggable{Constrain: true})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&besideZonesSystem{}} }),
	})
}
