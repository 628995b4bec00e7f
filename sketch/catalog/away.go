package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// Flight is a body fleeing from a source point in a straight line.
type Flight struct {
	Source    geom.Vec
	Speed     float64
	MaxFrames int
	MaxDist   float64
	Margin    float64
	Frames    int
	Moving    bool
}

// Step moves pos one frame away from the source inside bounds shrunk by the
// margin. It stops the flight on the frame limit, at the distance limit, or
// when the next step would leave the safe area.
func (f *Flight) Step(pos geom.Vec, bounds geom.Rect) geom.Vec {
	if !f.Moving {
		return pos
	}
	d := pos.Dist(f.Source)
	if f.Frames >= f.MaxFrames || d >= f.MaxDist || d == 0 {
		f.Moving = false
		return pos
	}
	next := pos.Add(pos.Sub(f.Source).Normalize().Scale(f.Speed))
	safe := geom.Rect{X: bounds.X + f.Margin, Y: bounds.Y + f.Margin, W: bounds.W - 2*f.Margin, H: bounds.H - 2*f.Margin}
	if !safe.ContainsStrict(next) {
		f.Moving = false
		return pos
	}
	f.Frames++
	return next
}

type awayState struct {
	Flight  Flight
	Shown   bool
	Trail   *geom.Trail
	Circle  ecs.EntityId
	Source  []ecs.EntityId
	Line    ecs.EntityId
	Arrow   ecs.EntityId
	Origins []geom.Vec
}

type awaySystem struct {
	sketch.Context
	State ecs.Singleton[awayState]
}

func (s *awaySystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	circle := s.Body(state.Circle)
	f := &state.Flight

	if s.Action() == "reset" {
		circle.Vec = canvas.Center()
		f.Moving = false
		f.Frames = 0
		state.Shown = false
		state.Trail.Clear()
	}
	if p, ok := s.Click(); ok {
		f.Source = p
		f.Moving = true
		f.Frames = 0
		state.Shown = true
		state.Trail.Clear()
	}

	before := circle.Vec
	circle.Vec = f.Step(circle.Vec, canvas.Bounds())
	if circle.Vec != before {
		state.Trail.Push(circle.Vec)
	}

	for i, id := range state.Source {
		b := s.Body(id)
		b.Vec = f.Source.Add(state.Origins[i])
		sketch.SetHidden(frame.Commands, b, !state.Shown)
	}
	if seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Line); seg != nil {
		seg.From, seg.To = f.Source, circle.Vec
	}

	away := circle.Sub(f.Source)
	distance := away.Len()
	showLine := f.Moving && state.Shown && distance > 5
	showArrow := showLine && distance > 30
	if showArrow {
		angle := away.Angle()
		tip := circle.Vec
		side := func(spread float64) geom.Vec {
			return tip.Sub(geom.V(math.Cos(angle+spread), math.Sin(angle+spread)).Scale(8))
		}
		ecs.ReadComponent[sketch.Polyline](frame.Storage, state.Arrow).Points = []geom.Vec{side(-0.5), tip, side(0.5)}
	}
	sketch.SetHidden(frame.Commands, s.Body(state.Line), !showLine)
	sketch.SetHidden(frame.Commands, s.Body(state.Arrow), !showArrow)

	switch {
	case f.Moving:
		s.Say("Circle is moving AWAY from the source", false)
	case state.Shown && distance >= f.MaxDist:
		s.Say("Circle has moved far AWAY (reached max distance)", true)
	case state.Shown:
		s.Say("Circle stopped AWAY from the source", true)
	default:
		s.Say("Click to set a source point", false)
	}
	s.Info(
		fmt.Sprintf("Distance from source: %d", round(distance)),
		fmt.Sprintf("Max distance: %d", round(f.MaxDist)),
		fmt.Sprintf("Speed: %g pixels/frame", f.Speed),
		fmt.Sprintf("Moving: %t", f.Moving),
		fmt.Sprintf("Movement frames: %d/%d", f.Frames, f.MaxFrames),
	)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "away",
		Variant:     "flee",
		Summary:     "The circle flees from the point you click",
		Params:      sketch.Params{"speed": 2, "maxDistance": 120, "maxFrames": 100},
		Setup: func(scene *sketch.Scene) error {
			state := awayState{
				Flight: Flight{
					Source:    geom.V(100, 100),
					Speed:     scene.Params.Get("speed"),
					MaxFrames: scene.Params.Int("maxFrames"),
					MaxDist:   scene.Params.Get("maxDistance"),
					Margin:    20,
				},
			}
			hidden := sketch.Hidden{}
			add := func(offset geom.Vec, id ecs.EntityId) {
				state.Source = append(state.Source, id)
				state.Origins = append(state.Origins, offset)
			}
			src := state.Flight.Source
			add(geom.Vec{}, ring(scene, src, state.Flight.MaxDist, sketch.Alpha(sketch.Gray, 100), 1, hidden, sketch.Layer(-2)))
			for i := 1; i <= 3; i++ {
				add(geom.Vec{}, ring(scene, src, 6*float64(i), sketch.Alpha(sketch.Red, 60), 1, hidden, sketch.Layer(-1)))
			}
			add(geom.Vec{}, scene.Ball(src, 10, sketch.Alpha(sketch.Red, 200), hidden,
				sketch.Label{Text: "Source Point", Offset: geom.V(0, 22), Color: sketch.Ink}))
			add(geom.V(-10, 0), scene.Storage.Spawn(sketch.Position{Vec: src}, sketch.Box{W: 20, H: 1}, sketch.Fill{RGBA: sketch.Red}, hidden))
			add(geom.V(0, -10), scene.Storage.Spawn(sketch.Position{Vec: src}, sketch.Box{W: 1, H: 20}, sketch.Fill{RGBA: sketch.Red}, hidden))

			state.Trail = scene.Trail(50, sketch.Yellow)
			state.Line = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 1, Color: sketch.Alpha(sketch.Red, 150)}, hidden)
			state.Arrow = scene.Storage.Spawn(sketch.Position{}, sketch.Polyline{Width: 2, Color: sketch.Red}, hidden)
			state.Circle = scene.Storage.Spawn(sketch.Position{Vec: scene.Canvas.Center()}, sketch.Circle{R: 12.5},
				sketch.Fill{RGBA: sketch.Yellow}, sketch.Stroke{Color: sketch.Orange, Width: 2}, sketch.Layer(1),
				labelAbove("Moving Circle", 8))
			scene.Button(geom.Rect{X: 10, Y: 90, W: 60, H: 25}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&awaySystem{}} }),
	})
}
