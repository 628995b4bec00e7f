package catalog

import (
	"fmt"
	"image/color"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// EventType is something that happens every Every milliseconds once
// tracking starts.
type EventType struct {
	Name  string
	Color color.RGBA
	Every float64
}

// Occurrence is one logged event, At milliseconds after the reference point.
type Occurrence struct {
	Type  string
	At    float64
	Color color.RGBA
}

var sinceEvents = []EventType{
	{Name: "Circle grows", Color: color.RGBA{100, 255, 100, 255}, Every: 1000},
	{Name: "Color changes", Color: color.RGBA{255, 150, 100, 255}, Every: 1500},
	{Name: "Sound plays", Color: color.RGBA{100, 150, 255, 255}, Every: 2000},
	{Name: "Data updates", Color: color.RGBA{255, 100, 255, 255}, Every: 2500},
}

// Due returns the occurrences that should have happened by elapsed but are
// not yet in the log. A type that fell behind is backfilled with every missed
// occurrence, each stamped with the time it was due.
func Due(types []EventType, log []Occurrence, elapsed float64) []Occurrence {
	var due []Occurrence
	for _, et := range types {
		have := 0
		for _, o := range log {
			if o.Type == et.Name {
				have++
			}
		}
		want := int(math.Floor(elapsed / et.Every))
		for ; have < want; have++ {
			due = append(due, Occurrence{Type: et.Name, At: float64(have+1) * et.Every, Color: et.Color})
		}
	}
	return due
}

// GrowingRadius is the circle's radius ms milliseconds after the reference point.
func GrowingRadius(base, ms float64) float64 {
	return base * (1 + ms/5000)
}

func shiftingColor(ms float64) color.RGBA {
	hue := math.Mod(ms/50, 360)
	return color.RGBA{
		R: uint8(100 + math.Sin(hue*0.1)*50),
		G: uint8(150 + math.Cos(hue*0.08)*50),
		B: uint8(math.Min(255, 255+math.Sin(hue*0.12)*50)),
		A: 255,
	}
}

const (
	sinceBaseRadius = 20
	sinceHistory    = 4
)

type sinceState struct {
	Tracking  bool
	Started   bool
	Reference float64
	Time      float64
	Log       []Occurrence

	Circle  ecs.EntityId
	Radius  ecs.EntityId
	Toggle  ecs.EntityId
	Header  ecs.EntityId
	Lines   [sinceHistory]ecs.EntityId
	Markers [sinceHistory]ecs.EntityId
	Total   ecs.EntityId
}

type sinceSystem struct {
	sketch.Context
	State     ecs.Singleton[sinceState]
	Particles ecs.Query[struct {
		ecs.EntityId
		*sketch.Particle
	}]
}

func (s *sinceSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	rng := *s.Random.Get()

	restart := func(tracking bool) {
		state.Tracking = tracking
		state.Started = tracking
		state.Reference = s.Clock.Get().Elapsed
		state.Time = 0
		state.Log = state.Log[:0]
		for id := range s.Particles.Iter() {
			frame.Commands.Delete(id)
		}
	}
	switch s.Action() {
	case "toggle":
		if state.Tracking {
			state.Tracking = false
		} else {
			restart(true)
		}
	case "reset":
		restart(false)
	}
	if _, ok := s.Click(); ok && !state.Tracking {
		restart(true)
	}

	circle := s.Body(state.Circle)
	if state.Tracking {
		state.Time += frame.DeltaTime
		ms := state.Time * 1000
		circle.Circle.R = GrowingRadius(sinceBaseRadius, ms)
		circle.Fill.RGBA = shiftingColor(ms)

		for _, o := range Due(sinceEvents, state.Log, ms) {
			state.Log = append(state.Log, o)
			for range 5 {
				frame.Commands.Spawn(
					sketch.Position{Vec: geom.V(rng.Range(50, canvas.Width-50), rng.Range(50, canvas.Height-100))},
					sketch.Particle{
						Vel:     geom.V(rng.Range(-2, 2), rng.Range(-3, -1)),
						Gravity: 0.1,
						Life:    1,
						Decay:   1.0 / 60,
						Size:    rng.Range(3, 8),
						Color:   o.Color,
					})
			}
		}
	} else if !state.Started {
		circle.Circle.R = sinceBaseRadius
		circle.Fill.RGBA = sketch.Blue
	}

	r := circle.Circle.R
	circle.Label.Offset = geom.V(0, -r-15)
	radius := s.Body(state.Radius)
	radius.Vec = circle.Add(geom.V(0, r+15))
	radius.Label.Text = fmt.Sprintf("Radius: %.1f", r)
	sketch.SetHidden(frame.Commands, radius, !state.Tracking)

	toggle := ecs.ReadComponent[sketch.Button](frame.Storage, state.Toggle)
	toggle.Text = "Start"
	if state.Tracking {
		toggle.Text = "Stop"
	}

	recent := state.Log[max(0, len(state.Log)-sinceHistory):]
	for i := range sinceHistory {
		line, marker := s.Body(state.Lines[i]), s.Body(state.Markers[i])
		show := i < len(recent)
		if show {
			o := recent[i]
			line.Caption.Text = fmt.Sprintf("%s at %.1fs", o.Type, o.At/1000)
			line.Caption.Color = o.Color
			marker.Fill.RGBA = o.Color
		}
		sketch.SetHidden(frame.Commands, line, !show)
		sketch.SetHidden(frame.Commands, marker, !show)
	}
	total := s.Body(state.Total)
	total.Caption.Text = fmt.Sprintf("Total events: %d", len(state.Log))
	sketch.SetHidden(frame.Commands, total, len(state.Log) == 0)
	sketch.SetHidden(frame.Commands, s.Body(state.Header), len(state.Log) == 0)

	s.Info()
	if state.Tracking {
		s.Say(fmt.Sprintf("Time SINCE start: %.1fs", state.Time), true)
		s.Infof("Tracking events SINCE %.1fs", state.Reference)
		s.Infof("Duration: %.1f seconds", state.Time)
	} else {
		s.Say("Click 'Start' to begin tracking SINCE now", false)
		if state.Started {
			s.Infof("Reference time: %.1fs", state.Reference)
		}
	}
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "since",
		Variant:     "events",
		Summary:     "Events pile up from the moment tracking starts",
		Setup: func(scene *sketch.Scene) error {
			var state sinceState
			h := scene.Canvas.Height
			state.Circle = scene.Ball(geom.V(200, 150), sinceBaseRadius, sketch.Blue,
				sketch.Label{Text: "Growing Circle", Color: sketch.Ink})
			state.Radius = centred(scene, geom.V(200, 185), "", sketch.Muted)
			scene.Storage.AddComponent(state.Radius, sketch.Hidden{})

			state.Header = scene.Text(geom.V(10, h-88), "Events SINCE reference time:", sketch.Ink)
			scene.Storage.AddComponent(state.Header, sketch.Hidden{})
			for i := range sinceHistory {
				y := h - 72 + 12*float64(i)
				state.Markers[i] = scene.Ball(geom.V(15, y+6), 4, sketch.Gray, sketch.Hidden{})
				state.Lines[i] = scene.Text(geom.V(25, y), "", sketch.Ink)
				scene.Storage.AddComponent(state.Lines[i], sketch.Hidden{})
			}
			state.Total = scene.Text(geom.V(10, h-18), "", sketch.Ink)
			scene.Storage.AddComponent(state.Total, sketch.Hidden{})

			scene.Text(geom.V(250, 100), "Start tracking to see what", sketch.Muted)
			scene.Text(geom.V(250, 114), "happens SINCE then", sketch.Muted)
			state.Toggle = scene.Button(geom.Rect{X: 250, Y: 70, W: 60, H: 25}, "Start", "toggle")
			scene.Button(geom.Rect{X: 320, Y: 70, W: 60, H: 25}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&sinceSystem{}} }),
	})
}
