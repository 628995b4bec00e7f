package catalog

import (
	"fmt"
	"image/color"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// Span is an interval on a timeline, in seconds.
type Span struct {
	Name     string
	Start    float64
	Duration float64
	Color    color.RGBA
}

func (s Span) End() float64 {
	return s.Start + s.Duration
}

// At reports whether the span is active at time t and how far through it t is.
// Before the span the fraction is 0, after it 1.
func (s Span) At(t float64) (active bool, fraction float64) {
	switch {
	case t < s.Start:
		return false, 0
	case t >= s.End():
		return false, 1
	}
	return true, (t - s.Start) / s.Duration
}

type journeyState struct {
	Traveler      ecs.EntityId
	Start, Target geom.Vec
	Speed         float64
	Moving        bool
	Arrived       bool
	Trail         *geom.Trail
}

type journeySystem struct {
	sketch.Context
	State ecs.Singleton[journeyState]
}

func (s *journeySystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	traveler := s.Body(state.Traveler)

	if _, ok := s.Click(); ok {
		traveler.Vec = state.Start
		state.Moving = true
		state.Arrived = false
		state.Trail.Clear()
	}

	if state.Moving {
		state.Trail.Push(traveler.Vec)
		toTarget := state.Target.Sub(traveler.Vec)
		if toTarget.Len() < state.Speed {
			traveler.Vec = state.Target
			state.Moving = false
			state.Arrived = true
		} else {
			traveler.Vec = traveler.Add(toTarget.Normalize().Scale(state.Speed))
		}

		if s.Clock.Get().Frame%8 == 0 {
			rng := *s.Random.Get()
			sketch.Burst{
				Count:   1,
				Speed:   2,
				Size:    [2]float64{4, 8},
				Damping: 0.99,
				Decay:   0.01,
				Color:   randomColor(rng),
			}.Emit(frame.Commands, rng, traveler.Vec)
		}
	}

	switch {
	case state.Moving:
		s.Say("Particles are emitted DURING the journey", true)
	case state.Arrived:
		s.Say("Journey complete - click to travel again", false)
	default:
		s.Say("Click to start the journey", false)
	}
	s.Info(fmt.Sprintf("Progress: %d%%", percent((traveler.X-state.Start.X)/(state.Target.X-state.Start.X))))
}

func randomColor(rng sketch.Random) color.RGBA {
	return color.RGBA{
		R: uint8(rng.Range(100, 255)),
		G: uint8(rng.Range(100, 255)),
		B: uint8(rng.Range(100, 255)),
		A: 255,
	}
}

const (
	timelineLeft  = 50.0
	timelineScale = 50.0 // pixels per second
)

func timelineX(t float64) float64 {
	return timelineLeft + t*timelineScale
}

type timelineBar struct {
	Span     Span
	Outline  ecs.EntityId
	Progress ecs.EntityId
	Marker   ecs.EntityId
}

type duringTimelineState struct {
	Main    timelineBar
	Events  []timelineBar
	Now     ecs.EntityId
	Time    float64
	Running bool
}

func (s *duringTimelineState) complete() bool {
	return s.Time >= s.Main.Span.End()
}

type duringTimelineSystem struct {
	sketch.Context
	State ecs.Singleton[duringTimelineState]
}

func (s *duringTimelineSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()

	if _, ok := s.Click(); ok && !state.Running {
		if state.Time == 0 {
			state.Running = true
		} else {
			state.Time = 0
		}
	}
	if state.Running {
		state.Time += frame.DeltaTime
		if state.complete() {
			state.Time = state.Main.Span.End()
			state.Running = false
		}
	}

	mainActive, _ := state.Main.Span.At(state.Time)
	s.shade(state.Main, mainActive && state.Running)

	during := 0
	for _, bar := range state.Events {
		active, fraction := bar.Span.At(state.Time)
		if state.Time == 0 {
			fraction = 0
		}
		active = active && state.Running
		s.shade(bar, active)
		s.Body(bar.Progress).Box.W = bar.Span.Duration * timelineScale * fraction
		if active && mainActive {
			during++
		}
		sketch.SetHidden(frame.Commands, s.Body(bar.Marker), !(active && mainActive))
	}

	now := s.Body(state.Now)
	now.X = timelineX(state.Time)
	sketch.SetHidden(frame.Commands, now, !state.Running)

	switch {
	case state.Running:
		s.Say(fmt.Sprintf("Events running... %d occurring DURING the main process", during), during > 0)
	case state.complete():
		s.Say("Timeline complete! Click to run again", false)
	default:
		s.Say("Click START to begin the timeline", false)
	}

	mainLine := "o " + state.Main.Span.Name + " - inactive"
	if mainActive && state.Running {
		mainLine = "* " + state.Main.Span.Name + " - ACTIVE"
	}
	s.Info(
		mainLine,
		fmt.Sprintf("Events occurring DURING: %d", during),
		fmt.Sprintf("Time: %.1fs", state.Time),
	)
}

func (s *duringTimelineSystem) shade(bar timelineBar, active bool) {
	alpha := uint8(100)
	if active {
		alpha = 200
	}
	s.Body(bar.Outline).Fill.RGBA = sketch.Alpha(bar.Span.Color, alpha)
}

func spawnBar(scene *sketch.Scene, span Span, y, h float64) timelineBar {
	r := geom.Rect{X: timelineX(span.Start), Y: y, W: span.Duration * timelineScale, H: h}
	bar := timelineBar{Span: span}
	bar.Outline = scene.Outline(r, sketch.Dark, 2, sketch.Fill{RGBA: sketch.Alpha(span.Color, 100)},
		sketch.Label{Text: span.Name, Offset: geom.Vec{}, Color: sketch.Ink})
	bar.Progress = scene.Rect(geom.Rect{X: r.X, Y: r.Y, H: h}, span.Color, sketch.Layer(1))
	bar.Marker = scene.Storage.Spawn(sketch.Position{Vec: geom.V(r.Right()+5, y+h/2-7)},
		sketch.Caption{Text: "DURING", Color: sketch.Red}, sketch.Hidden{})
	return bar
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "during",
		Variant:     "journey",
		Summary:     "A traveler sheds particles while it moves from A to B",
		Params:      sketch.Params{"speed": 2},
		Setup: func(scene *sketch.Scene) error {
			state := journeyState{
				Start:  geom.V(50, 150),
				Target: geom.V(350, 150),
				Speed:  scene.Params.Get("speed"),
			}
			scene.Line(state.Start, state.Target, sketch.Gray, 2)
			scene.Ball(state.Start, 10, sketch.Green, sketch.Layer(-1))
			scene.Ball(state.Target, 10, sketch.Red, sketch.Layer(-1))
			state.Trail = scene.Trail(100, sketch.Blue)
			state.Traveler = scene.Ball(state.Start, 6, sketch.Blue, sketch.Layer(1))
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&journeySystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "during",
		Variant:     "timeline",
		Summary:     "Events A, B and C happen during an eight second main process",
		Width:       600,
		Height:      400,
		Setup: func(scene *sketch.Scene) error {
			scene.Outline(geom.Rect{X: 40, Y: 100, W: 520, H: 200}, sketch.Gray, 2,
				sketch.Fill{RGBA: color.RGBA{250, 250, 250, 255}}, sketch.Layer(-2))
			for i := 0; i <= 10; i++ {
				x := timelineX(float64(i))
				scene.Line(geom.V(x, 100), geom.V(x, 300), sketch.Alpha(sketch.Gray, 120), 1)
				scene.Text(geom.V(x-6, 305), fmt.Sprintf("%ds", i), sketch.Muted)
			}

			state := duringTimelineState{
				Main: spawnBar(scene, Span{Name: "Main Process", Duration: 8, Color: sketch.Blue}, 120, 40),
			}
			events := []Span{
				{Name: "Event A", Start: 2, Duration: 3, Color: sketch.Red},
				{Name: "Event B", Start: 4, Duration: 2.5, Color: sketch.Green},
				{Name: "Event C", Start: 1.5, Duration: 4, Color: sketch.Yellow},
			}
			for i, span := range events {
				state.Events = append(state.Events, spawnBar(scene, span, 180+float64(i)*35, 25))
			}
			state.Now = scene.Storage.Spawn(sketch.Position{Vec: geom.V(timelineLeft, 80)},
				sketch.Box{W: 3, H: 240}, sketch.Fill{RGBA: sketch.Red}, sketch.Layer(2), sketch.Hidden{},
				sketch.Label{Text: "NOW", Offset: geom.V(0, -128), Color: sketch.Red})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&duringTimelineSystem{}} }),
	})
}
