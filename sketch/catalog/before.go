package catalog

import (
	"fmt"
	"image/color"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

const (
	obstacleEase    = 0.1
	obstacleClearAt = 5
	runnerStartX    = 50
	runnerStopX     = 370
)

type obstacle struct {
	ID      ecs.EntityId
	Home    geom.Vec
	Target  geom.Vec
	Cleared bool
}

type beforeObstaclesState struct {
	Runner    ecs.EntityId
	Obstacles []obstacle
	Clearing  bool
	Moving    bool
	Passed    bool
	Speed     float64
	Trail     *geom.Trail
}

// cleared counts the obstacles that reached their targets.
func (s *beforeObstaclesState) cleared() int {
	n := 0
	for _, o := range s.Obstacles {
		if o.Cleared {
			n++
		}
	}
	return n
}

type beforeObstaclesSystem struct {
	sketch.Context
	State ecs.Singleton[beforeObstaclesState]
}

func (s *beforeObstaclesSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	runner := s.Body(state.Runner)
	rng := *s.Random.Get()

	if _, ok := s.Click(); ok && !state.Clearing && !state.Moving {
		state.Clearing = true
		state.Passed = false
		runner.X = runnerStartX
		state.Trail.Clear()
		for i := range state.Obstacles {
			o := &state.Obstacles[i]
			s.Body(o.ID).Vec = o.Home
			o.Cleared = false
			y := rng.Range(20, 80)
			if rng.Float64() >= 0.5 {
				y = rng.Range(220, 280)
			}
			o.Target = geom.V(rng.Range(50, 350), y)
		}
	}

	if state.Clearing {
		all := true
		for i := range state.Obstacles {
			o := &state.Obstacles[i]
			if o.Cleared {
				continue
			}
			body := s.Body(o.ID)
			body.Vec = geom.LerpVec(body.Vec, o.Target, obstacleEase)
			if body.Dist(o.Target) < obstacleClearAt {
				o.Cleared = true
			} else {
				all = false
			}
		}
		if all {
			state.Clearing = false
			state.Moving = true
		}
	}

	if state.Moving {
		state.Trail.Push(runner.Vec)
		runner.X += state.Speed
		if runner.X > runnerStopX {
			state.Moving = false
			state.Passed = true
		}
	}

	for _, o := range state.Obstacles {
		body := s.Body(o.ID)
		switch {
		case o.Cleared:
			body.Fill.RGBA = sketch.Green
		case state.Clearing:
			body.Fill.RGBA = sketch.Yellow
		default:
			body.Fill.RGBA = sketch.Red
		}
	}
	runner.Fill.RGBA = sketch.Gray
	if state.Moving {
		runner.Fill.RGBA = sketch.Blue
	}

	switch {
	case state.Clearing:
		s.Say(fmt.Sprintf("Obstacles clearing path BEFORE movement (%d/%d cleared)", state.cleared(), len(state.Obstacles)), false)
	case state.Moving:
		s.Say("Path is clear - circle moves after obstacles cleared", true)
	case state.Passed:
		s.Say("Circle passed - obstacles moved BEFORE it", true)
	default:
		s.Say("Click to clear obstacles BEFORE the circle moves", false)
	}
}

// TimedEvent fires once when a running timeline reaches At seconds.
type TimedEvent struct {
	At        float64
	Message   string
	Color     color.RGBA
	Main      bool
	Triggered bool
}

// Trigger fires every event whose time has come and returns the ones that
// fired during this call.
func Trigger(events []TimedEvent, t float64) []*TimedEvent {
	var fired []*TimedEvent
	for i := range events {
		e := &events[i]
		if !e.Triggered && t >= e.At {
			e.Triggered = true
			fired = append(fired, e)
		}
	}
	return fired
}

const beforeAxis = 4.0

type beforeTimelineState struct {
	Events  []TimedEvent
	Dots    []ecs.EntityId
	Notes   []ecs.EntityId
	Lines   []ecs.EntityId
	Summary [2]ecs.EntityId
	Cursor  ecs.EntityId
	Toggle  ecs.EntityId
	Time    float64
	Running bool
	MainAt  float64
}

type beforeTimelineSystem struct {
	sketch.Context
	State     ecs.Singleton[beforeTimelineState]
	Particles ecs.Query[struct {
		ecs.EntityId
		*sketch.Particle
	}]
}

func beforeX(t float64) float64 {
	return geom.Map(t, 0, beforeAxis, 50, 350)
}

func (s *beforeTimelineSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	rng := *s.Random.Get()

	switch s.Action() {
	case "toggle":
		state.Running = !state.Running
		if state.Running {
			state.Time = 0
		}
	case "reset":
		state.Running = false
		state.Time = 0
		for i := range state.Events {
			state.Events[i].Triggered = false
		}
		for id := range s.Particles.Iter() {
			frame.Commands.Delete(id)
		}
	}

	if state.Running {
		state.Time += frame.DeltaTime
		for _, e := range Trigger(state.Events, state.Time) {
			if e.Main {
				continue
			}
			for range 10 {
				frame.Commands.Spawn(sketch.Position{Vec: geom.V(rng.Range(0, s.Canvas.Get().Width), rng.Range(130, 200))}, sketch.Particle{
					Vel:   geom.V(rng.Range(-2, 2), rng.Range(-3, -1)),
					Life:  1,
					Decay: rng.Range(3, 6) / 255,
					Size:  6,
					Color: e.Color,
				})
			}
		}
	}

	button := ecs.ReadComponent[sketch.Button](frame.Storage, state.Toggle)
	button.Text, button.Color = "Start Timer", sketch.Green
	if state.Running {
		button.Text, button.Color = "Stop", sketch.Red
	}

	cursor := s.Body(state.Cursor)
	cursor.X = geom.Clamp(beforeX(state.Time), 50, 350) - 1
	sketch.SetHidden(frame.Commands, cursor, !state.Running)

	waiting, done := 0, 0
	for i, e := range state.Events {
		dot := s.Body(state.Dots[i])
		dot.Fill.RGBA = sketch.Gray
		if e.Triggered {
			dot.Fill.RGBA = e.Color
		}
		note := s.Body(state.Notes[i])
		note.Caption.Text = ""
		if e.Triggered {
			note.Caption.Text = e.Message
		}

		line := s.Body(state.Lines[i])
		switch {
		case e.Triggered:
			line.Caption.Text = "done: " + e.Message
			line.Caption.Color = e.Color
		case state.Running && state.Time < e.At:
			line.Caption.Text = fmt.Sprintf("waiting: %s (in %.1fs)", e.Message, e.At-state.Time)
			line.Caption.Color = sketch.Muted
		default:
			line.Caption.Text = "o " + e.Message
			line.Caption.Color = sketch.Gray
		}

		if e.Main {
			continue
		}
		if state.Running && state.Time < e.At {
			waiting++
		}
		if e.Triggered {
			done++
		}
	}

	switch {
	case !state.Running:
		s.Say("Click 'Start Timer' to begin the sequence", false)
	case state.Time < state.MainAt:
		s.Say("Events are happening BEFORE the main event", false)
	default:
		s.Say("Main event has occurred!", true)
	}
	s.Info(fmt.Sprintf("Current time: %.1fs", state.Time))

	before, completed := s.Body(state.Summary[0]), s.Body(state.Summary[1])
	before.Caption.Text, completed.Caption.Text = "", ""
	if state.Running {
		before.Caption.Text = fmt.Sprintf("Events BEFORE main event: %d", waiting)
		completed.Caption.Text = fmt.Sprintf("Events completed: %d", done)
	}
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "before",
		Variant:     "obstacles",
		Summary:     "Obstacles must clear the path before the circle sets off",
		Params:      sketch.Params{"speed": 3},
		Setup: func(scene *sketch.Scene) error {
			state := beforeObstaclesState{Speed: scene.Params.Get("speed")}
			scene.Line(geom.V(runnerStartX, 150), geom.V(runnerStopX, 150), sketch.Gray, 2)
			for i := range 4 {
				home := geom.V(120+60*float64(i), 150)
				state.Obstacles = append(state.Obstacles, obstacle{
					ID:   scene.Ball(home, 6, sketch.Red, sketch.Layer(1)),
					Home: home,
				})
			}
			state.Trail = scene.Trail(60, sketch.Blue)
			state.Runner = scene.Ball(geom.V(runnerStartX, 150), 7.5, sketch.Gray, sketch.Layer(2))
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&beforeObstaclesSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "before",
		Variant:     "timeline",
		Summary:     "Preparation events happen before the main event on a four second timeline",
		Setup: func(scene *sketch.Scene) error {
			state := beforeTimelineState{
				MainAt: 3,
				Events: []TimedEvent{
					{At: 0.5, Message: "Preparation begins", Color: sketch.Blue},
					{At: 1.5, Message: "Setup phase", Color: sketch.Purple},
					{At: 2.5, Message: "Final preparations", Color: sketch.Orange},
					{At: 3.0, Message: "MAIN EVENT!", Color: sketch.Red, Main: true},
				},
			}

			scene.Outline(geom.Rect{X: 50, Y: 50, W: 300, H: 40}, sketch.Muted, 1, sketch.Fill{RGBA: sketch.White}, sketch.Layer(-1))
			scene.Text(geom.V(50, 30), "Timeline:", sketch.Ink)
			scene.Text(geom.V(335, 30), "4s", sketch.Ink)
			scene.Text(geom.V(50, 125), "Event Status:", sketch.Ink)

			for i, e := range state.Events {
				x := beforeX(e.At)
				stroke := sketch.Stroke{Color: sketch.Muted, Width: 1}
				if e.Main {
					stroke = sketch.Stroke{Color: sketch.Red, Width: 3}
				}
				dot := scene.Storage.Spawn(sketch.Position{Vec: geom.V(x, 70)}, sketch.Circle{R: 6}, sketch.Fill{RGBA: sketch.Gray}, stroke)
				state.Dots = append(state.Dots, dot)
				scene.Text(geom.V(x-8, 95), fmt.Sprintf("%.1fs", e.At), sketch.Ink)
				state.Notes = append(state.Notes, scene.Text(geom.V(x-20, 108), "", sketch.Ink))
				state.Lines = append(state.Lines, scene.Text(geom.V(50, 140+15*float64(i)), "", sketch.Gray))
			}

			state.Summary[0] = scene.Text(geom.V(50, 210), "", sketch.Ink)
			state.Summary[1] = scene.Text(geom.V(50, 225), "", sketch.Ink)
			state.Cursor = scene.Storage.Spawn(sketch.Position{Vec: geom.V(50, 40)}, sketch.Box{W: 2, H: 60},
				sketch.Fill{RGBA: sketch.Red}, sketch.Layer(2), sketch.Hidden{})
			state.Toggle = scene.Button(geom.Rect{X: 280, Y: 120, W: 80, H: 25}, "Start Timer", "toggle")
			scene.Button(geom.Rect{X: 280, Y: 150, W: 80, H: 25}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&beforeTimelineSystem{}} }),
	})
}
