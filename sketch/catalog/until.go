package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

type ActivityKind int

const (
	ActivityCountdown ActivityKind = iota
	ActivityFill
	ActivityTravel
	ActivitySpin
)

// spinFor is how long the square keeps turning, one full turn at 20ms a degree.
const spinFor = 7200

// Activity runs from the moment the process starts until its own condition
// holds. Times are in milliseconds since the start.
type Activity struct {
	Name    string
	Kind    ActivityKind
	Target  float64
	Current float64
	Active  bool
}

// Advance updates the activity for the elapsed time and reports whether it
// reached its condition on this call.
func (a *Activity) Advance(elapsed float64) bool {
	if !a.Active {
		return false
	}
	done := false
	switch a.Kind {
	case ActivityCountdown:
		a.Current = math.Max(0, a.Target-elapsed)
		done = elapsed >= a.Target
	case ActivityFill:
		a.Current = math.Min(100, elapsed/80)
		done = a.Current >= a.Target
	case ActivityTravel:
		a.Current = math.Min(a.Target, elapsed/20)
		done = a.Current >= a.Target
	case ActivitySpin:
		a.Current = math.Mod(elapsed/20, 360)
		done = elapsed >= spinFor
	}
	if done {
		a.Active = false
	}
	return done
}

func defaultActivities() []Activity {
	return []Activity{
		{Name: "Countdown Timer", Kind: ActivityCountdown, Target: 6000, Current: 6000},
		{Name: "Progress Bar", Kind: ActivityFill, Target: 100},
		{Name: "Ball Movement", Kind: ActivityTravel, Target: 500},
		{Name: "Rotation", Kind: ActivitySpin, Target: 360},
	}
}

// squareOutline returns the closed outline of a square turned by deg degrees.
func squareOutline(centre geom.Vec, side, deg float64) []geom.Vec {
	points := make([]geom.Vec, 5)
	half := side / 2 * math.Sqrt2
	for i := range points {
		a := deg*math.Pi/180 + math.Pi/4 + float64(i)*math.Pi/2
		points[i] = centre.Add(geom.V(math.Cos(a), math.Sin(a)).Scale(half))
	}
	return points
}

type untilActivitiesState struct {
	Activities []Activity
	Time       float64
	Running    bool
	Stopped    bool

	StartButton ecs.EntityId
	Shown       []ecs.EntityId
	Intro       []ecs.EntityId
	TimerText   ecs.EntityId
	BarFill     ecs.EntityId
	Ball        ecs.EntityId
	Square      ecs.EntityId
	Readouts    [2]ecs.EntityId
	States      [4]ecs.EntityId
}

type untilActivitiesSystem struct {
	sketch.Context
	State     ecs.Singleton[untilActivitiesState]
	Particles ecs.Query[struct {
		ecs.EntityId
		*sketch.Particle
	}]
}

func (s *untilActivitiesSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	rng := *s.Random.Get()
	mid := canvas.Width / 2

	restart := func(running bool) {
		state.Running = running
		state.Stopped = false
		state.Time = 0
		state.Activities = defaultActivities()
		for i := range state.Activities {
			state.Activities[i].Active = running
		}
		for id := range s.Particles.Iter() {
			frame.Commands.Delete(id)
		}
	}
	switch s.Action() {
	case "start":
		restart(true)
	case "stop":
		if state.Running {
			state.Stopped = true
		}
	case "reset":
		restart(false)
	}

	if state.Running {
		state.Time += frame.DeltaTime
		elapsed := state.Time * 1000
		for i := range state.Activities {
			a := &state.Activities[i]
			if state.Stopped {
				a.Active = false
				continue
			}
			if !a.Advance(elapsed) {
				continue
			}
			at := []geom.Vec{geom.V(mid, 80), geom.V(mid, 170), geom.V(100+a.Current, 250), geom.V(mid, 340)}[a.Kind]
			confetti(frame.Commands, rng, at, 15, 3, 60)
		}
	}

	for _, id := range state.Shown {
		sketch.SetHidden(frame.Commands, s.Body(id), !state.Running)
	}
	for _, id := range state.Intro {
		sketch.SetHidden(frame.Commands, s.Body(id), state.Running)
	}
	start := ecs.ReadComponent[sketch.Button](frame.Storage, state.StartButton)
	start.Text = "Start Process"
	if state.Running {
		start.Text = "Running..."
	}

	acts := state.Activities
	s.Body(state.TimerText).Label.Text = fmt.Sprintf("Timer: %.1fs", acts[ActivityCountdown].Current/1000)
	s.Body(state.BarFill).Box.W = geom.Map(acts[ActivityFill].Current, 0, 100, 0, 300)
	s.Body(state.Readouts[0]).Label.Text = fmt.Sprintf("%.1f%%", acts[ActivityFill].Current)
	s.Body(state.Ball).X = 100 + acts[ActivityTravel].Current
	ecs.ReadComponent[sketch.Polyline](frame.Storage, state.Square).Points = squareOutline(geom.V(mid, 340), 30, acts[ActivitySpin].Current)
	s.Body(state.Readouts[1]).Label.Text = fmt.Sprintf("%.0f deg", acts[ActivitySpin].Current)

	labels := [4][2]string{
		{"(Running until 0)", "(Stopped)"},
		{"(Filling until complete)", "(Complete/Stopped)"},
		{"(Moving until target)", "(Reached target/Stopped)"},
		{"(Rotating until 360 deg)", "(Full rotation/Stopped)"},
	}
	active := 0
	for i, a := range acts {
		text := labels[i][1]
		if a.Active {
			text = labels[i][0]
			active++
		}
		s.Body(state.States[i]).Label.Text = text
	}

	switch {
	case !state.Running:
		s.Say("Click 'Start Process' to begin multiple activities", false)
	case state.Stopped:
		s.Say("All activities stopped by manual trigger", false)
	case active > 0:
		s.Say(fmt.Sprintf("%d activities running until their conditions are met", active), false)
	default:
		s.Say("All activities completed - reached their 'until' conditions", true)
	}
}

func setupUntilActivities(scene *sketch.Scene) error {
	state := untilActivitiesState{Activities: defaultActivities()}
	w, h := scene.Canvas.Width, scene.Canvas.Height
	mid := w / 2

	shown := func(id ecs.EntityId) ecs.EntityId {
		scene.Storage.AddComponent(id, sketch.Hidden{})
		state.Shown = append(state.Shown, id)
		return id
	}
	text := func(y float64, s string) ecs.EntityId {
		return shown(centred(scene, geom.V(mid, y), s, sketch.Ink))
	}

	state.TimerText = text(80, "")
	state.States[ActivityCountdown] = text(105, "")
	text(140, "Progress Bar (until 100%)")
	shown(scene.Outline(geom.Rect{X: 150, Y: 155, W: 300, H: 25}, sketch.Dark, 1, sketch.Fill{RGBA: sketch.White}, sketch.Layer(-1)))
	state.BarFill = shown(scene.Rect(geom.Rect{X: 150, Y: 155, H: 25}, sketch.Green))
	state.Readouts[0] = shown(centred(scene, geom.V(mid, 168), "", sketch.Ink))
	state.States[ActivityFill] = text(190, "")
	text(220, "Ball Movement (until right edge)")
	state.Ball = shown(scene.Ball(geom.V(100, 250), 10, sketch.Orange))
	state.States[ActivityTravel] = text(270, "")
	text(300, "Rotating Square (until full rotation)")
	state.Square = shown(scene.Storage.Spawn(sketch.Position{}, sketch.Polyline{Width: 2, Color: sketch.Purple}))
	state.Readouts[1] = text(365, "")
	state.States[ActivitySpin] = text(385, "")

	for i, line := range []string{
		"Each will continue UNTIL its condition is met:",
		"- Timer counts down until 0",
		"- Progress bar fills until 100%",
		"- Ball moves until it reaches the edge",
		"- Square rotates until full circle",
		"",
		"Or click 'Trigger Stop' to stop all activities immediately",
	} {
		state.Intro = append(state.Intro, centred(scene, geom.V(mid+50, h/2-30+20*float64(i)), line, sketch.Ink))
	}

	state.StartButton = scene.Button(geom.Rect{X: 50, Y: 50, W: 100, H: 30}, "Start Process", "start")
	scene.Button(geom.Rect{X: 50, Y: 90, W: 100, H: 30}, "Trigger Stop", "stop")
	scene.Button(geom.Rect{X: 50, Y: 130, W: 100, H: 30}, "Reset", "reset")
	scene.Singleton(state)
	return nil
}

type untilProcessState struct {
	Value   float64
	Target  float64
	Speed   float64
	Running bool
	Fill    ecs.EntityId
	Readout ecs.EntityId
}

type untilProcessSystem struct {
	sketch.Context
	State ecs.Singleton[untilProcessState]
}

const untilBarW = 300

func (s *untilProcessSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	complete := func() bool { return state.Value >= state.Target }

	if _, ok := s.Click(); ok && (complete() || !state.Running) {
		state.Value = 0
		state.Running = true
	}
	switch {
	case s.Key('r', 'R'):
		state.Value = 0
		state.Running = false
	case s.Key(sketch.KeySpace):
		if !complete() {
			state.Running = !state.Running
		}
	}

	if state.Running && !complete() {
		state.Value += state.Speed
		if complete() {
			state.Running = false
			state.Value = state.Target
		}
	}

	fill := s.Body(state.Fill)
	fill.Box.W = geom.Map(state.Value, 0, state.Target, 0, untilBarW)
	switch {
	case state.Running:
		fill.Fill.RGBA = sketch.Blue
	case complete():
		fill.Fill.RGBA = sketch.Green
	default:
		fill.Fill.RGBA = sketch.Gray
	}
	s.Body(state.Readout).Label.Text = fmt.Sprintf("%.1f%%", state.Value)

	switch {
	case complete():
		s.Say("Process completed! It ran UNTIL 100%", true)
		s.Info("Status: Complete")
	case state.Running:
		s.Say("Process is running UNTIL it reaches 100%...", false)
		s.Info("Status: Running")
	case state.Value > 0:
		s.Say(fmt.Sprintf("Process paused at %d%%", round(state.Value)), false)
		s.Info("Status: Stopped")
	default:
		s.Say("Click to start a process that runs UNTIL 100%", false)
		s.Info("Status: Stopped")
	}
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "until",
		Variant:     "activities",
		Summary:     "Four activities each run until their own condition is met",
		Width:       600,
		Height:      400,
		Setup:       setupUntilActivities,
		Systems:     systems(func() []ecs.System { return []ecs.System{&untilActivitiesSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "until",
		Variant:     "process",
		Summary:     "A bar fills until it reaches 100%",
		Params:      sketch.Params{"fillSpeed": 0.8},
		Setup: func(scene *sketch.Scene) error {
			state := untilProcessState{Target: 100, Speed: scene.Params.Get("fillSpeed")}
			bar := geom.Rect{X: 50, Y: 150, W: untilBarW, H: 40}
			scene.Outline(bar, sketch.Dark, 2, sketch.Fill{RGBA: sketch.White}, sketch.Layer(-1))
			state.Fill = scene.Rect(geom.Rect{X: bar.X, Y: bar.Y, H: bar.H}, sketch.Gray)
			state.Readout = centred(scene, bar.Center(), "", sketch.Ink)
			end := bar.Right()
			scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: geom.V(end, 140), To: geom.V(end, 200), Width: 3, Color: sketch.Red})
			centred(scene, geom.V(end, 130), "UNTIL", sketch.Red)
			centred(scene, geom.V(end, 210), "100%", sketch.Red)
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&untilProcessSystem{}} }),
	})
}
