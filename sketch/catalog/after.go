package catalog

import (
	"fmt"
	"image/color"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// spray describes particles thrown upwards from one point, each living for a
// fixed number of frames.
type spray struct {
	Count      int
	SpreadX    float64
	Up         [2]float64
	Size       [2]float64
	LifeFrames float64
	Color      color.RGBA
}

func (sp spray) emit(cmd *ecs.Commands, rng sketch.Random, at geom.Vec) {
	for range sp.Count {
		cmd.Spawn(sketch.Position{Vec: at}, sketch.Particle{
			Vel:     geom.V(rng.Range(-sp.SpreadX, sp.SpreadX), rng.Range(sp.Up[0], sp.Up[1])),
			Gravity: 0.1,
			Life:    1,
			Decay:   1 / sp.LifeFrames,
			Size:    rng.Range(sp.Size[0], sp.Size[1]),
			Color:   sp.Color,
		})
	}
}

const (
	afterAxis      = 8.0
	afterTimelineY = 200
)

type afterTimelineState struct {
	Events  []TimedEvent
	Dots    []ecs.EntityId
	Lines   []ecs.EntityId
	Cursor  ecs.EntityId
	Time    float64
	Running bool
}

type afterTimelineSystem struct {
	sketch.Context
	State     ecs.Singleton[afterTimelineState]
	Particles ecs.Query[struct {
		ecs.EntityId
		*sketch.Particle
	}]
}

func afterX(t, width float64) float64 {
	return geom.Map(t, 0, afterAxis, 50, width-50)
}

func (s *afterTimelineSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	rng := *s.Random.Get()

	restart := func(running bool) {
		state.Running = running
		state.Time = 0
		for i := range state.Events {
			state.Events[i].Triggered = false
		}
		for id := range s.Particles.Iter() {
			frame.Commands.Delete(id)
		}
	}
	if s.Action() == "reset" {
		restart(false)
	}
	if _, ok := s.Click(); ok && !state.Running {
		restart(true)
	}

	if state.Running {
		state.Time += frame.DeltaTime
		for _, e := range Trigger(state.Events, state.Time) {
			if e.Main {
				spray{Count: 20, SpreadX: 5, Up: [2]float64{-8, -2}, Size: [2]float64{4, 8}, LifeFrames: 60, Color: e.Color}.
					emit(frame.Commands, rng, geom.V(canvas.Width/2, 100))
				continue
			}
			spray{Count: 10, SpreadX: 3, Up: [2]float64{-5, -1}, Size: [2]float64{3, 6}, LifeFrames: 40, Color: e.Color}.
				emit(frame.Commands, rng, geom.V(canvas.Width/2+rng.Range(-100, 100), 120))
		}
	}

	mainDone := false
	for i, e := range state.Events {
		if e.Main {
			mainDone = e.Triggered
		}
		dot := s.Body(state.Dots[i])
		dot.Fill.RGBA = sketch.Gray
		if e.Triggered {
			dot.Fill.RGBA = e.Color
		}
		status := "waiting"
		if e.Triggered {
			status = "COMPLETED"
		}
		line := s.Body(state.Lines[i])
		line.Caption.Text = fmt.Sprintf("%s (%.1fs): %s", e.Message, e.At, status)
		sketch.SetHidden(frame.Commands, line, !state.Running)
	}

	cursor := s.Body(state.Cursor)
	cursor.X = afterX(state.Time, canvas.Width)
	sketch.SetHidden(frame.Commands, cursor, !state.Running || state.Time > afterAxis)

	switch {
	case !state.Running:
		s.Say("Click to start the timeline", false)
	case !mainDone:
		s.Say("Waiting for main event...", false)
	default:
		s.Say("Main event occurred! After events following...", true)
	}
	s.Info()
	if state.Running {
		s.Infof("Time: %.1fs", state.Time)
	}
}

type afterImpactState struct {
	Projectile ecs.EntityId
	Impact     ecs.EntityId
	Rings      []ecs.EntityId
	Start      geom.Vec
	Target     geom.Vec
	Speed      float64
	Moving     bool
	Happened   bool
	Trail      *geom.Trail
}

type afterImpactSystem struct {
	sketch.Context
	State  ecs.Singleton[afterImpactState]
	Shards ecs.Query[struct {
		ecs.EntityId
		*sketch.Position
		*sketch.Particle
		*sketch.TrailView
	}]
}

// scatter spawns the shards thrown out by the impact, evenly spread around it.
func scatter(cmd *ecs.Commands, rng sketch.Random, at geom.Vec) {
	const shards = 8
	for i := range shards {
		c := randomColor(rng)
		cmd.Spawn(
			sketch.Position{Vec: at},
			sketch.Particle{
				Vel:      geom.V(math.Cos(2*math.Pi*float64(i)/shards), math.Sin(2*math.Pi*float64(i)/shards)).Scale(2),
				Damping:  0.98,
				MinSpeed: 0.1,
				Life:     1,
				Size:     6,
				Color:    c,
			},
			sketch.TrailView{Trail: geom.NewTrail(30), Color: c, Radius: 1.5},
		)
	}
}

func (s *afterImpactSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	projectile := s.Body(state.Projectile)
	rng := *s.Random.Get()

	if _, ok := s.Click(); ok {
		projectile.Vec = state.Start
		state.Moving = true
		state.Happened = false
		state.Trail.Clear()
		for id := range s.Shards.Iter() {
			frame.Commands.Delete(id)
		}
	}

	if state.Moving {
		state.Trail.Push(projectile.Vec)
		toTarget := state.Target.Sub(projectile.Vec)
		if toTarget.Len() < state.Speed+10 {
			state.Happened = true
			state.Moving = false
			scatter(frame.Commands, rng, state.Target)
		} else {
			projectile.Vec = projectile.Add(toTarget.Normalize().Scale(state.Speed))
		}
	}

	scattering := false
	for shard := range s.Shards.Values() {
		if shard.Vel != (geom.Vec{}) {
			scattering = true
			shard.Trail.Push(shard.Vec)
		}
	}

	sketch.SetHidden(frame.Commands, projectile, !state.Moving)
	for _, id := range state.Rings {
		sketch.SetHidden(frame.Commands, s.Body(id), state.Happened)
	}
	impact := s.Body(state.Impact)
	impact.Fill.RGBA = sketch.Alpha(sketch.Red, 120)
	if state.Happened {
		impact.Fill.RGBA = sketch.Red
	}

	switch {
	case state.Moving:
		s.Say("Projectile moving toward collision point", false)
	case state.Happened && scattering:
		s.Say("Particles scattering AFTER impact", true)
	case state.Happened:
		s.Say("Scattering complete - click to restart", true)
	default:
		s.Say("Click to launch the projectile", false)
	}
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "after",
		Variant:     "timeline",
		Summary:     "Three events follow a main event at fixed delays",
		Width:       600,
		Height:      400,
		Setup: func(scene *sketch.Scene) error {
			width := scene.Canvas.Width
			state := afterTimelineState{
				Events: []TimedEvent{
					{At: 3, Message: "Main Event", Color: sketch.Red, Main: true},
					{At: 4, Message: "First after event", Color: sketch.Blue},
					{At: 5.5, Message: "Second after event", Color: sketch.Green},
					{At: 7, Message: "Final after event", Color: sketch.Purple},
				},
			}
			scene.Line(geom.V(50, afterTimelineY), geom.V(width-50, afterTimelineY), sketch.Muted, 2)
			for i, e := range state.Events {
				x := afterX(e.At, width)
				r, label := 8.0, fmt.Sprintf("After %.1fs", e.At-3)
				if e.Main {
					r, label = 10, "Main Event (3s)"
				}
				state.Dots = append(state.Dots, scene.Ball(geom.V(x, afterTimelineY), r, sketch.Gray,
					sketch.Label{Text: label, Offset: geom.V(0, 25), Color: sketch.Ink}))
				state.Lines = append(state.Lines, scene.Storage.Spawn(
					sketch.Position{Vec: geom.V(70, 310+15*float64(i))},
					sketch.Caption{Color: sketch.Ink}, sketch.Hidden{}))
			}
			state.Cursor = scene.Storage.Spawn(sketch.Position{Vec: geom.V(50, afterTimelineY-40)},
				sketch.Box{W: 2, H: 80}, sketch.Fill{RGBA: sketch.Red}, sketch.Layer(2), sketch.Hidden{})
			scene.Button(geom.Rect{X: width - 100, Y: 20, W: 80, H: 30}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&afterTimelineSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "after",
		Variant:     "impact",
		Summary:     "Particles scatter only after the projectile hits",
		Params:      sketch.Params{"speed": 4},
		Setup: func(scene *sketch.Scene) error {
			state := afterImpactState{
				Start:  geom.V(50, 150),
				Target: geom.V(200, 150),
				Speed:  scene.Params.Get("speed"),
			}
			state.Trail = scene.Trail(50, sketch.Blue)
			state.Impact = scene.Ball(state.Target, 10, sketch.Alpha(sketch.Red, 120))
			state.Rings = []ecs.EntityId{
				ring(scene, state.Target, 15, sketch.Alpha(sketch.Red, 100), 1),
				ring(scene, state.Target, 20, sketch.Alpha(sketch.Red, 60), 1),
			}
			state.Projectile = scene.Ball(state.Start, 4, sketch.Blue, sketch.Layer(1), sketch.Hidden{})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&afterImpactSystem{}} }),
	})
}
