package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// Landing is what happened to a Lander during one step.
type Landing int

const (
	Flying Landing = iota
	Bounced
	Landed
	Lost
)

// Lander is a box thrown under gravity at a surface. It bounces on the
// surface top, loses speed on every bounce and comes to rest once slow.
type Lander struct {
	Box      geom.Rect
	Vel      geom.Vec
	Gravity  float64
	Bounce   float64
	Friction float64
}

// Step advances the lander one frame inside bounds.
func (l *Lander) Step(surface, bounds geom.Rect) Landing {
	l.Vel.Y += l.Gravity
	l.Box.X += l.Vel.X
	l.Box.Y += l.Vel.Y

	result := Flying
	if l.Box.Bottom() >= surface.Y && l.Box.Right() > surface.X && l.Box.X < surface.Right() && l.Vel.Y > 0 {
		l.Box.Y = surface.Y - l.Box.H
		l.Vel.Y *= l.Bounce
		l.Vel.X *= l.Friction
		result = Bounced
		if math.Abs(l.Vel.Y) < 1 && math.Abs(l.Vel.X) < 0.5 {
			l.Vel = geom.Vec{}
			return Landed
		}
	}

	if l.Box.X < bounds.X || l.Box.Right() > bounds.Right() {
		l.Vel.X *= -0.8
		l.Box.X = geom.Clamp(l.Box.X, bounds.X, bounds.Right()-l.Box.W)
	}
	if l.Box.Y > bounds.Bottom() {
		return Lost
	}
	return result
}

// Launch aims the lander at target, faster the further away it is.
func (l *Lander) Launch(target geom.Vec) {
	d := target.Sub(l.Box.Center()).Scale(0.08)
	l.Vel = geom.V(geom.Clamp(d.X, -8, 8), geom.Clamp(d.Y, -8, 8))
}

type ontoState struct {
	Lander    Lander
	Home      geom.Vec
	Surface   geom.Rect
	Moving    bool
	Landed    bool
	ShowTrail bool

	Object    ecs.EntityId
	Highlight ecs.EntityId
	Path      ecs.EntityId
	Trail     *geom.Trail
}

type ontoSystem struct {
	sketch.Context
	State ecs.Singleton[ontoState]
}

func (s *ontoSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	obj := s.Body(state.Object)
	l := &state.Lander

	reset := func() {
		l.Box.X, l.Box.Y = state.Home.X, state.Home.Y
		l.Vel = geom.Vec{}
		state.Moving = false
		state.Landed = false
		state.Trail.Clear()
	}
	switch s.Action() {
	case "trail":
		state.ShowTrail = !state.ShowTrail
	case "reset":
		reset()
	}
	if p, ok := s.Click(); ok && !state.Moving {
		l.Launch(p)
		state.Moving = true
		state.Landed = false
		state.Trail.Clear()
	}

	if state.Moving {
		state.Trail.Push(l.Box.Center())
		switch l.Step(state.Surface, canvas.Bounds()) {
		case Landed:
			state.Moving = false
			state.Landed = true
		case Lost:
			reset()
		}
	}
	obj.Vec = geom.V(l.Box.X, l.Box.Y)

	sketch.SetHidden(frame.Commands, s.Body(state.Highlight), state.Landed)
	sketch.SetHidden(frame.Commands, s.Body(state.Path), !state.ShowTrail)

	switch {
	case state.Landed:
		obj.Fill.RGBA = sketch.Green
		s.Say("Object has landed ONTO the surface", true)
	case state.Moving:
		obj.Fill.RGBA = sketch.Yellow
		s.Say("Object is moving ONTO the surface", false)
	default:
		obj.Fill.RGBA = sketch.Orange
		s.Say("Click to launch object ONTO the surface", false)
	}
	s.Info(
		fmt.Sprintf("On Surface: %t", state.Landed),
		fmt.Sprintf("Has Landed: %t", state.Landed),
	)
	if state.Moving {
		s.Infof("vx: %.1f  vy: %.1f", l.Vel.X, l.Vel.Y)
	}
}

type ontoGlideState struct {
	Circle    ecs.EntityId
	Heading   ecs.EntityId
	From      geom.Vec
	Target    geom.Vec
	Progress  geom.Progress
	Moving    bool
	OnSurface bool
}

type ontoGlideSystem struct {
	sketch.Context
	State ecs.Singleton[ontoGlideState]
}

func (s *ontoGlideSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	rng := *s.Random.Get()
	circle := s.Body(state.Circle)

	if _, ok := s.Click(); ok && (state.OnSurface || !state.Moving) {
		state.From = geom.V(rng.Range(40, canvas.Width-40), 80)
		circle.Vec = state.From
		state.OnSurface = false
		state.Progress.Reset()
		state.Moving = true
	}

	if state.Moving {
		state.Progress.Advance()
		circle.Vec = geom.LerpVec(state.From, state.Target, state.Progress.Value)
		if state.Progress.Done() {
			state.Moving = false
			state.OnSurface = true
		}
	}

	heading := s.Body(state.Heading)
	toTarget := state.Target.Sub(circle.Vec)
	showHeading := state.Moving && toTarget.Len() > 5
	if showHeading {
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Heading)
		seg.From, seg.To = circle.Vec, circle.Add(toTarget.Normalize().Scale(25))
	}
	sketch.SetHidden(frame.Commands, heading, !showHeading)

	s.Info()
	switch {
	case state.OnSurface:
		circle.Fill.RGBA = sketch.Green
		s.Say("Circle is now ONTO the surface!", true)
		s.Infof("Status: ON surface")
	case state.Moving:
		circle.Fill.RGBA = sketch.Yellow
		s.Say("Circle is moving ONTO the surface...", false)
		s.Infof("Status: OFF surface")
		s.Infof("Progress: %d%%", percent(state.Progress.Value))
	default:
		circle.Fill.RGBA = sketch.Orange
		s.Say("Click to move the circle ONTO the surface", false)
		s.Infof("Status: OFF surface")
	}
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "onto",
		Variant:     "physics",
		Summary:     "Launch a box so it falls, bounces and settles onto the surface",
		Params:      sketch.Params{"gravity": 0.3, "bounce": -0.6, "friction": 0.95},
		Setup: func(scene *sketch.Scene) error {
			state := ontoState{
				Home:      geom.V(50, 50),
				Surface:   geom.Rect{X: 100, Y: 200, W: 200, H: 30},
				ShowTrail: true,
				Lander: Lander{
					Box:      geom.Rect{X: 50, Y: 50, W: 30, H: 20},
					Gravity:  scene.Params.Get("gravity"),
					Bounce:   scene.Params.Get("bounce"),
					Friction: scene.Params.Get("friction"),
				},
			}
			sf := state.Surface
			scene.Storage.Spawn(sketch.Position{Vec: geom.V(sf.Center().X, sf.Bottom()+5)},
				sketch.Box{W: sf.W + 20, H: 8, Centered: true}, sketch.Fill{RGBA: sketch.Alpha(sketch.Dark, 40)}, sketch.Layer(-2))
			state.Highlight = scene.Outline(geom.Rect{X: sf.X - 5, Y: sf.Y - 5, W: sf.W + 10, H: sf.H + 10},
				sketch.Alpha(sketch.Green, 150), 2, sketch.Layer(-1))
			scene.Rect(sf, sketch.Blue, sketch.Stroke{Color: sketch.Dark, Width: 2},
				sketch.Label{Text: "Landing Surface", Offset: geom.V(0, -sf.H/2-12), Color: sketch.Ink})
			for i := range 4 {
				x := sf.X + 20 + 40*float64(i)
				scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: geom.V(x, sf.Y+5), To: geom.V(x, sf.Bottom()-5),
					Width: 1, Color: sketch.Alpha(sketch.White, 150)})
			}

			state.Trail = geom.NewTrail(100)
			state.Path = scene.Storage.Spawn(sketch.Position{}, sketch.TrailView{Trail: state.Trail, Color: sketch.Orange, Radius: 2})
			state.Object = scene.Rect(state.Lander.Box, sketch.Orange, sketch.Layer(1), sketch.Stroke{Color: sketch.Dark, Width: 1},
				sketch.Label{Text: "Moving Object", Offset: geom.V(0, -20), Color: sketch.Ink})
			scene.Button(geom.Rect{X: 250, Y: 10, W: 80, H: 20}, "Trail", "trail")
			scene.Button(geom.Rect{X: 340, Y: 10, W: 50, H: 20}, "Reset", "reset")
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&ontoSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "onto",
		Variant:     "glide",
		Summary:     "The circle glides from a random spot onto the surface",
		Params:      sketch.Params{"speed": 0.02},
		Setup: func(scene *sketch.Scene) error {
			state := ontoGlideState{
				From:     geom.V(80, 80),
				Target:   geom.V(225, 185),
				Progress: geom.Progress{Step: scene.Params.Get("speed")},
			}
			sf := geom.Rect{X: 150, Y: 200, W: 150, H: 20}
			scene.Storage.Spawn(sketch.Position{Vec: geom.V(sf.Center().X, sf.Bottom()+8)},
				sketch.Box{W: sf.W + 20, H: 8, Centered: true}, sketch.Fill{RGBA: sketch.Alpha(sketch.Dark, 40)}, sketch.Layer(-1))
			scene.Rect(sf, sketch.Blue, sketch.Stroke{Color: sketch.Dark, Width: 2},
				sketch.Label{Text: "SURFACE", Color: sketch.White})
			state.Heading = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Red}, sketch.Layer(2), sketch.Hidden{})
			state.Circle = scene.Ball(state.From, 15, sketch.Orange, sketch.Layer(1))
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&ontoGlideSystem{}} }),
	})
}
