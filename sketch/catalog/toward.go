package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

// reachRadius is how close the dot must get before it counts as arrived.
const reachRadius = 5

// Pursuer moves a point one frame closer to a target.
type Pursuer interface {
	Step(pos, target geom.Vec) geom.Vec
	// Settled reports whether the pursuer has come to rest at target.
	Settled(pos, target geom.Vec) bool
	Reset()
	// Faster speeds the pursuit up by one notch, or slows it for a negative step.
	Faster(step int)
	Describe() string
}

// LerpPursuer covers a fixed fraction of the remaining distance every frame,
// so it slows as it closes in.
type LerpPursuer struct {
	Factor float64
}

func (p *LerpPursuer) Step(pos, target geom.Vec) geom.Vec {
	return geom.LerpVec(pos, target, p.Factor)
}

func (p *LerpPursuer) Settled(pos, target geom.Vec) bool {
	return pos.Dist(target) < reachRadius
}

func (p *LerpPursuer) Reset() {}

func (p *LerpPursuer) Faster(step int) {
	p.Factor = geom.Clamp(p.Factor+0.01*float64(step), 0.01, 0.2)
}

func (p *LerpPursuer) Describe() string {
	return fmt.Sprintf("Speed: %.1f%%", p.Factor*100)
}

// SpringPursuer follows the target on a damped spring and may overshoot it.
type SpringPursuer struct {
	Frequency float64
	Damping   float64
	spring    *geom.Spring
}

func NewSpringPursuer(frequency, damping float64) *SpringPursuer {
	p := &SpringPursuer{Frequency: frequency, Damping: damping}
	p.Reset()
	return p
}

func (p *SpringPursuer) Step(pos, target geom.Vec) geom.Vec {
	return p.spring.Step(pos, target)
}

func (p *SpringPursuer) Settled(pos, target geom.Vec) bool {
	return pos.Dist(target) < reachRadius && p.spring.Velocity().Len() < 0.5
}

func (p *SpringPursuer) Reset() {
	p.spring = geom.NewSpring(60, p.Frequency, p.Damping)
}

func (p *SpringPursuer) Faster(step int) {
	p.Frequency = geom.Clamp(p.Frequency+float64(step), 1, 12)
	p.spring.Retune(60, p.Frequency, p.Damping)
}

func (p *SpringPursuer) Describe() string {
	return fmt.Sprintf("Spring: %.0f Hz, damping %.2f", p.Frequency, p.Damping)
}

type towardState struct {
	Pursuer Pursuer
	Home    geom.Vec
	Target  geom.Vec
	Moving  bool
	Reached bool
	Trail   *geom.Trail

	Dot       ecs.EntityId
	Marker    ecs.EntityId
	Crosshair [2]ecs.EntityId
	Direction ecs.EntityId
	Arrow     ecs.EntityId
	Toggle    ecs.EntityId
}

type towardSystem struct {
	sketch.Context
	State ecs.Singleton[towardState]
}

func (s *towardSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	canvas := s.Canvas.Get()
	dot := s.Body(state.Dot)

	begin := func() {
		state.Moving = true
		state.Reached = false
		state.Trail.Clear()
	}
	switch s.Action() {
	case "toggle":
		if state.Moving {
			state.Moving = false
		} else {
			begin()
		}
	case "reset":
		dot.Vec = canvas.Center()
		state.Target = canvas.Center()
		state.Moving = false
		state.Reached = false
		state.Trail.Clear()
		state.Pursuer.Reset()
	}
	if p, ok := s.Click(); ok {
		state.Target = p
		if !state.Moving {
			begin()
		}
	}
	switch {
	case s.Key('+', '='):
		state.Pursuer.Faster(1)
	case s.Key('-'):
		state.Pursuer.Faster(-1)
	}

	if state.Moving {
		dot.Vec = state.Pursuer.Step(dot.Vec, state.Target)
		state.Trail.Push(dot.Vec)
		if state.Pursuer.Settled(dot.Vec, state.Target) {
			state.Moving = false
			state.Reached = true
		}
	}

	t := state.Target
	s.Body(state.Marker).Vec = t
	cross := [2]*sketch.Segment{
		ecs.ReadComponent[sketch.Segment](frame.Storage, state.Crosshair[0]),
		ecs.ReadComponent[sketch.Segment](frame.Storage, state.Crosshair[1]),
	}
	cross[0].From, cross[0].To = t.Add(geom.V(-15, 0)), t.Add(geom.V(15, 0))
	cross[1].From, cross[1].To = t.Add(geom.V(0, -15)), t.Add(geom.V(0, 15))

	toTarget := t.Sub(dot.Vec)
	angle := toTarget.Angle()
	direction, arrow := s.Body(state.Direction), s.Body(state.Arrow)
	if state.Moving {
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Direction)
		seg.From, seg.To = dot.Vec, t
		back := func(spread float64) geom.Vec {
			return t.Sub(geom.V(math.Cos(angle+spread), math.Sin(angle+spread)).Scale(10))
		}
		ecs.ReadComponent[sketch.Polyline](frame.Storage, state.Arrow).Points = []geom.Vec{back(-0.46), t, back(0.46)}
	}
	sketch.SetHidden(frame.Commands, direction, !state.Moving)
	sketch.SetHidden(frame.Commands, arrow, !state.Moving)

	toggle := ecs.ReadComponent[sketch.Button](frame.Storage, state.Toggle)
	toggle.Text, toggle.Color = "Start", sketch.Green
	if state.Moving {
		toggle.Text, toggle.Color = "Stop", sketch.Red
	}

	switch {
	case state.Moving:
		s.Say("Dot is moving TOWARD the target", false)
	case state.Reached:
		s.Say("Dot has reached the target", true)
	default:
		s.Say("Click to set a target, then press Start", false)
	}
	s.Info(
		fmt.Sprintf("Distance to target: %.1f", toTarget.Len()),
		fmt.Sprintf("Direction: %.1f deg", angle*180/math.Pi),
		state.Pursuer.Describe(),
		"Speed: use +/- keys",
	)
}

func setupToward(scene *sketch.Scene, pursuer Pursuer) {
	centre := scene.Canvas.Center()
	state := towardState{Pursuer: pursuer, Home: geom.V(200, 150), Target: centre}

	state.Trail = scene.Trail(50, sketch.Blue)
	state.Marker = ring(scene, centre, 15, sketch.Red, 1,
		sketch.Label{Text: "Target", Offset: geom.V(0, -25), Color: sketch.Red})
	for i := range state.Crosshair {
		state.Crosshair[i] = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Red})
	}
	state.Direction = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Alpha(sketch.Purple, 150)}, sketch.Hidden{})
	state.Arrow = scene.Storage.Spawn(sketch.Position{}, sketch.Polyline{Width: 2, Color: sketch.Alpha(sketch.Purple, 150)}, sketch.Hidden{})
	state.Dot = scene.Ball(state.Home, 10, sketch.Green, sketch.Layer(1), labelAbove("Moving Dot", 8))

	state.Toggle = scene.Button(geom.Rect{X: 250, Y: 20, W: 60, H: 25}, "Start", "toggle")
	scene.Button(geom.Rect{X: 320, Y: 20, W: 60, H: 25}, "Reset", "reset")
	scene.Singleton(state)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "toward",
		Variant:     "lerp",
		Summary:     "The dot eases toward wherever you click",
		Params:      sketch.Params{"speed": 0.05},
		Setup: func(scene *sketch.Scene) error {
			setupToward(scene, &LerpPursuer{Factor: scene.Params.Get("speed")})
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&towardSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "toward",
		Variant:     "spring",
		Summary:     "The dot springs toward the target and settles",
		Params:      sketch.Params{"frequency": 6, "damping": 0.5},
		Setup: func(scene *sketch.Scene) error {
			setupToward(scene, NewSpringPursuer(scene.Params.Get("frequency"), scene.Params.Get("damping")))
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&towardSystem{}} }),
	})
}
