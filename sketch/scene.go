package sketch

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
)

type Canvas struct {
	Width, Height float64
	Background    color.RGBA
}

// Bounds returns the canvas as a rectangle at the origin
func (c *Canvas) Bounds() geom.Rect {
	return geom.Rect{W: c.Width, H: c.Height}
}

// Center returns the middle of the canvas
func (c *Canvas) Center() geom.Vec {
	return geom.V(c.Width/2, c.Height/2)
}

// Clock counts frames and simulated seconds since the session started.
type Clock struct {
	Frame   uint64
	Elapsed float64
}

// Status is the sentence a sketch shows under its drawing, plus optional
// readout lines drawn in the top-left corner.
type Status struct {
	Text      string
	Highlight bool
	Info      []string
}

// ButtonPress holds the action of the button pressed this frame, if any.
type ButtonPress struct {
	Action string
}

// Random is the session's seeded random source.
type Random struct {
	*rand.Rand
}

// Range returns a uniform value in [lo, hi)
func (r Random) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Context bundles the singletons most sketch systems touch. Embed it in a
// system and the scheduler binds every field.
type Context struct {
	Pointer ecs.Singleton[Pointer]
	Keys    ecs.Singleton[Keys]
	Status  ecs.Singleton[Status]
	Buttons ecs.Singleton[ButtonPress]
	Clock   ecs.Singleton[Clock]
	Canvas  ecs.Singleton[Canvas]
	Random  ecs.Singleton[Random]
	Params  ecs.Singleton[Params]
	Bodies  ecs.View[Body]
}

// Click reports an unconsumed pointer press this frame
func (c *Context) Click() (geom.Vec, bool) {
	return c.Pointer.Get().Click()
}

// Key reports whether any of the keys was pressed this frame
func (c *Context) Key(keys ...Key) bool {
	return c.Keys.Get().Has(keys...)
}

// Action returns the button action pressed this frame, or ""
func (c *Context) Action() string {
	return c.Buttons.Get().Action
}

// Say replaces the status sentence
func (c *Context) Say(text string, highlight bool) {
	st := c.Status.Get()
	st.Text = text
	st.Highlight = highlight
}

// Info replaces the readout lines
func (c *Context) Info(lines ...string) {
	st := c.Status.Get()
	st.Info = append(st.Info[:0], lines...)
}

// Infof formats one readout line per call into the list built so far this frame
func (c *Context) Infof(format string, args ...any) {
	st := c.Status.Get()
	st.Info = append(st.Info, fmt.Sprintf(format, args...))
}

// Body returns the body view of an entity, or nil once it is gone
func (c *Context) Body(id ecs.EntityId) *Body {
	return c.Bodies.Get(id)
}

// Param reads a parameter of the active variant
func (c *Context) Param(name string) float64 {
	return c.Params.Get().Get(name)
}

// Scene is handed to a Definition's Setup to build the initial entities.
type Scene struct {
	Storage *ecs.Storage
	Canvas  *Canvas
	Params  Params
	Rand    Random
	// Script is optional source text supplied by the host, such as a Lua path.
	Script string
}

// Ball spawns a circle body centred at pos
func (s *Scene) Ball(pos geom.Vec, r float64, c color.RGBA, extra ...any) ecs.EntityId {
	components := append([]any{Position{pos}, Circle{R: r}, Fill{c}, Stroke{Color: Ink, Width: 1}}, extra...)
	return s.Storage.Spawn(components...)
}

// Rect spawns a box body anchored at its top-left corner
func (s *Scene) Rect(r geom.Rect, c color.RGBA, extra ...any) ecs.EntityId {
	components := append([]any{Position{geom.V(r.X, r.Y)}, Box{W: r.W, H: r.H}, Fill{c}}, extra...)
	return s.Storage.Spawn(components...)
}

// Outline spawns an unfilled rectangle
func (s *Scene) Outline(r geom.Rect, c color.RGBA, width float32, extra ...any) ecs.EntityId {
	components := append([]any{Position{geom.V(r.X, r.Y)}, Box{W: r.W, H: r.H}, Stroke{Color: c, Width: width}}, extra...)
	return s.Storage.Spawn(components...)
}

// Button spawns a clickable button
func (s *Scene) Button(r geom.Rect, text, action string) ecs.EntityId {
	return s.Storage.Spawn(Button{Rect: r, Text: text, Action: action, Color: Dark})
}

// Text spawns a caption with its top-left corner at pos
func (s *Scene) Text(pos geom.Vec, text string, c color.RGBA) ecs.EntityId {
	return s.Storage.Spawn(Position{pos}, Caption{Text: text, Color: c})
}

// Line spawns a straight segment
func (s *Scene) Line(from, to geom.Vec, c color.RGBA, width float32) ecs.EntityId {
	return s.Storage.Spawn(Segment{From: from, To: to, Color: c, Width: width})
}

// Trail spawns a trail entity and returns the trail it renders
func (s *Scene) Trail(capacity int, c color.RGBA) *geom.Trail {
	trail := geom.NewTrail(capacity)
	s.Storage.Spawn(TrailView{Trail: trail, Color: c, Radius: 2})
	return trail
}

// Singleton stores a sketch's state struct in the session storage
func (s *Scene) Singleton(value any) {
	s.Storage.AddSingleton(value)
}

// Burst describes a spray of particles.
type Burst struct {
	Count    int
	Speed    float64 // maximum speed on each axis
	Radial   bool    // evenly spaced directions at exactly Speed
	Size     [2]float64
	Gravity  float64
	Damping  float64
	Decay    float64
	MinSpeed float64
	Color    color.RGBA
}

// Emit queues the particles of a burst at pos
func (b Burst) Emit(cmd *ecs.Commands, rng Random, pos geom.Vec) {
	damping := b.Damping
	if damping == 0 {
		damping = 1
	}
	for i := range b.Count {
		var vel geom.Vec
		if b.Radial {
			angle := 2 * math.Pi * float64(i) / float64(b.Count)
			vel = geom.V(math.Cos(angle), math.Sin(angle)).Scale(b.Speed)
		} else {
			vel = geom.V(rng.Range(-b.Speed, b.Speed), rng.Range(-b.Speed, b.Speed))
		}
		size := b.Size[0]
		if b.Size[1] > b.Size[0] {
			size = rng.Range(b.Size[0], b.Size[1])
		}
		cmd.Spawn(Position{pos}, Particle{
			Vel:      vel,
			Gravity:  b.Gravity,
			Damping:  damping,
			Life:     1,
			Decay:    b.Decay,
			MinSpeed: b.MinSpeed,
			Size:     size,
			Color:    b.Color,
		})
	}
}
