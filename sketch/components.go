package sketch

import (
	"image/color"
	"reflect"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
)

// Position places an entity on the canvas. Circles are positioned by their
// centre, boxes by their top-left corner unless Box.Centered is set.
type Position struct {
	geom.Vec
}

// At is shorthand for a Position at (x, y)
func At(x, y float64) Position {
	return Position{geom.V(x, y)}
}

type Circle struct {
	R float64
}

type Box struct {
	W, H     float64
	Centered bool
}

// Rect returns the box placed at pos
func (b Box) Rect(pos geom.Vec) geom.Rect {
	if b.Centered {
		return geom.RectCentered(pos, b.W, b.H)
	}
	return geom.Rect{X: pos.X, Y: pos.Y, W: b.W, H: b.H}
}

type Fill struct {
	color.RGBA
}

type Stroke struct {
	Color color.RGBA
	Width float32
}

// Layer orders bodies when drawing; lower layers are drawn first.
type Layer int

// Label is text drawn centred on an entity's position plus Offset.
type Label struct {
	Text   string
	Offset geom.Vec
	Color  color.RGBA
}

// Caption is free-standing text whose top-left corner sits at the entity's Position.
type Caption struct {
	Text  string
	Color color.RGBA
}

type Segment struct {
	From, To geom.Vec
	Width    float32
	Color    color.RGBA
	Dashed   bool
}

type Polyline struct {
	Points []geom.Vec
	Width  float32
	Color  color.RGBA
}

// TrailView renders a bounded trail as fading dots.
type TrailView struct {
	Trail  *geom.Trail
	Color  color.RGBA
	Radius float32
}

// Draggable marks a body the pointer can pick up. Among overlapping hits the
// lowest Order wins.
type Draggable struct {
	Order int
	// KeepOffset keeps the distance between the grab point and the body;
	// otherwise the body's centre snaps to the pointer.
	KeepOffset bool
	// Constrain keeps the whole shape on the canvas.
	Constrain bool
	// Rim lets a press exactly on a circle's edge pick it up.
	Rim      bool
	Disabled bool

	Dragging     bool
	JustReleased bool
	Offset       geom.Vec
}

// Button is a clickable rectangle. Pressing it stores Action in ButtonPress
// for the current frame.
type Button struct {
	Rect   geom.Rect
	Text   string
	Action string
	Color  color.RGBA
}

type Particle struct {
	Vel     geom.Vec
	Gravity float64
	// Damping scales the velocity every frame; zero leaves it unchanged.
	Damping float64
	// Life fades from 1 to 0 by Decay each frame. A zero Decay never expires.
	Life  float64
	Decay float64
	// MinSpeed stops the particle once it slows below this speed.
	MinSpeed float64
	Size     float64
	Color    color.RGBA
}

// Hidden excludes an entity from rendering and hit tests.
type Hidden struct{}

var hiddenType = reflect.TypeFor[Hidden]()

// Body is the view sketch systems use to reach the usual components of one object.
type Body struct {
	ecs.EntityId
	*Position
	Circle  *Circle    `ecs:"optional"`
	Box     *Box       `ecs:"optional"`
	Fill    *Fill      `ecs:"optional"`
	Drag    *Draggable `ecs:"optional"`
	Label   *Label     `ecs:"optional"`
	Caption *Caption   `ecs:"optional"`
	Trail   *TrailView `ecs:"optional"`
	Hidden  *Hidden    `ecs:"optional"`
}

// Shape returns the circle of a body, with a zero radius when it has none
func (b *Body) Shape() geom.Circle {
	c := geom.Circle{C: b.Vec}
	if b.Circle != nil {
		c.R = b.Circle.R
	}
	return c
}

// Rect returns the rectangle of a body, or an empty rectangle at its position
func (b *Body) Rect() geom.Rect {
	if b.Box == nil {
		return geom.Rect{X: b.X, Y: b.Y}
	}
	return b.Box.Rect(b.Vec)
}

// Centre returns the visual centre of the body
func (b *Body) Centre() geom.Vec {
	if b.Box != nil {
		return b.Rect().Center()
	}
	return b.Vec
}

// SetHidden shows or hides a body through the deferred command buffer.
func SetHidden(cmd *ecs.Commands, b *Body, hidden bool) {
	switch {
	case hidden && b.Hidden == nil:
		cmd.AddComponent(b.EntityId, Hidden{})
	case !hidden && b.Hidden != nil:
		cmd.RemoveComponent(b.EntityId, hiddenType)
	}
}

// RegisterComponents registers every shared component with a registry
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Circle](registry)
	ecs.RegisterComponent[Box](registry)
	ecs.RegisterComponent[Fill](registry)
	ecs.RegisterComponent[Stroke](registry)
	ecs.RegisterComponent[Layer](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Caption](registry)
	ecs.RegisterComponent[Segment](registry)
	ecs.RegisterComponent[Polyline](registry)
	ecs.RegisterComponent[TrailView](registry)
	ecs.RegisterComponent[Draggable](registry)
	ecs.RegisterComponent[Button](registry)
	ecs.RegisterComponent[Particle](registry)
	ecs.RegisterComponent[Hidden](registry)
}
