package sketch

import (
	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
)

type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Frame++
	clock.Elapsed += frame.DeltaTime
}

// ButtonSystem turns a press on a button into a ButtonPress action and
// consumes the press so sketches do not also treat it as a click.
type ButtonSystem struct {
	Pointer ecs.Singleton[Pointer]
	Press   ecs.Singleton[ButtonPress]
	Buttons ecs.Query[struct {
		*Button
		Hidden *Hidden `ecs:"optional"`
	}]
}

func (s *ButtonSystem) Execute(frame *ecs.UpdateFrame) {
	press := s.Press.Get()
	press.Action = ""

	pointer := s.Pointer.Get()
	if !pointer.Pressed || pointer.Consumed {
		return
	}
	for b := range s.Buttons.Values() {
		if b.Hidden != nil || !b.Rect.ContainsInclusive(pointer.Pos) {
			continue
		}
		press.Action = b.Action
		pointer.Consumed = true
		return
	}
}

type draggableBody struct {
	ecs.EntityId
	*Position
	*Draggable
	Circle *Circle `ecs:"optional"`
	Box    *Box    `ecs:"optional"`
	Hidden *Hidden `ecs:"optional"`
}

func (d draggableBody) hit(p geom.Vec) bool {
	switch {
	case d.Circle != nil && d.Rim:
		return geom.Circle{C: d.Vec, R: d.Circle.R}.ContainsInclusive(p)
	case d.Circle != nil:
		return geom.Circle{C: d.Vec, R: d.Circle.R}.Contains(p)
	case d.Box != nil:
		return d.Box.Rect(d.Vec).ContainsInclusive(p)
	}
	return false
}

// centreOffset is the vector from the body's position to its visual centre.
func (d draggableBody) centreOffset() geom.Vec {
	if d.Box != nil && !d.Box.Centered {
		return geom.V(d.Box.W/2, d.Box.H/2)
	}
	return geom.Vec{}
}

// clamp keeps the whole shape inside the canvas.
func (d draggableBody) clamp(pos geom.Vec, canvas *Canvas) geom.Vec {
	switch {
	case d.Circle != nil:
		r := d.Circle.R
		return geom.Rect{X: r, Y: r, W: canvas.Width - 2*r, H: canvas.Height - 2*r}.Clamp(pos)
	case d.Box != nil:
		if d.Box.Centered {
			return geom.RectCentered(canvas.Center(), canvas.Width-d.Box.W, canvas.Height-d.Box.H).Clamp(pos)
		}
		return geom.Rect{W: canvas.Width - d.Box.W, H: canvas.Height - d.Box.H}.Clamp(pos)
	}
	return canvas.Bounds().Clamp(pos)
}

// DragSystem picks up, moves and drops Draggable bodies.
type DragSystem struct {
	Pointer ecs.Singleton[Pointer]
	Canvas  ecs.Singleton[Canvas]
	Bodies  ecs.Query[draggableBody]
}

func (s *DragSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()
	canvas := s.Canvas.Get()

	for d := range s.Bodies.Values() {
		d.JustReleased = false
	}

	if pointer.Pressed && !pointer.Consumed {
		var grabbed *draggableBody
		for d := range s.Bodies.Values() {
			if d.Disabled || d.Hidden != nil || !d.hit(pointer.Pos) {
				continue
			}
			if grabbed == nil || d.Order < grabbed.Order {
				picked := d
				grabbed = &picked
			}
		}
		if grabbed != nil {
			grabbed.Dragging = true
			grabbed.Offset = grabbed.Vec.Sub(pointer.Pos)
			pointer.Consumed = true
		}
	}

	for d := range s.Bodies.Values() {
		if !d.Dragging {
			continue
		}

		if pointer.Down && pointer.Moved {
			target := pointer.Pos.Sub(d.centreOffset())
			if d.KeepOffset {
				target = pointer.Pos.Add(d.Offset)
			}
			if d.Constrain {
				target = d.clamp(target, canvas)
			}
			d.Vec = target
		}

		if !pointer.Down {
			d.Dragging = false
			d.JustReleased = true
		}
	}
}

// ParticleSystem integrates particles and deletes the ones whose life ran out.
type ParticleSystem struct {
	Particles ecs.Query[struct {
		ecs.EntityId
		*Position
		*Particle
	}]
}

func (s *ParticleSystem) Execute(frame *ecs.UpdateFrame) {
	for id, p := range s.Particles.Iter() {
		p.Position.Vec = p.Position.Add(p.Vel)
		p.Vel.Y += p.Gravity
		if p.Damping > 0 {
			p.Vel = p.Vel.Scale(p.Damping)
		}

		if p.MinSpeed > 0 && p.Vel.Len() < p.MinSpeed {
			p.Vel = geom.Vec{}
		}

		if p.Decay > 0 {
			p.Life -= p.Decay
			if p.Life <= 0 {
				frame.Commands.Delete(id)
			}
		}
	}
}
