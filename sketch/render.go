package sketch

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"golang.org/x/image/font/basicfont"
)

// Screen is the image the draw systems render into for the current frame.
type Screen struct {
	*ebiten.Image
}

var face = text.NewGoXFace(basicfont.Face7x13)

const lineHeight = 14

// drawText draws s with its top edge at y, aligned on x according to align.
func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}

type renderBody struct {
	*Position
	Layer  *Layer  `ecs:"optional"`
	Circle *Circle `ecs:"optional"`
	Box    *Box    `ecs:"optional"`
	Fill   *Fill   `ecs:"optional"`
	Stroke *Stroke `ecs:"optional"`
	Label  *Label  `ecs:"optional"`
	Hidden *Hidden `ecs:"optional"`
}

func (b renderBody) layer() int {
	if b.Layer == nil {
		return 0
	}
	return int(*b.Layer)
}

// RenderSystem draws the canvas contents back to front: background, lines,
// trails, bodies by layer, labels, captions, buttons and particles.
type RenderSystem struct {
	Screen ecs.Singleton[Screen]
	Canvas ecs.Singleton[Canvas]

	Polylines ecs.Query[struct {
		*Polyline
		Hidden *Hidden `ecs:"optional"`
	}]
	Segments ecs.Query[struct {
		*Segment
		Hidden *Hidden `ecs:"optional"`
	}]
	Trails ecs.Query[struct {
		*TrailView
		Hidden *Hidden `ecs:"optional"`
	}]
	Bodies   ecs.Query[renderBody]
	Captions ecs.Query[struct {
		*Position
		*Caption
		Hidden *Hidden `ecs:"optional"`
	}]
	Buttons ecs.Query[struct {
		*Button
		Hidden *Hidden `ecs:"optional"`
	}]
	Particles ecs.Query[struct {
		*Position
		*Particle
	}]

	sorted []renderBody
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	dst := screen.Image
	dst.Fill(s.Canvas.Get().Background)

	for p := range s.Polylines.Values() {
		if p.Hidden != nil {
			continue
		}
		for i := 1; i < len(p.Points); i++ {
			a, b := p.Points[i-1], p.Points[i]
			vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), p.Width, p.Color, true)
		}
	}

	for seg := range s.Segments.Values() {
		if seg.Hidden != nil {
			continue
		}
		drawSegment(dst, seg.Segment)
	}

	for t := range s.Trails.Values() {
		if t.Hidden != nil {
			continue
		}
		points := t.Trail.Points()
		for i, p := range points {
			alpha := uint8(40 + 160*(i+1)/len(points))
			vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), t.Radius, Alpha(t.Color, alpha), true)
		}
	}

	s.sorted = s.sorted[:0]
	for b := range s.Bodies.Values() {
		if b.Hidden == nil {
			s.sorted = append(s.sorted, b)
		}
	}
	slices.SortStableFunc(s.sorted, func(a, b renderBody) int {
		return cmp.Compare(a.layer(), b.layer())
	})
	for _, b := range s.sorted {
		drawBody(dst, b)
	}
	for _, b := range s.sorted {
		if b.Label == nil {
			continue
		}
		at := b.Vec
		if b.Box != nil {
			at = b.Box.Rect(b.Vec).Center()
		}
		at = at.Add(b.Label.Offset)
		drawText(dst, b.Label.Text, at.X, at.Y-lineHeight/2, b.Label.Color, text.AlignCenter)
	}

	for c := range s.Captions.Values() {
		if c.Hidden == nil {
			drawText(dst, c.Text, c.X, c.Y, c.Caption.Color, text.AlignStart)
		}
	}

	for b := range s.Buttons.Values() {
		if b.Hidden != nil {
			continue
		}
		r := b.Rect
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), b.Color, false)
		drawText(dst, b.Text, r.X+r.W/2, r.Y+r.H/2-lineHeight/2, White, text.AlignCenter)
	}

	for p := range s.Particles.Values() {
		alpha := uint8(255 * geom.Clamp(p.Life, 0, 1))
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(p.Size/2), Alpha(p.Particle.Color, alpha), true)
	}
}

func drawBody(dst *ebiten.Image, b renderBody) {
	switch {
	case b.Circle != nil:
		x, y, r := float32(b.X), float32(b.Y), float32(b.Circle.R)
		if b.Fill != nil {
			vector.DrawFilledCircle(dst, x, y, r, b.Fill.RGBA, true)
		}
		if b.Stroke != nil {
			vector.StrokeCircle(dst, x, y, r, b.Stroke.Width, b.Stroke.Color, true)
		}
	case b.Box != nil:
		r := b.Box.Rect(b.Vec)
		x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
		if b.Fill != nil {
			vector.DrawFilledRect(dst, x, y, w, h, b.Fill.RGBA, false)
		}
		if b.Stroke != nil {
			vector.StrokeRect(dst, x, y, w, h, b.Stroke.Width, b.Stroke.Color, false)
		}
	}
}

func drawSegment(dst *ebiten.Image, seg *Segment) {
	if !seg.Dashed {
		vector.StrokeLine(dst, float32(seg.From.X), float32(seg.From.Y), float32(seg.To.X), float32(seg.To.Y), seg.Width, seg.Color, true)
		return
	}

	const dash = 6
	length := seg.From.Dist(seg.To)
	if length == 0 {
		return
	}
	for d := 0.0; d < length; d += 2 * dash {
		a := geom.LerpVec(seg.From, seg.To, d/length)
		b := geom.LerpVec(seg.From, seg.To, min(d+dash, length)/length)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), seg.Width, seg.Color, true)
	}
}

// HUDSystem draws the readout lines and the status sentence on top of the sketch.
type HUDSystem struct {
	Screen ecs.Singleton[Screen]
	Canvas ecs.Singleton[Canvas]
	Status ecs.Singleton[Status]
}

var highlight = color.RGBA{30, 140, 60, 255}

func (s *HUDSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	status := s.Status.Get()
	canvas := s.Canvas.Get()

	for i, line := range status.Info {
		drawText(screen.Image, line, 10, 8+float64(i*lineHeight), Muted, text.AlignStart)
	}

	if status.Text != "" {
		c := Ink
		if status.Highlight {
			c = highlight
		}
		drawText(screen.Image, status.Text, canvas.Width/2, canvas.Height-8-lineHeight, c, text.AlignCenter)
	}
}
