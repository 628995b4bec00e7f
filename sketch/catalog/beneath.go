package catalog

import (
	"fmt"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

const contactSpacing = 15

// Proximity is how one rectangle relates to a surface above it.
type Proximity int

const (
	Misaligned Proximity = iota
	Beneath
	Overlapping
	TooFar
)

// BeneathProximity classifies obj against surface. The gap runs from the
// surface's bottom edge to the object's top edge; touching edges still count
// as aligned. A gap wider than reach is too far to be beneath.
func BeneathProximity(surface, obj geom.Rect, reach float64) (Proximity, float64) {
	gap := obj.Y - surface.Bottom()
	aligned := surface.OverlapsX(obj)
	switch {
	case aligned && gap >= 0 && gap <= reach:
		return Beneath, gap
	case aligned && gap < 0:
		return Overlapping, gap
	case aligned:
		return TooFar, gap
	}
	return Misaligned, gap
}

func (p Proximity) String() string {
	switch p {
	case Beneath:
		return "Orange object is BENEATH the blue surface"
	case Overlapping:
		return "Objects are overlapping (too close)"
	case TooFar:
		return "Orange object is below but too far to be 'beneath'"
	}
	return "Objects are not properly aligned for 'beneath'"
}

type beneathState struct {
	Surface, Object         ecs.EntityId
	SurfaceHome, ObjectHome geom.Vec
	Layers                  []ecs.EntityId
	Contacts                []ecs.EntityId
	GapText                 ecs.EntityId
	ShowLayers              bool
	ShowContacts            bool
	LayersButton            ecs.EntityId
	LinesButton             ecs.EntityId
	Reach                   float64
}

type beneathSystem struct {
	sketch.Context
	State ecs.Singleton[beneathState]
}

func (s *beneathSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	surface, obj := s.Body(state.Surface), s.Body(state.Object)

	action := s.Action()
	switch {
	case action == "layers" || s.Key('l', 'L'):
		state.ShowLayers = !state.ShowLayers
	case action == "lines" || s.Key('c', 'C'):
		state.ShowContacts = !state.ShowContacts
	case action == "reset" || s.Key('r', 'R'):
		surface.Vec, obj.Vec = state.SurfaceHome, state.ObjectHome
	}
	toggleText(frame.Storage, state.LayersButton, state.ShowLayers, "Layers")
	toggleText(frame.Storage, state.LinesButton, state.ShowContacts, "Lines")
	for _, id := range state.Layers {
		sketch.SetHidden(frame.Commands, s.Body(id), !state.ShowLayers)
	}

	sr, or := surface.Rect(), obj.Rect()
	rel, gap := BeneathProximity(sr, or, state.Reach)

	left, right := max(sr.X, or.X), min(sr.Right(), or.Right())
	x := left
	for _, id := range state.Contacts {
		contact := s.Body(id)
		show := state.ShowContacts && x < right
		if show {
			seg := ecs.ReadComponent[sketch.Segment](frame.Storage, id)
			seg.From, seg.To = geom.V(x, sr.Bottom()), geom.V(x, or.Y)
		}
		sketch.SetHidden(frame.Commands, contact, !show)
		x += contactSpacing
	}
	label := s.Body(state.GapText)
	label.Vec = geom.V((left+right)/2-10, sr.Bottom()+gap/2+6)
	label.Caption.Text = fmt.Sprintf("%dpx", round(gap))
	sketch.SetHidden(frame.Commands, label, !state.ShowContacts || left >= right)

	obj.Fill.RGBA = sketch.Orange
	if rel == Beneath {
		obj.Fill.RGBA = sketch.Green
	}
	s.Say(rel.String(), rel == Beneath)
	s.Info(fmt.Sprintf("Gap: %dpx, Aligned: %t", round(gap), sr.OverlapsX(or)))
}

// FullyBeneath reports whether obj lies entirely inside the zone of the given
// height directly under the surface.
func FullyBeneath(surface, obj geom.Rect, zoneHeight float64) bool {
	zone := geom.Rect{X: surface.X, Y: surface.Bottom(), W: surface.W, H: zoneHeight}
	return zone.ContainsRect(obj)
}

type beneathZoneState struct {
	Surface, Object ecs.EntityId
	Zone            ecs.EntityId
	Arrows          []ecs.EntityId
	ZoneHeight      float64
	Quiet           bool
}

type beneathZoneSystem struct {
	sketch.Context
	State ecs.Singleton[beneathZoneState]
}

func (s *beneathZoneSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	surface, obj := s.Body(state.Surface), s.Body(state.Object)
	sr := surface.Rect()

	zone := s.Body(state.Zone)
	zone.Vec = geom.V(sr.X, sr.Bottom())
	for i, id := range state.Arrows {
		x := sr.X + 20 + 40*float64(i)
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, id)
		seg.From, seg.To = geom.V(x, sr.Bottom()), geom.V(x, sr.Bottom()+25)
	}

	inside := FullyBeneath(sr, obj.Rect(), state.ZoneHeight)
	obj.Fill.RGBA = sketch.Orange
	zone.Fill.RGBA = sketch.Alpha(sketch.Blue, 30)
	if inside {
		obj.Fill.RGBA = sketch.Green
		zone.Fill.RGBA = sketch.Alpha(sketch.Green, 60)
	}
	if state.Quiet {
		return
	}
	if inside {
		s.Say("Orange is BENEATH blue surface", true)
	} else {
		s.Say("Orange is NOT beneath (must be fully in zone)", false)
	}
}

func setupBeneathZone(scene *sketch.Scene, quiet bool) error {
	zoneH := scene.Params.Get("zoneHeight")
	if zoneH <= 0 {
		return fmt.Errorf("zoneHeight must be positive, got %g", zoneH)
	}
	state := beneathZoneState{ZoneHeight: zoneH, Quiet: quiet}
	surface := geom.Rect{X: 50, Y: 100, W: 300, H: 10}
	state.Zone = scene.Outline(geom.Rect{X: surface.X, Y: surface.Bottom(), W: surface.W, H: zoneH},
		sketch.Alpha(sketch.Blue, 120), 1, sketch.Fill{RGBA: sketch.Alpha(sketch.Blue, 30)}, sketch.Layer(-1),
		sketch.Label{Text: "BENEATH ZONE", Offset: geom.V(0, zoneH/2-10), Color: sketch.Muted})
	for x := surface.X + 20; x < surface.Right()-20; x += 40 {
		state.Arrows = append(state.Arrows, scene.Storage.Spawn(sketch.Position{},
			sketch.Segment{Width: 1, Color: sketch.Alpha(sketch.Blue, 150), Dashed: true}))
	}
	state.Object = scene.Rect(geom.Rect{X: 170, Y: 30, W: 60, H: 40}, sketch.Orange,
		sketch.Stroke{Color: sketch.Dark, Width: 1}, sketch.Draggable{Order: 1, Constrain: true})
	state.Surface = scene.Rect(surface, sketch.Blue, sketch.Layer(1), sketch.Draggable{Constrain: true})
	scene.Singleton(state)
	return nil
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "beneath",
		Variant:     "proximity",
		Summary:     "Drag the orange block close under the blue surface",
		Params:      sketch.Params{"reach": 30},
		Setup: func(scene *sketch.Scene) error {
			state := beneathState{
				Reach:        scene.Params.Get("reach"),
				SurfaceHome:  geom.V(150, 100),
				ObjectHome:   geom.V(170, 130),
				ShowLayers:   true,
				ShowContacts: true,
			}
			for i := range 5 {
				y := 80 + 30*float64(i)
				alpha := uint8(geom.Map(float64(i), 0, 4, 20, 5))
				state.Layers = append(state.Layers,
					scene.Rect(geom.Rect{Y: y, W: scene.Canvas.Width, H: 30}, sketch.Alpha(sketch.Blue, alpha), sketch.Layer(-2)),
					scene.Text(geom.V(10, y+8), fmt.Sprintf("Layer %d", i), sketch.Alpha(sketch.Muted, 120)))
			}
			for range 5 {
				state.Contacts = append(state.Contacts, scene.Storage.Spawn(sketch.Position{},
					sketch.Segment{Width: 1, Color: sketch.Alpha(sketch.Red, 150)}, sketch.Layer(2), sketch.Hidden{}))
			}
			state.LayersButton = scene.Button(geom.Rect{X: 250, Y: 10, W: 80, H: 20}, "Hide Layers", "layers")
			state.LinesButton = scene.Button(geom.Rect{X: 250, Y: 35, W: 80, H: 20}, "Hide Lines", "lines")
			scene.Button(geom.Rect{X: 340, Y: 10, W: 50, H: 20}, "Reset", "reset")
			state.GapText = scene.Storage.Spawn(sketch.Position{}, sketch.Caption{Color: sketch.Red}, sketch.Hidden{})

			drag := sketch.Draggable{KeepOffset: true, Constrain: true}
			state.Object = scene.Rect(geom.Rect{X: 170, Y: 130, W: 60, H: 40}, sketch.Orange,
				sketch.Stroke{Color: sketch.Dark, Width: 1}, withOrder(drag, 1),
				sketch.Label{Text: "Beneath Object", Offset: geom.V(0, 40), Color: sketch.Ink})
			state.Surface = scene.Rect(geom.Rect{X: 150, Y: 100, W: 100, H: 20}, sketch.Blue, sketch.Layer(1), drag,
				sketch.Label{Text: "Surface", Offset: geom.V(0, -20), Color: sketch.Ink})
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&beneathSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "beneath",
		Variant:     "zone",
		Params:      sketch.Params{"zoneHeight": 60},
		Summary:     "The block is beneath only when it sits wholly inside the zone under the surface",
		Setup: func(scene *sketch.Scene) error {
			return setupBeneathZone(scene, false)
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&beneathZoneSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "beneath",
		Variant:     "minimal",
		Params:      sketch.Params{"zoneHeight": 60},
		Summary:     "The beneath zone on its own, without commentary",
		Setup: func(scene *sketch.Scene) error {
			return setupBeneathZone(scene, true)
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&beneathZoneSystem{}} }),
	})
}

func withOrder(d sketch.Draggable, order int) sketch.Draggable {
	d.Order = order
	return d
}
