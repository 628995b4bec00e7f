package catalog

import (
	"fmt"
	"strings"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

const (
	groundY      = 220
	arcSamples   = 101
	arcStep      = 0.015
	headingAhead = 0.01
)

// ArcPoint evaluates the crossing arc at t. The curve keeps x on the straight
// run from start to end while y bends towards control; both ends sit on the
// ground line.
func ArcPoint(start, end geom.Vec, control, t float64) geom.Vec {
	return geom.CubicBezierVec(start, geom.V(start.X, control), geom.V(end.X, control), end, t)
}

// ArcPath samples n points along the arc.
func ArcPath(start, end geom.Vec, control float64, n int) []geom.Vec {
	path := make([]geom.Vec, n)
	for i := range path {
		path[i] = ArcPoint(start, end, control, float64(i)/float64(n-1))
	}
	return path
}

// arcKind is what differs between going over an obstacle and under a bridge.
type arcKind struct {
	Word      string
	Obstacle  string
	Controls  [3]float64
	ZoneEdge  float64
	ZoneLabel string
	// Clearance measures how far the mover is from the ground line, positive
	// on the side the arc bends to.
	Clearance func(y float64) float64
	Unit      string
}

var (
	overArc = arcKind{
		Word:      "OVER",
		Obstacle:  "obstacle",
		Controls:  [3]float64{150, 100, 60},
		ZoneEdge:  50,
		ZoneLabel: "Over Zone",
		Clearance: func(y float64) float64 { return groundY - y },
		Unit:      "high",
	}
	underArc = arcKind{
		Word:      "UNDER",
		Obstacle:  "bridge",
		Controls:  [3]float64{240, 260, 280},
		ZoneEdge:  280,
		ZoneLabel: "Under Zone",
		Clearance: func(y float64) float64 { return y - groundY },
		Unit:      "deep",
	}
)

type arcState struct {
	Kind      arcKind
	Obstacle  geom.Rect
	Start     geom.Vec
	End       geom.Vec
	Control   float64
	Progress  geom.Progress
	Moving    bool
	Completed bool
	ShowPath  bool

	Mover   ecs.EntityId
	Path    ecs.EntityId
	Dots    []ecs.EntityId
	Heading ecs.EntityId
	Halo    ecs.EntityId
	Plumb   ecs.EntityId
	Readout ecs.EntityId
}

type arcSystem struct {
	sketch.Context
	State ecs.Singleton[arcState]
}

func (s *arcSystem) retrace(frame *ecs.UpdateFrame, state *arcState) {
	path := ArcPath(state.Start, state.End, state.Control, arcSamples)
	ecs.ReadComponent[sketch.Polyline](frame.Storage, state.Path).Points = path
	for i, id := range state.Dots {
		s.Body(id).Vec = path[i*5]
	}
}

func (s *arcSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	kind := state.Kind
	mover := s.Body(state.Mover)

	restart := func(moving bool) {
		state.Progress.Reset()
		state.Moving = moving
		state.Completed = false
		mover.Vec = state.Start
	}
	if _, ok := s.Click(); ok && (state.Completed || !state.Moving) {
		restart(true)
	}
	for i, k := range []sketch.Key{'1', '2', '3'} {
		if s.Key(k) {
			state.Control = kind.Controls[i]
			s.retrace(frame, state)
		}
	}
	switch {
	case s.Key(sketch.KeySpace):
		state.ShowPath = !state.ShowPath
	case s.Key('r', 'R'):
		restart(false)
	}

	if state.Moving {
		state.Progress.Advance()
		mover.Vec = ArcPoint(state.Start, state.End, state.Control, state.Progress.Value)
		if state.Progress.Done() {
			state.Moving = false
			state.Completed = true
		}
	}

	sketch.SetHidden(frame.Commands, s.Body(state.Path), !state.ShowPath)
	for _, id := range state.Dots {
		sketch.SetHidden(frame.Commands, s.Body(id), !state.ShowPath)
	}

	heading := s.Body(state.Heading)
	if state.Moving {
		next := ArcPoint(state.Start, state.End, state.Control, min(state.Progress.Value+headingAhead, 1))
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Heading)
		seg.From = mover.Vec
		seg.To = mover.Add(next.Sub(mover.Vec).Normalize().Scale(20))
	}
	sketch.SetHidden(frame.Commands, heading, !state.Moving)

	crossing := state.Moving && mover.X > state.Obstacle.X && mover.X < state.Obstacle.Right()
	halo := s.Body(state.Halo)
	halo.Vec = mover.Vec
	sketch.SetHidden(frame.Commands, halo, !crossing)

	clearance := kind.Clearance(mover.Y)
	plumb, readout := s.Body(state.Plumb), s.Body(state.Readout)
	showReadout := (state.Moving || state.Completed) && (kind.Word == "OVER" || clearance > 0)
	if showReadout {
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Plumb)
		seg.From, seg.To = mover.Vec, geom.V(mover.X, groundY)
		readout.Vec = mover.Add(geom.V(15, -10))
		readout.Caption.Text = fmt.Sprintf("%.0fpx %s", clearance, kind.Unit)
	}
	sketch.SetHidden(frame.Commands, plumb, !showReadout)
	sketch.SetHidden(frame.Commands, readout, !showReadout)

	s.Info()
	switch {
	case state.Completed:
		s.Say(fmt.Sprintf("Successfully %s %s the %s!", passVerb(kind), kind.Word, kind.Obstacle), true)
		s.Infof("Click to reset and try again")
	case state.Moving:
		s.Say(fmt.Sprintf("Moving %s the %s...", kind.Word, kind.Obstacle), false)
		s.Infof("Progress: %.1f%%", state.Progress.Value*100)
	default:
		s.Say(fmt.Sprintf("Click to move the yellow circle %s the brown %s", kind.Word, kind.Obstacle), false)
		s.Infof("Keys 1-3 change how far the path bends %s", strings.ToLower(kind.Word))
	}
	s.Infof("Press SPACE to toggle path visibility")
}

func passVerb(kind arcKind) string {
	if kind.Word == "OVER" {
		return "crossed"
	}
	return "passed"
}

func setupArc(scene *sketch.Scene, kind arcKind, obstacleCentre geom.Vec) error {
	state := arcState{
		Kind:     kind,
		Obstacle: geom.RectCentered(obstacleCentre, 80, 60),
		Start:    geom.V(50, 200),
		End:      geom.V(350, 200),
		Control:  scene.Params.Get("control"),
		Progress: geom.Progress{Step: arcStep},
		ShowPath: true,
	}
	width := scene.Canvas.Width
	scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: geom.V(0, groundY), To: geom.V(width, groundY), Width: 2, Color: sketch.Muted})
	scene.Text(geom.V(width/2-35, groundY+6), "Ground Level", sketch.Muted)

	ob := state.Obstacle
	scene.Rect(ob, sketch.Brown, sketch.Stroke{Color: sketch.Dark, Width: 2},
		sketch.Label{Text: "Obstacle", Color: sketch.White})
	edge := ob.Y
	if kind.Word == "UNDER" {
		edge = ob.Bottom()
	}
	for _, x := range []float64{ob.X, ob.Right()} {
		scene.Storage.Spawn(sketch.Position{}, sketch.Segment{From: geom.V(x, edge), To: geom.V(x, kind.ZoneEdge),
			Width: 1, Color: sketch.Alpha(sketch.Brown, 150), Dashed: true})
	}
	scene.Text(geom.V(ob.Center().X-30, kind.ZoneEdge+4), kind.ZoneLabel, sketch.Brown)

	path := ArcPath(state.Start, state.End, state.Control, arcSamples)
	state.Path = scene.Storage.Spawn(sketch.Position{}, sketch.Polyline{Points: path, Width: 2, Color: sketch.Alpha(sketch.Blue, 150)})
	state.Dots = dots(scene, path, 5, sketch.Blue)

	scene.Ball(state.Start, 10, sketch.Green, sketch.Layer(-1), labelAbove("Start", 13))
	scene.Ball(state.End, 10, sketch.Red, sketch.Layer(-1), labelAbove("End", 13))

	state.Plumb = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 1, Color: sketch.Alpha(sketch.Orange, 150), Dashed: true}, sketch.Hidden{})
	state.Readout = scene.Storage.Spawn(sketch.Position{}, sketch.Caption{Color: sketch.Orange}, sketch.Hidden{})
	state.Heading = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Red}, sketch.Hidden{})
	state.Halo = ring(scene, state.Start, 20, sketch.Alpha(sketch.Green, 150), 2, sketch.Layer(2), sketch.Hidden{},
		sketch.Label{Text: kind.Word + " the " + kind.Obstacle + "!", Offset: geom.V(0, haloLabelOffset(kind)), Color: sketch.Green})
	state.Mover = scene.Ball(state.Start, 12, sketch.Yellow, sketch.Layer(1))
	scene.Singleton(state)
	return nil
}

func haloLabelOffset(kind arcKind) float64 {
	if kind.Word == "OVER" {
		return -30
	}
	return 30
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "over",
		Variant:     "arc",
		Summary:     "The circle arcs above the obstacle from one side to the other",
		Params:      sketch.Params{"control": 100},
		Setup: func(scene *sketch.Scene) error {
			return setupArc(scene, overArc, geom.V(200, 180))
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&arcSystem{}} }),
	})
}
