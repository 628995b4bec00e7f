package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/internal/script"
	"github.com/plus3/prepositions/sketch"
)

const (
	alongPoints = 101
	alongAhead  = 5
)

type alongState struct {
	Path      []geom.Vec
	Index     float64
	Speed     float64
	Moving    bool
	Completed bool
	Trail     *geom.Trail

	Mover   ecs.EntityId
	Heading ecs.EntityId
}

type alongSystem struct {
	sketch.Context
	State ecs.Singleton[alongState]
}

func (s *alongSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)
	last := float64(len(state.Path) - 1)

	restart := func(moving bool) {
		state.Index = 0
		state.Moving = moving
		state.Completed = false
		state.Trail.Clear()
		mover.Vec = state.Path[0]
	}
	if s.Action() == "reset" {
		restart(false)
	}
	if _, ok := s.Click(); ok {
		switch {
		case state.Completed:
			restart(true)
		case !state.Moving:
			state.Moving = true
			state.Trail.Clear()
		}
	}

	if state.Moving {
		if state.Index < last {
			state.Index = math.Min(state.Index+state.Speed, last)
			mover.Vec = geom.PolylineAt(state.Path, state.Index)
			state.Trail.Push(mover.Vec)
		} else {
			state.Moving = false
			state.Completed = true
		}
	}

	heading := s.Body(state.Heading)
	showHeading := state.Moving && state.Index < last-1
	if showHeading {
		i := int(state.Index)
		from, to := state.Path[i], state.Path[min(i+alongAhead, len(state.Path)-1)]
		dir := to.Sub(from).Normalize()
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, state.Heading)
		seg.From, seg.To = from, from.Add(dir.Scale(20))
	}
	sketch.SetHidden(frame.Commands, heading, !showHeading)

	mover.Fill.RGBA = sketch.Yellow
	switch {
	case state.Moving:
		s.Say("Circle is moving ALONG the path", false)
	case state.Completed:
		mover.Fill.RGBA = sketch.Green
		s.Say("Circle has traveled ALONG the entire path", true)
	default:
		s.Say("Click to move circle ALONG the path", false)
	}
	s.Info(fmt.Sprintf("Progress: %d%%", percent(state.Index/last)))
}

func setupAlong(scene *sketch.Scene, path []geom.Vec) {
	state := alongState{Path: path, Speed: scene.Params.Get("speed")}
	scene.Storage.Spawn(sketch.Position{}, sketch.Polyline{Points: path, Width: 2, Color: sketch.Alpha(sketch.Blue, 150)})
	dots(scene, path, 5, sketch.Blue)
	first, end := path[0], path[len(path)-1]
	scene.Ball(first, 8, sketch.Green, sketch.Layer(-1), labelAbove("START", 3))
	scene.Ball(end, 8, sketch.Red, sketch.Layer(-1), labelAbove("END", 3))

	state.Trail = scene.Trail(150, sketch.Orange)
	state.Heading = scene.Storage.Spawn(sketch.Position{}, sketch.Segment{Width: 2, Color: sketch.Red}, sketch.Layer(2), sketch.Hidden{})
	state.Mover = scene.Ball(first, 12, sketch.Yellow, sketch.Layer(1), labelAbove("Moving Circle", 18))
	scene.Button(geom.Rect{X: 10, Y: 75, W: 60, H: 25}, "Reset", "reset")
	scene.Singleton(state)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "along",
		Variant:     "wave",
		Summary:     "The circle follows a sine wave from start to end",
		Params:      sketch.Params{"speed": 0.8},
		Setup: func(scene *sketch.Scene) error {
			setupAlong(scene, geom.SineWave(50, 350, 150, 60, 4*math.Pi, alongPoints))
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&alongSystem{}} }),
	})

	sketch.Register(sketch.Definition{
		Preposition: "along",
		Variant:     "scripted",
		Summary:     "The circle follows a path computed by a Lua script",
		Params:      sketch.Params{"speed": 0.8},
		Setup: func(scene *sketch.Scene) error {
			src := scene.Script
			if src == "" {
				src = script.DefaultWave
			}
			p, err := script.CompilePath(src)
			if err != nil {
				return fmt.Errorf("along path: %w", err)
			}
			defer p.Close()

			path, err := p.Sample(alongPoints)
			if err != nil {
				return fmt.Errorf("along path: %w", err)
			}
			setupAlong(scene, path)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&alongSystem{}} }),
	})
}
