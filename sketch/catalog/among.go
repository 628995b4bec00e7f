package catalog

import (
	"fmt"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

const (
	amongNearby  = 80
	amongNearest = 60
	amongMinimum = 3
)

// Crowding measures how many circles lie within reach of p and how far the
// nearest one is.
func Crowding(p geom.Vec, crowd []geom.Vec) (nearby int, nearest float64) {
	nearest = math.Inf(1)
	for _, c := range crowd {
		d := p.Dist(c)
		nearest = math.Min(nearest, d)
		if d < amongNearby {
			nearby++
		}
	}
	return nearby, nearest
}

// IsAmong reports whether p sits inside the crowd: enough circles close by
// and at least one of them very close.
func IsAmong(p geom.Vec, crowd []geom.Vec) bool {
	nearby, nearest := Crowding(p, crowd)
	return nearby >= amongMinimum && nearest < amongNearest
}

// Scatter places n circles at random inside bounds, retrying each placement
// up to attempts times to keep r1+r2+gap between centres. A circle that never
// finds room keeps its last position.
func Scatter(rng sketch.Random, n int, bounds geom.Rect, rMin, rMax, gap float64, attempts int) []geom.Circle {
	circles := make([]geom.Circle, 0, n)
	random := func() geom.Vec {
		return geom.V(rng.Range(bounds.X, bounds.Right()), rng.Range(bounds.Y, bounds.Bottom()))
	}
	for range n {
		c := geom.Circle{C: random(), R: rng.Range(rMin, rMax)}
		for try := 0; try < attempts; try++ {
			free := true
			for _, other := range circles {
				if c.C.Dist(other.C) < c.R+other.R+gap {
					free = false
					break
				}
			}
			if free {
				break
			}
			c.C = random()
		}
		circles = append(circles, c)
	}
	return circles
}

type amongState struct {
	Mover    ecs.EntityId
	Range    ecs.EntityId
	Crowd    []ecs.EntityId
	Links    []ecs.EntityId
	From, To geom.Vec
	Progress geom.Progress
	Moving   bool
}

type amongSystem struct {
	sketch.Context
	State ecs.Singleton[amongState]
}

func amongBounds(canvas *sketch.Canvas) geom.Rect {
	return geom.Rect{X: 60, Y: 60, W: canvas.Width - 120, H: canvas.Height - 120}
}

func (s *amongSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	mover := s.Body(state.Mover)
	canvas := s.Canvas.Get()
	rng := *s.Random.Get()

	moveTo := func(target geom.Vec) {
		state.From = mover.Vec
		state.To = target
		state.Progress.Reset()
		state.Moving = true
	}

	if p, ok := s.Click(); ok && !state.Moving {
		moveTo(p)
	}
	switch {
	case s.Key('1'):
		moveTo(canvas.Center())
	case s.Key('2'):
		moveTo(geom.V(50, canvas.Height/2))
	case s.Key('3'):
		pick := s.Body(state.Crowd[rng.IntN(len(state.Crowd))])
		moveTo(pick.Add(geom.V(rng.Range(-30, 30), rng.Range(-30, 30))))
	case s.Key('r', 'R'):
		for i, c := range Scatter(rng, len(state.Crowd), amongBounds(canvas), 12, 20, 10, 50) {
			body := s.Body(state.Crowd[i])
			body.Vec = c.C
			body.Circle.R = c.R
		}
	}

	if state.Moving {
		state.Progress.Advance()
		mover.Vec = geom.LerpVec(state.From, state.To, state.Progress.Value)
		if state.Progress.Done() {
			state.Moving = false
		}
	}

	crowd := make([]geom.Vec, len(state.Crowd))
	for i, id := range state.Crowd {
		crowd[i] = s.Body(id).Vec
	}
	nearby, nearest := Crowding(mover.Vec, crowd)
	among := nearby >= amongMinimum && nearest < amongNearest

	for i, id := range state.Crowd {
		body := s.Body(id)
		near := mover.Dist(body.Vec) < amongNearby
		body.Fill.RGBA = sketch.Blue
		if near {
			body.Fill.RGBA = sketch.Alpha(sketch.Blue, 150)
		}
		link := s.Body(state.Links[i])
		seg := ecs.ReadComponent[sketch.Segment](frame.Storage, link.EntityId)
		seg.From, seg.To = mover.Vec, body.Vec
		sketch.SetHidden(frame.Commands, link, !(near && among))
	}

	detection := s.Body(state.Range)
	detection.Vec = mover.Vec
	sketch.SetHidden(frame.Commands, detection, !among)

	if among {
		mover.Fill.RGBA = sketch.Green
		s.Say("Yellow circle is AMONG the blue circles!", true)
	} else {
		mover.Fill.RGBA = sketch.Yellow
		s.Say("Yellow circle is not among the blue circles", false)
		if !state.Moving {
			s.Say("Click anywhere to move the yellow circle", false)
		}
	}

	status := "SEPARATE"
	if among {
		status = "AMONG"
	}
	s.Info(
		"Status: "+status,
		fmt.Sprintf("Nearby circles: %d", nearby),
		fmt.Sprintf("Min distance: %.1fpx", nearest),
	)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "among",
		Variant:     "crowd",
		Summary:     "Place the yellow circle in the middle of a crowd of blue ones",
		Params:      sketch.Params{"circles": 12},
		Setup: func(scene *sketch.Scene) error {
			state := amongState{Progress: geom.Progress{Step: 0.02}}
			crowd := Scatter(scene.Rand, scene.Params.Int("circles"), amongBounds(scene.Canvas), 12, 20, 10, 50)
			for _, c := range crowd {
				state.Crowd = append(state.Crowd, scene.Ball(c.C, c.R, sketch.Blue))
				state.Links = append(state.Links, scene.Storage.Spawn(sketch.Position{},
					sketch.Segment{Width: 1, Color: sketch.Alpha(sketch.Gray, 100)}, sketch.Hidden{}))
			}
			state.Range = ring(scene, scene.Canvas.Center(), amongNearby, sketch.Alpha(sketch.Green, 100), 2, sketch.Hidden{})
			state.Mover = scene.Ball(scene.Canvas.Center(), 15, sketch.Yellow, sketch.Layer(1))
			scene.Singleton(state)
			return nil
		},
		Systems: systems(func() []ecs.System { return []ecs.System{&amongSystem{}} }),
	})
}
