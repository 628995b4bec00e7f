// Package catalog registers one sketch per preposition, each variant as its
// own definition with the parameters it was tuned with.
//
// Importing the package for its side effects fills the sketch registry:
//
//	import _ "github.com/plus3/prepositions/sketch/catalog"
package catalog

import (
	"image/color"
	"math"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

func round(v float64) int {
	return int(math.Round(v))
}

// systems wraps a fixed list of systems as a Definition.Systems func
func systems(build func() []ecs.System) func(*sketch.Scene) []ecs.System {
	return func(*sketch.Scene) []ecs.System {
		return build()
	}
}

// labelAbove places a label just above a circle of radius r.
func labelAbove(text string, r float64) sketch.Label {
	return sketch.Label{Text: text, Offset: geom.V(0, -r-12), Color: sketch.Ink}
}

// hline returns a segment spanning the canvas at height y.
func hline(y, width float64, c sketch.Fill) sketch.Segment {
	return sketch.Segment{From: geom.V(0, y), To: geom.V(width, y), Width: 1, Color: sketch.Alpha(c.RGBA, 160)}
}

// pushTrail records p on the trail once it moved far enough from the last point.
func pushTrail(trail *geom.Trail, p geom.Vec) {
	if n := trail.Len(); n > 0 && trail.Points()[n-1].Dist(p) < 1 {
		return
	}
	trail.Push(p)
}

// ring spawns an unfilled circle.
func ring(scene *sketch.Scene, centre geom.Vec, r float64, c color.RGBA, width float32, extra ...any) ecs.EntityId {
	components := append([]any{sketch.Position{Vec: centre}, sketch.Circle{R: r}, sketch.Stroke{Color: c, Width: width}}, extra...)
	return scene.Storage.Spawn(components...)
}

// dots spawns small markers along a path, every step-th point.
func dots(scene *sketch.Scene, path []geom.Vec, step int, c color.RGBA) []ecs.EntityId {
	var ids []ecs.EntityId
	for i := 0; i < len(path); i += step {
		ids = append(ids, scene.Storage.Spawn(sketch.Position{Vec: path[i]}, sketch.Circle{R: 1.5}, sketch.Fill{RGBA: c}, sketch.Layer(-1)))
	}
	return ids
}

func percent(v float64) int {
	return round(v * 100)
}

// centred spawns text centred on pos.
func centred(scene *sketch.Scene, pos geom.Vec, text string, c color.RGBA) ecs.EntityId {
	return scene.Storage.Spawn(sketch.Position{Vec: pos}, sketch.Label{Text: text, Color: c})
}

// confetti throws n particles of random light colours from at. They fly
// straight and vanish after life frames.
func confetti(cmd *ecs.Commands, rng sketch.Random, at geom.Vec, n int, speed, life float64) {
	for range n {
		cmd.Spawn(sketch.Position{Vec: at}, sketch.Particle{
			Vel:   geom.V(rng.Range(-speed, speed), rng.Range(-speed, speed)),
			Life:  1,
			Decay: 1 / life,
			Size:  4,
			Color: randomColor(rng),
		})
	}
}

// dashedRect outlines r with four dashed segments.
func dashedRect(scene *sketch.Scene, r geom.Rect, c color.RGBA) []ecs.EntityId {
	corners := []geom.Vec{geom.V(r.X, r.Y), geom.V(r.Right(), r.Y), geom.V(r.Right(), r.Bottom()), geom.V(r.X, r.Bottom())}
	ids := make([]ecs.EntityId, 0, len(corners))
	for i, from := range corners {
		to := corners[(i+1)%len(corners)]
		ids = append(ids, scene.Storage.Spawn(sketch.Position{Vec: from},
			sketch.Segment{From: from, To: to, Width: 1, Color: c, Dashed: true}))
	}
	return ids
}

// toggleText relabels a show/hide button so it offers the opposite of on.
func toggleText(storage *ecs.Storage, id ecs.EntityId, on bool, what string) {
	b := ecs.ReadComponent[sketch.Button](storage, id)
	b.Text = "Show " + what
	if on {
		b.Text = "Hide " + what
	}
}
