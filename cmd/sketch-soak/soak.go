package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
)

var keys = []sketch.Key{' ', 'r', '1', '2', '3', '+', '-', sketch.KeyLeft, sketch.KeyRight, sketch.KeyUp, sketch.KeyDown}

// randomInput queues frames of taps, drags and key presses inside a w by h canvas.
func randomInput(rng *rand.Rand, frames int, w, h float64) *sketch.ScriptSource {
	src := sketch.NewScriptSource()
	point := func() geom.Vec { return geom.V(rng.Float64()*w, rng.Float64()*h) }
	for src.Pending() < frames {
		switch rng.IntN(4) {
		case 0:
			p := point()
			src.Tap(p.X, p.Y)
		case 1:
			src.Drag(point(), point(), point(), point())
		case 2:
			src.Key(keys[rng.IntN(len(keys))])
		default:
			src.Idle(rng.IntN(30))
		}
	}
	return src
}

// soak runs one sketch for frames steps of random input and times each step.
// A panic inside the sketch is returned as an error.
func soak(def *sketch.Definition, frames int, seed uint64) (result Result, err error) {
	result.Sketch = def.Name()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked after %d frames: %v", def.Name(), result.Frames, r)
		}
	}()

	rng := rand.New(rand.NewPCG(seed, seed))
	src := randomInput(rng, frames, float64(def.Width), float64(def.Height))
	session, err := sketch.NewSession(def, sketch.WithInput(src), sketch.WithSeed(seed))
	if err != nil {
		return result, err
	}

	result.StepTime.Samples = make([]time.Duration, 0, frames)
	for range frames {
		start := time.Now()
		session.Step(1.0 / 60)
		result.StepTime.Samples = append(result.StepTime.Samples, time.Since(start))
		result.Frames++
	}
	result.StepTime.Finalize()
	result.Entities = session.Storage().Count()
	result.Status = session.Status().Text
	return result, nil
}
