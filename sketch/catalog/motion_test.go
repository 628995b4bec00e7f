package catalog_test

import (
	"fmt"
	"testing"

	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassBothDirections(t *testing.T) {
	right := catalog.Pass{Ref: 200, Dir: 1}
	assert.True(t, right.Approaching(150))
	assert.False(t, right.Update(200), "level with the reference is not past it")
	assert.True(t, right.Update(202))
	assert.False(t, right.Update(204), "reported once")
	assert.True(t, right.Passed)

	left := catalog.Pass{Ref: 200, Dir: -1}
	assert.True(t, left.Approaching(300))
	assert.False(t, left.Approaching(100))
	assert.False(t, left.Update(250))
	assert.True(t, left.Update(198))
}

func TestFlightStops(t *testing.T) {
	bounds := geom.Rect{W: 400, H: 300}
	fly := func(f catalog.Flight, pos geom.Vec) (geom.Vec, catalog.Flight) {
		f.Moving = true
		for range 500 {
			pos = f.Step(pos, bounds)
			if !f.Moving {
				break
			}
		}
		return pos, f
	}
	base := catalog.Flight{Speed: 2, MaxFrames: 100, MaxDist: 120, Margin: 20}

	t.Run("max distance", func(t *testing.T) {
		f := base
		f.Source = geom.V(150, 150)
		pos, f := fly(f, geom.V(200, 150))
		assert.Equal(t, geom.V(270, 150), pos)
		assert.Equal(t, 35, f.Frames)
	})
	t.Run("frame limit", func(t *testing.T) {
		f := base
		f.Source = geom.V(150, 150)
		f.MaxFrames = 10
		pos, f := fly(f, geom.V(200, 150))
		assert.Equal(t, geom.V(220, 150), pos)
		assert.Equal(t, 10, f.Frames)
	})
	t.Run("margin", func(t *testing.T) {
		f := base
		f.Source = geom.V(100, 150)
		f.MaxDist = 1000
		pos, _ := fly(f, geom.V(200, 150))
		assert.Equal(t, geom.V(378, 150), pos)
	})
	t.Run("on the source", func(t *testing.T) {
		f := base
		f.Source = geom.V(200, 150)
		pos, f := fly(f, geom.V(200, 150))
		assert.Equal(t, geom.V(200, 150), pos)
		assert.Zero(t, f.Frames)
	})
}

func TestLanderSettlesOnSurface(t *testing.T) {
	surface := geom.Rect{X: 100, Y: 200, W: 200, H: 30}
	bounds := geom.Rect{W: 400, H: 300}
	l := catalog.Lander{Box: geom.Rect{X: 150, Y: 100, W: 30, H: 20}, Gravity: 0.3, Bounce: -0.6, Friction: 0.95}

	var results []catalog.Landing
	for range 200 {
		r := l.Step(surface, bounds)
		results = append(results, r)
		if r == catalog.Landed {
			break
		}
	}
	require.Equal(t, catalog.Landed, results[len(results)-1])
	assert.Contains(t, results, catalog.Bounced)
	assert.Equal(t, surface.Y, l.Box.Bottom())
	assert.Equal(t, geom.Vec{}, l.Vel)
}

func TestLanderMissesSurface(t *testing.T) {
	surface := geom.Rect{X: 100, Y: 200, W: 200, H: 30}
	l := catalog.Lander{Box: geom.Rect{X: 10, Y: 100, W: 30, H: 20}, Gravity: 0.3, Bounce: -0.6, Friction: 0.95}

	result := catalog.Flying
	for i := 0; i < 100 && result != catalog.Lost; i++ {
		result = l.Step(surface, geom.Rect{W: 400, H: 300})
	}
	assert.Equal(t, catalog.Lost, result)
}

func TestLanderLaunch(t *testing.T) {
	l := catalog.Lander{Box: geom.Rect{X: 50, Y: 50, W: 30, H: 20}}

	l.Launch(geom.V(365, 60))
	assert.Equal(t, geom.V(8, 0), l.Vel, "capped")

	l.Launch(geom.V(75, 70))
	assert.InDelta(t, 0.8, l.Vel.X, 1e-9)
	assert.InDelta(t, 0.8, l.Vel.Y, 1e-9)
}

func TestLerpPursuer(t *testing.T) {
	p := &catalog.LerpPursuer{Factor: 0.05}
	assert.Equal(t, geom.V(5, 0), p.Step(geom.V(0, 0), geom.V(100, 0)))
	assert.True(t, p.Settled(geom.V(96, 0), geom.V(100, 0)))
	assert.False(t, p.Settled(geom.V(95, 0), geom.V(100, 0)))

	for range 30 {
		p.Faster(1)
	}
	assert.InDelta(t, 0.2, p.Factor, 1e-9)
	for range 30 {
		p.Faster(-1)
	}
	assert.InDelta(t, 0.01, p.Factor, 1e-9)
	assert.Equal(t, "Speed: 1.0%", p.Describe())
}

func TestSpringPursuerSettles(t *testing.T) {
	p := catalog.NewSpringPursuer(6, 0.5)
	pos, target := geom.V(0, 0), geom.V(100, 50)

	overshot := false
	for range 300 {
		pos = p.Step(pos, target)
		overshot = overshot || pos.X > target.X
	}
	assert.True(t, overshot, "an underdamped spring overshoots")
	assert.True(t, p.Settled(pos, target))

	p.Faster(100)
	assert.Equal(t, 12.0, p.Frequency)
}

func TestActivityAdvance(t *testing.T) {
	tests := []struct {
		kind    catalog.ActivityKind
		target  float64
		halfway float64
		current float64
		done    float64
	}{
		{catalog.ActivityCountdown, 6000, 3000, 3000, 6000},
		{catalog.ActivityFill, 100, 4000, 50, 8000},
		{catalog.ActivityTravel, 500, 5000, 250, 10000},
		{catalog.ActivitySpin, 360, 1800, 90, 7200},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.kind), func(t *testing.T) {
			a := catalog.Activity{Kind: tt.kind, Target: tt.target, Active: true}

			assert.False(t, a.Advance(tt.halfway))
			assert.InDelta(t, tt.current, a.Current, 1e-9)
			assert.True(t, a.Active)

			assert.True(t, a.Advance(tt.done))
			assert.False(t, a.Active)
			assert.False(t, a.Advance(tt.done+1000), "finished activities stay finished")
		})
	}
}

func TestDueBackfillsMissedEvents(t *testing.T) {
	types := []catalog.EventType{{Name: "a", Every: 1000}, {Name: "b", Every: 1500}}

	due := catalog.Due(types, nil, 3200)
	var got []string
	for _, o := range due {
		got = append(got, fmt.Sprintf("%s@%.0f", o.Type, o.At))
	}
	assert.Equal(t, []string{"a@1000", "a@2000", "a@3000", "b@1500", "b@3000"}, got)

	assert.Empty(t, catalog.Due(types, due, 3200))
	assert.Len(t, catalog.Due(types, due, 4000), 1)
}

func TestGrowingRadius(t *testing.T) {
	assert.Equal(t, 20.0, catalog.GrowingRadius(20, 0))
	assert.Equal(t, 40.0, catalog.GrowingRadius(20, 5000))
}

func TestTriggerFiresOnce(t *testing.T) {
	events := []catalog.TimedEvent{{At: 1, Message: "one"}, {At: 2, Message: "two"}, {At: 3, Message: "three"}}

	fired := catalog.Trigger(events, 2.5)
	require.Len(t, fired, 2)
	assert.Equal(t, "one", fired[0].Message)
	assert.True(t, events[1].Triggered, "returned events alias the slice")

	assert.Empty(t, catalog.Trigger(events, 2.6))
	assert.Len(t, catalog.Trigger(events, 5), 1)
}

func TestPassage(t *testing.T) {
	barrier := geom.Rect{X: 180, Y: 100, W: 40, H: 100}
	walk := func(p *catalog.Passage, xs ...float64) {
		for _, x := range xs {
			p.Update(barrier, geom.V(x, 150))
		}
	}

	var through catalog.Passage
	walk(&through, 150, 190, 210, 230)
	assert.True(t, through.Passed)
	assert.True(t, through.FromLeft)

	var back catalog.Passage
	walk(&back, 150, 190, 170)
	assert.True(t, back.Passed, "any exit counts when not directional")

	directional := catalog.Passage{Directional: true}
	walk(&directional, 150, 190, 170)
	assert.False(t, directional.Passed, "came back out the way it went in")
	walk(&directional, 190, 215, 240)
	assert.True(t, directional.Passed)

	directional.Reset()
	assert.Equal(t, catalog.Passage{Directional: true}, directional)
}

func TestBarrierDistance(t *testing.T) {
	barrier := geom.Rect{X: 180, Y: 100, W: 40, H: 100}
	assert.Equal(t, 50.0, catalog.BarrierDistance(barrier, geom.V(300, 150)))
	assert.Zero(t, catalog.BarrierDistance(barrier, geom.V(200, 150)))
}

func ExamplePass() {
	p := catalog.Pass{Ref: 200, Dir: -1}
	for _, x := range []float64{260, 220, 200, 180, 160} {
		fmt.Println(x, p.Approaching(x), p.Update(x))
	}
	// Output:
	// 260 true false
	// 220 true false
	// 200 false false
	// 180 false true
	// 160 false false
}
