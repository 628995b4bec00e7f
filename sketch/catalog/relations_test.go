package catalog_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
	"github.com/plus3/prepositions/sketch/catalog"
	"github.com/stretchr/testify/assert"
)

func TestAboveAndBelowRelations(t *testing.T) {
	assert.Equal(t, "Blue is ABOVE red", catalog.AboveRelation(100, 200))
	assert.Equal(t, "Blue is ABOVE red", catalog.AboveRelation(100, 180))
	assert.Equal(t, "Red is ABOVE blue", catalog.AboveRelation(180, 100))
	assert.Equal(t, "Red is ABOVE blue", catalog.AboveRelation(200, 100))
	assert.Equal(t, "Circles are at SAME level", catalog.AboveRelation(150, 150))

	assert.Equal(t, "Green is BELOW orange", catalog.BelowRelation(200, 100))
	assert.Equal(t, "Orange is BELOW green", catalog.BelowRelation(100, 200))
	assert.Equal(t, "Circles are at SAME level", catalog.BelowRelation(80, 80))
}

func TestBetweenRelation(t *testing.T) {
	blue := geom.Circle{C: geom.V(100, 150), R: 25}
	red := geom.Circle{C: geom.V(300, 150), R: 25}

	tests := []struct {
		name   string
		circle geom.Circle
		want   string
	}{
		{"middle", geom.Circle{C: geom.V(200, 150), R: 20}, "Green is BETWEEN blue and red"},
		{"touching left edge", geom.Circle{C: geom.V(145, 150), R: 20}, "Green is BETWEEN blue and red"},
		{"straddling edge", geom.Circle{C: geom.V(140, 150), R: 20}, "Green is partially between (overlapping boundary)"},
		{"left of both", geom.Circle{C: geom.V(50, 150), R: 20}, "Green is to the LEFT of both circles"},
		{"just left of the blue centre", geom.Circle{C: geom.V(90, 150), R: 20}, "Green is to the LEFT of both circles"},
		{"right of both", geom.Circle{C: geom.V(350, 150), R: 20}, "Green is to the RIGHT of both circles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.BetweenRelation(blue, red, tt.circle))
			assert.Equal(t, tt.want, catalog.BetweenRelation(red, blue, tt.circle), "order of the outer circles does not matter")
		})
	}
}

func TestIsWithinIncludesEdges(t *testing.T) {
	box := geom.Rect{X: 100, Y: 80, W: 200, H: 140}
	assert.True(t, catalog.IsWithin(box, geom.V(100, 80)))
	assert.True(t, catalog.IsWithin(box, geom.V(300, 220)))
	assert.True(t, catalog.IsWithin(box, geom.V(150, 120)))
	assert.False(t, catalog.IsWithin(box, geom.V(99.9, 120)))
	assert.False(t, catalog.IsWithin(box, geom.V(150, 220.1)))
}

func TestBehindRelation(t *testing.T) {
	red := geom.Circle{C: geom.V(200, 150), R: 40}
	assert.Equal(t, "No overlap - no behind relationship", catalog.BehindRelation(geom.Circle{C: geom.V(50, 150), R: 40}, red))
	assert.Equal(t, "Blue is 100% BEHIND Red", catalog.BehindRelation(geom.Circle{C: geom.V(200, 150), R: 40}, red))
	assert.Contains(t, catalog.BehindRelation(geom.Circle{C: geom.V(240, 150), R: 40}, red), "% BEHIND Red")
}

func TestCrossingBarrierIsStrict(t *testing.T) {
	barrier := geom.Rect{X: 180, Y: 0, W: 40, H: 300}
	assert.False(t, catalog.CrossingBarrier(barrier, 180))
	assert.True(t, catalog.CrossingBarrier(barrier, 200))
	assert.False(t, catalog.CrossingBarrier(barrier, 220))
}

func TestInContainer(t *testing.T) {
	box := geom.Circle{C: geom.V(200, 150), R: 60}
	assert.True(t, catalog.InContainer(box, geom.Circle{C: geom.V(200, 150), R: 20}))
	assert.True(t, catalog.InContainer(box, geom.Circle{C: geom.V(240, 150), R: 20}), "touching the rim from inside")
	assert.False(t, catalog.InContainer(box, geom.Circle{C: geom.V(245, 150), R: 20}))
}

func TestSpanAt(t *testing.T) {
	span := catalog.Span{Name: "walk", Start: 2, Duration: 4}
	assert.Equal(t, 6.0, span.End())

	tests := []struct {
		t        float64
		active   bool
		fraction float64
	}{
		{0, false, 0},
		{2, true, 0},
		{3, true, 0.25},
		{5.99, true, 0.9975},
		{6, false, 1},
		{10, false, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.t), func(t *testing.T) {
			active, fraction := span.At(tt.t)
			assert.Equal(t, tt.active, active)
			assert.InDelta(t, tt.fraction, fraction, 1e-9)
		})
	}
}

func TestAmongNeedsACrowd(t *testing.T) {
	crowd := []geom.Vec{geom.V(100, 100), geom.V(150, 100), geom.V(125, 140), geom.V(350, 250)}

	nearby, nearest := catalog.Crowding(geom.V(125, 110), crowd)
	assert.Equal(t, 3, nearby)
	assert.InDelta(t, math.Hypot(25, 10), nearest, 1e-9)
	assert.True(t, catalog.IsAmong(geom.V(125, 110), crowd))

	assert.False(t, catalog.IsAmong(geom.V(330, 250), crowd), "one neighbour is not a crowd")
	assert.False(t, catalog.IsAmong(geom.V(10, 290), crowd))
}

func TestScatterStaysInBoundsAndApart(t *testing.T) {
	rng := sketch.Random{Rand: rand.New(rand.NewPCG(7, 7))}
	bounds := geom.Rect{X: 50, Y: 50, W: 300, H: 200}
	circles := catalog.Scatter(rng, 6, bounds, 10, 20, 10, 200)

	assert.Len(t, circles, 6)
	for i, c := range circles {
		assert.True(t, bounds.ContainsInclusive(c.C))
		assert.GreaterOrEqual(t, c.R, 10.0)
		assert.Less(t, c.R, 20.0)
		for _, o := range circles[:i] {
			assert.GreaterOrEqual(t, c.C.Dist(o.C), c.R+o.R+10, "circles %v and %v overlap", c, o)
		}
	}
}

func TestOrbitPosition(t *testing.T) {
	centre := geom.V(200, 150)
	p := catalog.OrbitPosition(centre, 100, math.Pi/2)
	assert.InDelta(t, 200, p.X, 1e-9)
	assert.InDelta(t, 250, p.Y, 1e-9)
	assert.InDelta(t, 100, catalog.OrbitPosition(centre, 100, 1.3).Dist(centre), 1e-9)
}

func TestBesideSquare(t *testing.T) {
	centre := geom.V(200, 150)
	align := catalog.Alignment{Tolerance: 30, Snap: 80}

	tests := []struct {
		name string
		at   geom.Vec
		want string
	}{
		{"left and level", geom.V(130, 150), "left"},
		{"right within tolerance", geom.V(270, 180), "right"},
		{"too far", geom.V(100, 150), ""},
		{"too close", geom.V(145, 150), ""},
		{"too high", geom.V(130, 110), ""},
		{"inner edge", geom.V(140, 150), "left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.BesideSquare(centre, 60, geom.Circle{C: tt.at, R: 20}, align)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapBeside(t *testing.T) {
	centre := geom.V(200, 150)
	align := catalog.Alignment{Tolerance: 30, Snap: 80}

	assert.Equal(t, geom.V(130, 150), catalog.SnapBeside(centre, 60, geom.Circle{C: geom.V(160, 170), R: 20}, align))
	assert.Equal(t, geom.V(270, 150), catalog.SnapBeside(centre, 60, geom.Circle{C: geom.V(230, 130), R: 20}, align))
	assert.Equal(t, geom.V(300, 150), catalog.SnapBeside(centre, 60, geom.Circle{C: geom.V(300, 140), R: 20}, align), "only y snaps beyond reach")
	assert.Equal(t, geom.V(150, 50), catalog.SnapBeside(centre, 60, geom.Circle{C: geom.V(150, 50), R: 20}, align), "too far off level")
}

func TestBesideZone(t *testing.T) {
	rect := geom.RectCentered(geom.V(200, 150), 80, 140)

	assert.Equal(t, "left", catalog.BesideZone(rect, 60, 140, geom.V(130, 150)))
	assert.Equal(t, "left", catalog.BesideZone(rect, 60, 140, geom.V(100, 80)), "zone corners count")
	assert.Equal(t, "right", catalog.BesideZone(rect, 60, 140, geom.V(270, 200)))
	assert.Equal(t, "", catalog.BesideZone(rect, 60, 140, geom.V(99, 150)))
	assert.Equal(t, "", catalog.BesideZone(rect, 60, 140, geom.V(130, 221)))
	assert.Equal(t, "", catalog.BesideZone(rect, 60, 140, geom.V(200, 150)), "on the rectangle itself")
}

func TestBeneathProximity(t *testing.T) {
	surface := geom.Rect{X: 150, Y: 100, W: 100, H: 20}

	tests := []struct {
		name string
		obj  geom.Rect
		want catalog.Proximity
		gap  float64
	}{
		{"touching", geom.Rect{X: 170, Y: 120, W: 60, H: 40}, catalog.Beneath, 0},
		{"at reach", geom.Rect{X: 170, Y: 150, W: 60, H: 40}, catalog.Beneath, 30},
		{"beyond reach", geom.Rect{X: 170, Y: 151, W: 60, H: 40}, catalog.TooFar, 31},
		{"overlapping", geom.Rect{X: 170, Y: 110, W: 60, H: 40}, catalog.Overlapping, -10},
		{"edge to edge", geom.Rect{X: 250, Y: 130, W: 60, H: 40}, catalog.Beneath, 10},
		{"off to the side", geom.Rect{X: 260, Y: 130, W: 60, H: 40}, catalog.Misaligned, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gap := catalog.BeneathProximity(surface, tt.obj, 30)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.gap, gap)
		})
	}

	wide, _ := catalog.BeneathProximity(surface, geom.Rect{X: 170, Y: 151, W: 60, H: 40}, 45)
	assert.Equal(t, catalog.Beneath, wide, "a longer reach tolerates a wider gap")
}

func TestFullyBeneath(t *testing.T) {
	surface := geom.Rect{X: 50, Y: 100, W: 300, H: 10}
	assert.True(t, catalog.FullyBeneath(surface, geom.Rect{X: 170, Y: 110, W: 60, H: 40}, 60))
	assert.True(t, catalog.FullyBeneath(surface, geom.Rect{X: 50, Y: 130, W: 60, H: 40}, 60), "edges included")
	assert.False(t, catalog.FullyBeneath(surface, geom.Rect{X: 170, Y: 131, W: 60, H: 40}, 60))
	assert.False(t, catalog.FullyBeneath(surface, geom.Rect{X: 20, Y: 120, W: 60, H: 40}, 60))
}

func TestArcPoint(t *testing.T) {
	start, end := geom.V(50, 200), geom.V(350, 200)

	assert.Equal(t, start, catalog.ArcPoint(start, end, 100, 0))
	assert.Equal(t, end, catalog.ArcPoint(start, end, 100, 1))

	mid := catalog.ArcPoint(start, end, 100, 0.5)
	assert.InDelta(t, 200, mid.X, 1e-9)
	assert.InDelta(t, 125, mid.Y, 1e-9, "three quarters of the way up to the control height")

	under := catalog.ArcPoint(start, end, 260, 0.5)
	assert.Greater(t, under.Y, 200.0)

	path := catalog.ArcPath(start, end, 100, 11)
	assert.Len(t, path, 11)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[10])
}

func TestStackOrder(t *testing.T) {
	upper := geom.Rect{X: 200, Y: 80, W: 100, H: 40}
	assert.Equal(t, catalog.SecondUnder, catalog.StackOrder(upper, geom.Rect{X: 180, Y: 180, W: 80, H: 30}))
	assert.Equal(t, catalog.FirstUnder, catalog.StackOrder(geom.Rect{X: 180, Y: 180, W: 80, H: 30}, upper))
	assert.Equal(t, catalog.SameLevel, catalog.StackOrder(upper, geom.Rect{X: 180, Y: 120, W: 80, H: 30}), "touching edges")
}

func ExampleBeneathProximity() {
	surface := geom.Rect{X: 150, Y: 100, W: 100, H: 20}
	for _, y := range []float64{125, 110, 170} {
		p, gap := catalog.BeneathProximity(surface, geom.Rect{X: 170, Y: y, W: 60, H: 40}, 30)
		fmt.Printf("gap %3.0f: %s\n", gap, p)
	}
	// Output:
	// gap   5: Orange object is BENEATH the blue surface
	// gap -10: Objects are overlapping (too close)
	// gap  50: Orange object is below but too far to be 'beneath'
}

func ExampleBetweenRelation() {
	blue := geom.Circle{C: geom.V(100, 150), R: 25}
	red := geom.Circle{C: geom.V(300, 150), R: 25}
	fmt.Println(catalog.BetweenRelation(blue, red, geom.Circle{C: geom.V(200, 150), R: 20}))
	fmt.Println(catalog.BetweenRelation(blue, red, geom.Circle{C: geom.V(40, 150), R: 20}))
	// Output:
	// Green is BETWEEN blue and red
	// Green is to the LEFT of both circles
}
