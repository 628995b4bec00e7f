package catalog

import (
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, preposition, variant string, src *sketch.ScriptSource, opts ...sketch.Option) *sketch.Session {
	t.Helper()
	def, err := sketch.Lookup(preposition, variant)
	require.NoError(t, err)

	opts = append([]sketch.Option{sketch.WithInput(src), sketch.WithSeed(1)}, opts...)
	session, err := sketch.NewSession(def, opts...)
	require.NoError(t, err)
	return session
}

func run(session *sketch.Session, frames int) {
	for range frames {
		session.Step(1.0 / 60)
	}
}

func singleton[T any](t *testing.T, session *sketch.Session) *T {
	t.Helper()
	var value *T
	require.True(t, session.Storage().ReadSingleton(&value))
	return value
}

func position(session *sketch.Session, id ecs.EntityId) geom.Vec {
	return ecs.ReadComponent[sketch.Position](session.Storage(), id).Vec
}

func TestEverySketchSurvivesInput(t *testing.T) {
	defs := sketch.All()
	require.Len(t, defs, 40)

	for _, def := range defs {
		t.Run(def.Name(), func(t *testing.T) {
			w, h := float64(def.Width), float64(def.Height)
			src := sketch.NewScriptSource().
				Tap(w/2, h/2).Idle(20).
				Key('r').Key(sketch.KeySpace).Key('1').Key('+').
				Tap(280, 30).Idle(5).
				Drag(geom.V(w/2, h/2), geom.V(w/3, h/3), geom.V(w-10, h-10)).
				Tap(30, h-30).Idle(5).
				Tap(350, 25)

			session, err := sketch.NewSession(def, sketch.WithInput(src), sketch.WithSeed(3))
			require.NoError(t, err)
			assert.NotPanics(t, func() { run(session, src.Pending()+240) })
		})
	}
}

func TestPastOneway(t *testing.T) {
	session := play(t, "past", "oneway", sketch.NewScriptSource().Tap(300, 250))
	state := singleton[pastState](t, session)

	run(session, 10)
	assert.Equal(t, "Circle is approaching the reference point", session.Status().Text)

	run(session, 70)
	assert.True(t, state.Pass.Passed)
	assert.Equal(t, "Circle moved PAST the reference point", session.Status().Text)
	assert.True(t, session.Status().Highlight)

	run(session, 200)
	assert.False(t, state.Moving, "stops once off the canvas")
	assert.Greater(t, position(session, state.Mover).X, 430.0)
}

func TestPastBidirectionalFromTheRight(t *testing.T) {
	session := play(t, "past", "bidirectional", sketch.NewScriptSource().Tap(100, 200))
	state := singleton[pastBothState](t, session)

	run(session, 1)
	assert.Equal(t, -1.0, state.Pass.Dir, "a click left of the reference sends the object left")
	assert.Equal(t, 448.0, position(session, state.Mover).X)

	run(session, 130)
	assert.True(t, state.Pass.Passed)
	assert.Equal(t, "Object moved PAST the reference point", session.Status().Text)
	assert.Contains(t, session.Status().Info, "Direction: Left")
	assert.Nil(t, ecs.ReadComponent[sketch.Hidden](session.Storage(), state.Marker), "pass marker shown")
	assert.Equal(t, "12px (past reference)", ecs.ReadComponent[sketch.Label](session.Storage(), state.Distance).Text)
}

func TestPastBidirectionalReset(t *testing.T) {
	src := sketch.NewScriptSource().Tap(300, 200).Idle(150).Tap(270, 45)
	session := play(t, "past", "bidirectional", src)
	state := singleton[pastBothState](t, session)

	run(session, src.Pending())
	assert.False(t, state.Moving)
	assert.False(t, state.Pass.Passed)
	assert.Equal(t, -50.0, position(session, state.Mover).X)
	assert.Equal(t, "Click to move object PAST the reference point", session.Status().Text)
}

func TestAwayFleesToMaxDistance(t *testing.T) {
	session := play(t, "away", "flee", sketch.NewScriptSource().Tap(150, 150))
	state := singleton[awayState](t, session)

	run(session, 60)
	assert.Equal(t, geom.V(270, 150), position(session, state.Circle))
	assert.Equal(t, "Circle has moved far AWAY (reached max distance)", session.Status().Text)
}

func TestAwayFrameLimit(t *testing.T) {
	session := play(t, "away", "flee", sketch.NewScriptSource().Tap(150, 150),
		sketch.WithParams(map[string]float64{"maxFrames": 10}))
	state := singleton[awayState](t, session)

	run(session, 30)
	assert.Equal(t, geom.V(220, 150), position(session, state.Circle))
	assert.Equal(t, "Circle stopped AWAY from the source", session.Status().Text)
	assert.Contains(t, session.Status().Info, "Movement frames: 10/10")
}

func TestTowardReachesTarget(t *testing.T) {
	src := sketch.NewScriptSource().Tap(300, 150)
	session := play(t, "toward", "lerp", src)
	state := singleton[towardState](t, session)

	run(session, 10)
	assert.Equal(t, "Dot is moving TOWARD the target", session.Status().Text)

	run(session, 60)
	assert.False(t, state.Moving)
	assert.Equal(t, "Dot has reached the target", session.Status().Text)
	assert.Less(t, position(session, state.Dot).Dist(geom.V(300, 150)), 5.0)
}

func TestTowardSpeedKeys(t *testing.T) {
	src := sketch.NewScriptSource().Key('+').Key('=').Key('-').Key('+')
	session := play(t, "toward", "lerp", src)
	state := singleton[towardState](t, session)

	run(session, src.Pending())
	assert.InDelta(t, 0.07, state.Pursuer.(*LerpPursuer).Factor, 1e-9)
}

func TestTowardSpringSettles(t *testing.T) {
	session := play(t, "toward", "spring", sketch.NewScriptSource().Tap(320, 240))
	state := singleton[towardState](t, session)

	run(session, 400)
	assert.True(t, state.Reached)
	assert.Less(t, position(session, state.Dot).Dist(geom.V(320, 240)), 5.0)
}

func TestUntilProcess(t *testing.T) {
	src := sketch.NewScriptSource().Tap(200, 100).Idle(10).Key(sketch.KeySpace)
	session := play(t, "until", "process", src)
	state := singleton[untilProcessState](t, session)

	run(session, src.Pending()+20)
	assert.False(t, state.Running)
	assert.Equal(t, "Process paused at 10%", session.Status().Text)

	src.Key(sketch.KeySpace)
	run(session, 200)
	assert.Equal(t, 100.0, state.Value)
	assert.Equal(t, "Process completed! It ran UNTIL 100%", session.Status().Text)
	assert.Equal(t, []string{"Status: Complete"}, session.Status().Info)
}

func TestBeneathZoneDrag(t *testing.T) {
	src := sketch.NewScriptSource().Drag(geom.V(200, 50), geom.V(200, 100), geom.V(200, 140))
	session := play(t, "beneath", "zone", src)
	state := singleton[beneathZoneState](t, session)

	run(session, 1)
	assert.Equal(t, "Orange is NOT beneath (must be fully in zone)", session.Status().Text)

	run(session, src.Pending())
	assert.Equal(t, geom.V(170, 120), position(session, state.Object))
	assert.Equal(t, "Orange is BENEATH blue surface", session.Status().Text)
}

func TestBeneathMinimalStaysQuiet(t *testing.T) {
	session := play(t, "beneath", "minimal", sketch.NewScriptSource())
	run(session, 5)
	assert.Empty(t, session.Status().Text)
}

func TestAlongScriptedUsesCustomPath(t *testing.T) {
	src := sketch.NewScriptSource().Tap(300, 280)
	line := `function path(t) return 50 + 300 * t, 100 end`
	session := play(t, "along", "scripted", src, sketch.WithScript(line))
	state := singleton[alongState](t, session)

	require.Len(t, state.Path, alongPoints)
	assert.Equal(t, geom.V(350, 100), state.Path[alongPoints-1])

	run(session, 200)
	assert.True(t, state.Completed)
	assert.Equal(t, "Circle has traveled ALONG the entire path", session.Status().Text)
}

func TestAlongScriptedRejectsBrokenScript(t *testing.T) {
	def, err := sketch.Lookup("along", "scripted")
	require.NoError(t, err)

	_, err = sketch.NewSession(def, sketch.WithScript("function path(t) return"))
	assert.ErrorContains(t, err, "along path")
}

func buttonText(session *sketch.Session, id ecs.EntityId) string {
	return ecs.ReadComponent[sketch.Button](session.Storage(), id).Text
}

func hidden(session *sketch.Session, id ecs.EntityId) bool {
	return ecs.ReadComponent[sketch.Hidden](session.Storage(), id) != nil
}

func TestWithinButtons(t *testing.T) {
	src := sketch.NewScriptSource()
	session := play(t, "within", "classic", src)
	state := singleton[withinState](t, session)

	run(session, 1)
	assert.True(t, state.ShowGuides, "guides start visible")
	assert.False(t, hidden(session, state.Guides[0]))

	src.Tap(295, 20).Tap(295, 45)
	run(session, src.Pending())
	assert.False(t, state.ShowGuides)
	assert.True(t, hidden(session, state.Guides[0]))
	assert.Equal(t, "Show Boundaries", buttonText(session, state.GuidesButton))
	assert.True(t, state.ShowDistances)
	assert.Equal(t, "Hide Distances", buttonText(session, state.DistancesButton))
	assert.Contains(t, session.Status().Info, "Orange to centre: 58")

	src.Drag(geom.V(150, 120), geom.V(350, 250)).Tap(370, 20)
	run(session, src.Pending())
	assert.Equal(t, geom.V(150, 120), position(session, state.Orange))
}

func TestWithinGrabsOnTheRim(t *testing.T) {
	src := sketch.NewScriptSource().Drag(geom.V(170, 120), geom.V(200, 150))
	session := play(t, "within", "classic", src)
	state := singleton[withinState](t, session)

	run(session, src.Pending())
	assert.Equal(t, geom.V(180, 150), position(session, state.Orange))
}

func TestUnderStackButtons(t *testing.T) {
	src := sketch.NewScriptSource().Tap(285, 20).Tap(360, 20)
	session := play(t, "under", "stack", src)
	state := singleton[underStackState](t, session)

	run(session, src.Pending())
	assert.False(t, state.ShowGrid)
	assert.True(t, hidden(session, state.Grid[0]))
	assert.Equal(t, "Show Grid", buttonText(session, state.GridButton))
	assert.False(t, state.ShowShadows)
	assert.True(t, hidden(session, state.Shadows[0]))
	assert.Equal(t, "Show Shadows", buttonText(session, state.ShadowsButton))

	src.Drag(geom.V(220, 195), geom.V(220, 260)).Idle(1)
	run(session, src.Pending())
	assert.Equal(t, geom.V(180, 245), position(session, state.Lower))

	src.Tap(275, 45)
	run(session, src.Pending())
	assert.Equal(t, geom.V(180, 180), position(session, state.Lower))
}

func TestBeneathProximityButtons(t *testing.T) {
	src := sketch.NewScriptSource().Tap(290, 20).Tap(290, 45)
	session := play(t, "beneath", "proximity", src)
	state := singleton[beneathState](t, session)

	run(session, src.Pending())
	assert.False(t, state.ShowLayers)
	assert.True(t, hidden(session, state.Layers[0]))
	assert.Equal(t, "Show Layers", buttonText(session, state.LayersButton))
	assert.False(t, state.ShowContacts)
	assert.Equal(t, "Show Lines", buttonText(session, state.LinesButton))

	src.Drag(geom.V(200, 150), geom.V(200, 250)).Tap(365, 20)
	run(session, src.Pending())
	assert.Equal(t, geom.V(170, 130), position(session, state.Object))
}

func TestBeneathProximityReach(t *testing.T) {
	drag := func() *sketch.ScriptSource {
		return sketch.NewScriptSource().Drag(geom.V(200, 150), geom.V(200, 180))
	}

	src := drag()
	session := play(t, "beneath", "proximity", src)
	run(session, src.Pending())
	assert.Equal(t, "Orange object is below but too far to be 'beneath'", session.Status().Text)

	src = drag()
	session = play(t, "beneath", "proximity", src, sketch.WithParams(map[string]float64{"reach": 45}))
	run(session, src.Pending())
	assert.Equal(t, "Orange object is BENEATH the blue surface", session.Status().Text)
}

func TestBeneathZoneHeight(t *testing.T) {
	drag := func() *sketch.ScriptSource {
		return sketch.NewScriptSource().Drag(geom.V(200, 50), geom.V(200, 180))
	}

	src := drag()
	session := play(t, "beneath", "zone", src)
	run(session, src.Pending())
	assert.Equal(t, "Orange is NOT beneath (must be fully in zone)", session.Status().Text)

	src = drag()
	session = play(t, "beneath", "zone", src, sketch.WithParams(map[string]float64{"zoneHeight": 100}))
	run(session, src.Pending())
	assert.Equal(t, "Orange is BENEATH blue surface", session.Status().Text)

	def, err := sketch.Lookup("beneath", "minimal")
	require.NoError(t, err)
	_, err = sketch.NewSession(def, sketch.WithParams(map[string]float64{"zoneHeight": 0}))
	assert.ErrorContains(t, err, "zoneHeight must be positive")
}

func TestThroughDirectionalPassOutranksReentry(t *testing.T) {
	src := sketch.NewScriptSource().Drag(geom.V(100, 150), geom.V(190, 150), geom.V(240, 150), geom.V(205, 150))
	session := play(t, "through", "directional", src)
	state := singleton[throughState](t, session)

	run(session, src.Pending())
	assert.True(t, state.Passage.Passed)
	assert.Equal(t, "Circle moved through barrier (left to right)", session.Status().Text)
	assert.Equal(t, sketch.Yellow, ecs.ReadComponent[sketch.Fill](session.Storage(), state.Mover).RGBA)

	src.Drag(geom.V(205, 150), geom.V(170, 150)).Idle(1)
	run(session, src.Pending())
	assert.Equal(t, "Circle moved through barrier (right to left)", session.Status().Text)
	assert.Equal(t, sketch.Orange, ecs.ReadComponent[sketch.Fill](session.Storage(), state.Mover).RGBA, "passed but back on the left")
}

func BenchmarkStep(b *testing.B) {
	for _, name := range [][2]string{{"among", "crowd"}, {"since", "events"}, {"after", "impact"}} {
		b.Run(name[0], func(b *testing.B) {
			def, err := sketch.Lookup(name[0], name[1])
			require.NoError(b, err)
			src := sketch.NewScriptSource().Tap(200, 150)
			session, err := sketch.NewSession(def, sketch.WithInput(src), sketch.WithSeed(1))
			require.NoError(b, err)

			for b.Loop() {
				session.Step(1.0 / 60)
			}
		})
	}
}
