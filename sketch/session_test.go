package sketch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playgroundState struct {
	Front, Back ecs.EntityId
	Crate       ecs.EntityId
	Clicks      []geom.Vec
	Actions     []string
	Released    int
}

type playgroundSystem struct {
	sketch.Context
	State ecs.Singleton[playgroundState]
}

func (s *playgroundSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if pos, ok := s.Click(); ok {
		state.Clicks = append(state.Clicks, pos)
		sketch.Burst{Count: 3, Speed: 1, Decay: 0.5, Size: [2]float64{2, 2}}.Emit(frame.Commands, *s.Random.Get(), pos)
	}
	if action := s.Action(); action != "" {
		state.Actions = append(state.Actions, action)
	}
	if s.Body(state.Front).Drag.JustReleased {
		state.Released++
	}
	s.Say(fmt.Sprintf("frame %d", s.Clock.Get().Frame), false)
}

func init() {
	sketch.Register(sketch.Definition{
		Preposition: "zz-playground",
		Variant:     "one",
		Params:      sketch.Params{"gap": 10},
		Setup: func(scene *sketch.Scene) error {
			scene.Singleton(playgroundState{
				Back:  scene.Ball(geom.V(100, 100), 30, sketch.Red, sketch.Draggable{Order: 1}),
				Front: scene.Ball(geom.V(110, 100), 30, sketch.Blue, sketch.Draggable{Order: 0, Constrain: true}),
				Crate: scene.Rect(geom.Rect{X: 250, Y: 200, W: 40, H: 20}, sketch.Brown, sketch.Draggable{KeepOffset: true}),
			})
			scene.Button(geom.Rect{X: 300, Y: 10, W: 60, H: 25}, "Reset", "reset")
			return nil
		},
		Systems: func(scene *sketch.Scene) []ecs.System {
			return []ecs.System{&playgroundSystem{}}
		},
	})
	sketch.Register(sketch.Definition{
		Preposition: "zz-playground",
		Variant:     "two",
	})
	sketch.Register(sketch.Definition{
		Preposition: "zz-broken",
		Variant:     "setup",
		Setup: func(scene *sketch.Scene) error {
			return errors.New("boom")
		},
	})
}

func newPlayground(t *testing.T, src *sketch.ScriptSource) (*sketch.Session, *playgroundState) {
	t.Helper()
	def, err := sketch.Lookup("zz-playground", "one")
	require.NoError(t, err)

	session, err := sketch.NewSession(def, sketch.WithInput(src), sketch.WithSeed(1))
	require.NoError(t, err)

	var state *playgroundState
	require.True(t, session.Storage().ReadSingleton(&state))
	return session, state
}

func run(session *sketch.Session, frames int) {
	for range frames {
		session.Step(1.0 / 60)
	}
}

func TestSessionDragPicksLowestOrder(t *testing.T) {
	src := sketch.NewScriptSource().Drag(geom.V(105, 100), geom.V(200, 150), geom.V(210, 150))
	session, state := newPlayground(t, src)

	run(session, src.Pending())

	front := ecs.ReadComponent[sketch.Position](session.Storage(), state.Front)
	back := ecs.ReadComponent[sketch.Position](session.Storage(), state.Back)
	assert.Equal(t, geom.V(210, 150), front.Vec, "centre follows the pointer")
	assert.Equal(t, geom.V(100, 100), back.Vec)
	assert.Empty(t, state.Clicks, "a drag consumes the press")
	assert.Equal(t, 1, state.Released)
}

func TestSessionDragConstrainsToCanvas(t *testing.T) {
	src := sketch.NewScriptSource().Drag(geom.V(110, 100), geom.V(-50, 500))
	session, state := newPlayground(t, src)
	run(session, src.Pending())

	front := ecs.ReadComponent[sketch.Position](session.Storage(), state.Front)
	assert.Equal(t, geom.V(30, 270), front.Vec)
}

func TestSessionDragKeepsOffset(t *testing.T) {
	src := sketch.NewScriptSource().Drag(geom.V(255, 205), geom.V(265, 215))
	session, state := newPlayground(t, src)
	run(session, src.Pending())

	crate := ecs.ReadComponent[sketch.Position](session.Storage(), state.Crate)
	assert.Equal(t, geom.V(260, 210), crate.Vec)
}

func TestSessionButtonsConsumePress(t *testing.T) {
	src := sketch.NewScriptSource().Tap(310, 20).Tap(380, 280)
	session, state := newPlayground(t, src)
	run(session, src.Pending())

	assert.Equal(t, []string{"reset"}, state.Actions)
	assert.Equal(t, []geom.Vec{geom.V(380, 280)}, state.Clicks)
}

func TestSessionParticlesExpire(t *testing.T) {
	src := sketch.NewScriptSource().Tap(380, 280)
	session, _ := newPlayground(t, src)

	particles := func() int {
		n := 0
		for range ecs.NewView[struct{ *sketch.Particle }](session.Storage()).Iter() {
			n++
		}
		return n
	}

	session.Step(1.0 / 60)
	assert.Equal(t, 3, particles())

	run(session, 2)
	assert.Zero(t, particles())
}

func TestSessionStatusAndClock(t *testing.T) {
	session, _ := newPlayground(t, sketch.NewScriptSource())
	run(session, 30)

	assert.Equal(t, "frame 30", session.Status().Text)

	var clock *sketch.Clock
	require.True(t, session.Storage().ReadSingleton(&clock))
	assert.InDelta(t, 0.5, clock.Elapsed, 1e-9)
}

func TestSessionParams(t *testing.T) {
	def, err := sketch.Lookup("zz-playground", "one")
	require.NoError(t, err)

	session, err := sketch.NewSession(def, sketch.WithParams(map[string]float64{"gap": 25}))
	require.NoError(t, err)

	var params *sketch.Params
	require.True(t, session.Storage().ReadSingleton(&params))
	assert.Equal(t, 25.0, params.Get("gap"))
	assert.Equal(t, 10.0, def.Params.Get("gap"), "definition defaults are untouched")

	_, err = sketch.NewSession(def, sketch.WithParams(map[string]float64{"nope": 1}))
	assert.ErrorContains(t, err, `unknown parameter "nope"`)
}

func TestSessionSetupError(t *testing.T) {
	def, err := sketch.Lookup("zz-broken", "")
	require.NoError(t, err)

	_, err = sketch.NewSession(def)
	assert.ErrorContains(t, err, "sketch zz-broken/setup: setup: boom")
}

func TestSessionIgnoresCapturedPointer(t *testing.T) {
	src := sketch.NewScriptSource().Tap(380, 280)
	session, state := newPlayground(t, src)

	var capture *sketch.PointerCapture
	require.True(t, session.Storage().ReadSingleton(&capture))
	capture.Mouse = true

	run(session, 2)
	assert.Empty(t, state.Clicks)
}
