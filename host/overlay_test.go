package host

import (
	"slices"
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/ecs/debugui"
	"github.com/plus3/prepositions/sketch"
	_ "github.com/plus3/prepositions/sketch/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiddenOverlayLeavesInputAlone(t *testing.T) {
	def, err := sketch.Lookup("past", "oneway")
	require.NoError(t, err)

	overlay := NewOverlay(false)
	launcher := &Launcher{Extensions: []sketch.Extension{overlay}}
	session, err := launcher.Start(def, sketch.NewScriptSource().Tap(300, 250))
	require.NoError(t, err)
	overlay.Attach(session)

	for range 3 {
		session.Step(1.0 / 60)
	}
	assert.Equal(t, "Circle is approaching the reference point", session.Status().Text)
	assert.Same(t, session.Scheduler(), overlay.windows.Scheduler)
	assert.Equal(t, "Prepositions - past (oneway)", overlay.title)

	panels := 0
	for _, e := range debugui.CollectEntities(session.Storage()) {
		if slices.Contains(e.ComponentTypes, "debugui.ImguiItem") {
			panels++
		}
	}
	assert.Equal(t, 1, panels, "the sketch panel is spawned with the windows")

	var capture *sketch.PointerCapture
	require.True(t, session.Storage().ReadSingleton(&capture))
	assert.Equal(t, sketch.PointerCapture{}, *capture)

	overlay.Toggle()
	var state *debugui.ImguiInputState
	require.True(t, session.Storage().ReadSingleton(&state))
	assert.True(t, state.Visible)
	assert.True(t, overlay.Visible())
}

func TestCaptureFollowsVisibleOverlay(t *testing.T) {
	tests := []struct {
		state debugui.ImguiInputState
		want  sketch.PointerCapture
	}{
		{debugui.ImguiInputState{Visible: true, WantCaptureMouse: true}, sketch.PointerCapture{Mouse: true}},
		{debugui.ImguiInputState{Visible: true, WantCaptureKeyboard: true}, sketch.PointerCapture{Keyboard: true}},
		{debugui.ImguiInputState{WantCaptureMouse: true, WantCaptureKeyboard: true}, sketch.PointerCapture{}},
	}
	for _, tt := range tests {
		storage := ecs.NewStorage(ecs.NewComponentRegistry())
		storage.AddSingleton(tt.state)
		storage.AddSingleton(sketch.PointerCapture{Mouse: true, Keyboard: true})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&captureSystem{})
		scheduler.Once(0)

		var capture *sketch.PointerCapture
		require.True(t, storage.ReadSingleton(&capture))
		assert.Equal(t, tt.want, *capture)
	}
}
