package sketch_test

import (
	"testing"

	"github.com/plus3/prepositions/geom"
	"github.com/plus3/prepositions/sketch"
	"github.com/stretchr/testify/assert"
)

func TestPointerEdges(t *testing.T) {
	tests := []struct {
		name     string
		wasDown  bool
		down     bool
		pressed  bool
		released bool
	}{
		{"idle", false, false, false, false},
		{"press", false, true, true, false},
		{"hold", true, true, false, false},
		{"release", true, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sketch.Pointer{Down: tt.wasDown, Consumed: true}
			p.Update(geom.V(1, 2), tt.down)

			assert.Equal(t, tt.pressed, p.Pressed)
			assert.Equal(t, tt.released, p.Released)
			assert.Equal(t, tt.down, p.Down)
			assert.True(t, p.Moved)
			assert.False(t, p.Consumed, "consumption resets every frame")
		})
	}
}

func TestPointerClick(t *testing.T) {
	p := sketch.Pointer{}
	p.Update(geom.V(10, 20), true)

	pos, ok := p.Click()
	assert.True(t, ok)
	assert.Equal(t, geom.V(10, 20), pos)

	p.Consumed = true
	_, ok = p.Click()
	assert.False(t, ok)
}

func TestScriptSourceOneEventPerFrame(t *testing.T) {
	src := sketch.NewScriptSource().
		Tap(100, 150).
		Key('r').
		Drag(geom.V(10, 10), geom.V(20, 20))

	assert.Equal(t, 7, src.Pending())

	var p sketch.Pointer
	var keys sketch.Keys
	poll := func() {
		keys.Pressed = keys.Pressed[:0]
		src.Poll(&p, &keys)
	}

	poll()
	assert.True(t, p.Pressed)
	assert.Equal(t, geom.V(100, 150), p.Pos)

	poll()
	assert.True(t, p.Released)

	poll()
	assert.True(t, keys.Has('r'))
	assert.False(t, p.Pressed)

	poll()
	assert.True(t, p.Pressed)
	poll()
	assert.True(t, p.Down)
	assert.True(t, p.Moved)
	assert.Equal(t, geom.V(20, 20), p.Pos)
	poll()
	assert.True(t, p.Released)

	// an empty queue holds the last state
	poll()
	assert.False(t, p.Down)
	assert.False(t, p.Moved)
	assert.Zero(t, src.Pending())
}

func TestKeysHas(t *testing.T) {
	keys := sketch.Keys{Pressed: []sketch.Key{'+', sketch.KeyUp}}
	assert.True(t, keys.Has('=', '+'))
	assert.True(t, keys.Has(sketch.KeyDown, sketch.KeyUp))
	assert.False(t, keys.Has('-', '_'))
}
