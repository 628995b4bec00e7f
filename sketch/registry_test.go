package sketch_test

import (
	"testing"

	"github.com/plus3/prepositions/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	def, err := sketch.Lookup("zz-playground", "")
	require.NoError(t, err)
	assert.Equal(t, "one", def.Variant, "empty variant picks the first registered")
	assert.Equal(t, 400, def.Width)
	assert.Equal(t, 300, def.Height)

	def, err = sketch.Lookup("zz-playground", "two")
	require.NoError(t, err)
	assert.Equal(t, "zz-playground/two", def.Name())

	_, err = sketch.Lookup("nowhere", "")
	assert.ErrorIs(t, err, sketch.ErrUnknownSketch)

	_, err = sketch.Lookup("zz-playground", "three")
	assert.ErrorIs(t, err, sketch.ErrUnknownVariant)
	assert.ErrorContains(t, err, "have one, two")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		sketch.Register(sketch.Definition{Preposition: "zz-playground", Variant: "one"})
	})
	assert.Panics(t, func() {
		sketch.Register(sketch.Definition{Preposition: "zz-playground"})
	})
}

func TestCatalogOrder(t *testing.T) {
	assert.Equal(t, []string{"zz-broken", "zz-playground"}, sketch.Prepositions())

	all := sketch.All()
	require.Len(t, all, 3)
	assert.Equal(t, "zz-broken/setup", all[0].Name())
	assert.Equal(t, "zz-playground/one", all[1].Name())
	assert.Equal(t, "zz-playground/two", all[2].Name())
}

func TestNeighborWraps(t *testing.T) {
	one, _ := sketch.Lookup("zz-playground", "one")
	two, _ := sketch.Lookup("zz-playground", "two")
	broken, _ := sketch.Lookup("zz-broken", "")

	assert.Same(t, two, sketch.Neighbor(one, 1, true))
	assert.Same(t, one, sketch.Neighbor(one, 2, true))
	assert.Same(t, two, sketch.Neighbor(one, -1, true))

	assert.Same(t, broken, sketch.Neighbor(one, 1, false))
	assert.Same(t, one, sketch.Neighbor(broken, -1, false))
}
