package ecs_test

import (
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mover struct {
	ecs.EntityId
	*Position
	*Velocity
}

type body struct {
	ecs.EntityId
	*Position
	Radius *Radius `ecs:"optional"`
	Label  *Label  `ecs:"optional"`
}

func TestViewRequiredComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	moving := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	storage.Spawn(Position{X: 3})
	storage.Spawn(Velocity{DX: 4})

	view := ecs.NewView[mover](storage)

	var ids []ecs.EntityId
	for id, m := range view.Iter() {
		ids = append(ids, id)
		assert.Equal(t, id, m.EntityId)
		assert.Equal(t, 1.0, m.Position.X)
		assert.Equal(t, 2.0, m.Velocity.DX)
	}
	assert.Equal(t, []ecs.EntityId{moving}, ids)
}

func TestViewOptionalComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withRadius := storage.Spawn(Position{X: 1}, Radius(20))
	plain := storage.Spawn(Position{X: 2})

	view := ecs.NewView[body](storage)

	got := view.Get(withRadius)
	require.NotNil(t, got)
	require.NotNil(t, got.Radius)
	assert.Equal(t, Radius(20), *got.Radius)
	assert.Nil(t, got.Label)

	got = view.Get(plain)
	require.NotNil(t, got)
	assert.Nil(t, got.Radius)
	assert.Equal(t, plain, got.EntityId)

	count := 0
	for range view.Values() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 1})

	for m := range ecs.NewView[mover](storage).Values() {
		m.Position.X += m.Velocity.DX
	}

	assert.Equal(t, 2.0, ecs.ReadComponent[Position](storage, id).X)
}

func TestViewSkipsDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{})
	storage.Delete(id)

	view := ecs.NewView[mover](storage)
	assert.Nil(t, view.Get(id))

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Zero(t, count)
}

func TestViewWithoutRequiredFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Label("a"))
	storage.Spawn(Position{})

	type labels struct {
		ecs.EntityId
		Label *Label `ecs:"optional"`
	}

	count := 0
	for range ecs.NewView[labels](storage).Iter() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewUnknownPool(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{})

	count := 0
	for range ecs.NewView[struct{ *Trail }](storage).Iter() {
		count++
	}
	assert.Zero(t, count)
}

func TestViewPanicsOnMalformedStruct(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewView[int](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Pos *Position `ecs:"maybe"`
		}](storage)
	})
}
