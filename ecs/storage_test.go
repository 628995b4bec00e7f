package ecs_test

import (
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		slot       uint32
		generation uint32
	}{
		{0, 1},
		{1, 1},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("slot=%d,gen=%d", tt.slot, tt.generation), func(t *testing.T) {
			id := ecs.NewEntityId(tt.slot, tt.generation)
			assert.Equal(t, tt.slot, id.Slot())
			assert.Equal(t, tt.generation, id.Generation())
		})
	}
}

func TestSpawnAndGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 120, Y: 100}, Radius(20), Label("blue"))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.Count())

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 120, Y: 100}, *pos)

	radius := ecs.ReadComponent[Radius](storage, id)
	require.NotNil(t, radius)
	assert.Equal(t, Radius(20), *radius)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestSpawnByPointerCopies(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	original := &Position{X: 1, Y: 2}
	id := storage.Spawn(original)
	original.X = 99

	assert.Equal(t, 1.0, ecs.ReadComponent[Position](storage, id).X)
}

func TestComponentPointersAreStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float64(i)})
	}

	ptr.X = 42
	assert.Equal(t, 42.0, ecs.ReadComponent[Position](storage, first).X)
}

func TestDeleteInvalidatesId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Label("gone"))
	storage.Delete(id)

	assert.False(t, storage.Alive(id))
	assert.Equal(t, 0, storage.Count())
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))

	reused := storage.Spawn(Position{X: 2})
	assert.Equal(t, id.Slot(), reused.Slot())
	assert.NotEqual(t, id, reused)
	assert.False(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))

	// a stale delete must not touch the entity now living in the slot
	storage.Delete(id)
	assert.True(t, storage.Alive(reused))
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5, Y: 5})
	assert.True(t, storage.AddComponent(id, Velocity{DX: 1}))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))

	// adding the same type replaces the value
	assert.True(t, storage.AddComponent(id, &Velocity{DX: 3}))
	assert.Equal(t, 3.0, ecs.ReadComponent[Velocity](storage, id).DX)

	storage.RemoveComponent(id, reflect.TypeFor[Velocity]())
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.True(t, storage.Alive(id))

	storage.RemoveComponent(id, reflect.TypeFor[Position]())
	assert.False(t, storage.Alive(id), "entity without components is deleted")

	assert.False(t, storage.AddComponent(id, Velocity{}))
}

func TestComponentTypesSorted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Velocity{}, Position{}, Label("x"))
	types := storage.ComponentTypes(id)

	names := make([]string, len(types))
	for i, typ := range types {
		names[i] = typ.String()
	}
	assert.True(t, slices.IsSorted(names))
	assert.Len(t, names, 3)
}

func TestEntitiesIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Label("a"))
	b := storage.Spawn(Label("b"))
	c := storage.Spawn(Label("c"))
	storage.Delete(b)

	var seen []ecs.EntityId
	for id := range storage.Entities() {
		seen = append(seen, id)
	}
	assert.Equal(t, []ecs.EntityId{a, c}, seen)
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.PanicsWithValue(t, "cannot spawn entity without components", func() {
		storage.Spawn()
	})

	type unregistered struct{}
	assert.Panics(t, func() {
		storage.Spawn(unregistered{})
	})

	assert.Panics(t, func() {
		storage.Spawn(map[string]int{})
	})
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	type canvas struct {
		Width, Height int
	}

	var missing *canvas
	assert.False(t, storage.ReadSingleton(&missing))

	storage.AddSingleton(canvas{Width: 400, Height: 300})

	var c *canvas
	require.True(t, storage.ReadSingleton(&c))
	assert.Equal(t, 400, c.Width)

	accessor := ecs.NewSingleton[canvas](storage)
	assert.Same(t, c, accessor.Get())

	// re-adding overwrites in place
	storage.AddSingleton(&canvas{Width: 600, Height: 400})
	assert.Equal(t, 600, c.Width)
	assert.Equal(t, 600, accessor.Get().Width)

	assert.Panics(t, func() {
		storage.ReadSingleton(c)
	})
}
