package debugui_test

import (
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/plus3/prepositions/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Label struct{ Text string }

func newWorld(t *testing.T) (*ecs.Storage, []ecs.EntityId) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	storage := ecs.NewStorage(registry)

	ids := []ecs.EntityId{
		storage.Spawn(Position{}, Velocity{X: 1}),
		storage.Spawn(Position{}, Label{Text: "ball"}),
		storage.Spawn(Label{Text: "caption"}),
	}
	return storage, ids
}

func TestCollectEntities(t *testing.T) {
	storage, ids := newWorld(t)

	entities := debugui.CollectEntities(storage)
	require.Len(t, entities, 3)
	assert.Equal(t, ids[0], entities[0].ID)
	assert.Equal(t, []string{"debugui_test.Position", "debugui_test.Velocity"}, entities[0].ComponentTypes)
	assert.Equal(t, "0:1", entities[0].Label())
}

func TestFilterEntities(t *testing.T) {
	storage, ids := newWorld(t)
	entities := debugui.CollectEntities(storage)

	tests := []struct {
		name     string
		text     string
		typeName string
		want     []ecs.EntityId
	}{
		{"no filter", "", "", ids},
		{"by type", "", "debugui_test.Label", ids[1:]},
		{"by text", "VELOCITY", "", ids[:1]},
		{"by label", "2:1", "", ids[2:]},
		{"both", "position", "debugui_test.Label", ids[1:2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []ecs.EntityId
			for _, e := range debugui.FilterEntities(entities, tt.text, tt.typeName) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortEntities(t *testing.T) {
	storage, ids := newWorld(t)
	entities := debugui.CollectEntities(storage)

	debugui.SortEntities(entities, 0, false)
	assert.Equal(t, ids[2], entities[0].ID)

	debugui.SortEntities(entities, 2, true)
	assert.Equal(t, ids[2], entities[0].ID, "fewest components first")
}

func TestMatchingEntities(t *testing.T) {
	storage, ids := newWorld(t)

	assert.Equal(t, ids[:2], debugui.MatchingEntities(storage, []string{"debugui_test.Position"}))
	assert.Equal(t, ids[1:2], debugui.MatchingEntities(storage, []string{"debugui_test.Position", "debugui_test.Label"}))
	assert.Empty(t, debugui.MatchingEntities(storage, []string{"debugui_test.Missing"}))
	assert.Empty(t, debugui.MatchingEntities(storage, nil))

	storage.Delete(ids[0])
	assert.Empty(t, debugui.MatchingEntities(storage, []string{"debugui_test.Velocity"}))
}

func TestPerformanceHistory(t *testing.T) {
	perf := debugui.NewPerformanceStatsComponent(4)
	for _, dt := range []float32{0.010, 0.020, 0.030, 0.040, 0.050} {
		perf.Record(dt)
	}
	assert.InDelta(t, 35.0, perf.AverageFrameTime(), 1e-4, "oldest sample overwritten")
}
