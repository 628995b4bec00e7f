package ecs_test

import (
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Label("a"))
	gone := storage.Spawn(Radius(4))
	storage.Delete(gone)
	storage.AddSingleton(frameCounter{})

	stats := storage.CollectStats()

	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 3, stats.ComponentTypeCount, "empty pools are not reported")
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []ecs.ComponentStats{
		{Type: "ecs_test.Label", Count: 1},
		{Type: "ecs_test.Position", Count: 2},
		{Type: "ecs_test.Velocity", Count: 1},
	}, stats.ComponentBreakdown)
	assert.Equal(t, []string{"ecs_test.frameCounter"}, stats.SingletonTypes)
}
