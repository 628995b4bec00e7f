package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/prepositions/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameCounter struct {
	Frames int
}

type movementSystem struct {
	Movers ecs.Query[mover]
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Values() {
		m.Position.X += m.Velocity.DX * frame.DeltaTime
		m.Position.Y += m.Velocity.DY * frame.DeltaTime
	}
}

type counterSystem struct {
	Counter ecs.Singleton[frameCounter]
}

func (s *counterSystem) Execute(frame *ecs.UpdateFrame) {
	s.Counter.Get().Frames++
}

type spawnerSystem struct{}

func (spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Storage.Spawn(Position{}, Velocity{DX: 10})
}

func TestSchedulerBindsQueriesAndSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(frameCounter{})
	id := storage.Spawn(Position{}, Velocity{DX: 60, DY: -60})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.Register(&counterSystem{})

	for i := 0; i < 60; i++ {
		scheduler.Once(1.0 / 60)
	}

	pos := ecs.ReadComponent[Position](storage, id)
	assert.InDelta(t, 60.0, pos.X, 1e-9)
	assert.InDelta(t, -60.0, pos.Y, 1e-9)

	var counter *frameCounter
	require.True(t, storage.ReadSingleton(&counter))
	assert.Equal(t, 60, counter.Frames)
}

func TestSchedulerRefreshesQueriesPerSystem(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(spawnerSystem{})
	scheduler.Register(&movementSystem{})

	scheduler.Once(1)

	// the spawner writes storage directly, so the movement query sees the entity
	for m := range ecs.NewView[mover](storage).Values() {
		assert.Equal(t, 10.0, m.Position.X)
	}
	assert.Equal(t, 1, storage.Count())
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(frameCounter{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.Register(&counterSystem{})

	for i := 0; i < 5; i++ {
		scheduler.Once(0.1)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(5), stats.Ticks)
	assert.Equal(t, int64(10), stats.TotalExecutions)

	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "movementSystem", stats.Systems[0].Name)
	assert.Equal(t, "counterSystem", stats.Systems[1].Name)
	for _, st := range stats.Systems {
		assert.Equal(t, int64(5), st.ExecutionCount)
		assert.LessOrEqual(t, st.MinDuration, st.MaxDuration)
		assert.Equal(t, st.TotalDuration/5, st.AvgDuration)
	}
}

func TestSchedulerRunTickBudget(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(frameCounter{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&counterSystem{})

	err := scheduler.Run(context.Background(), time.Millisecond, 12)
	require.NoError(t, err)

	var counter *frameCounter
	storage.ReadSingleton(&counter)
	assert.Equal(t, 12, counter.Frames)
}

func TestSchedulerRunCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(frameCounter{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&counterSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := scheduler.Run(ctx, time.Millisecond, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, scheduler.GetStats().Ticks)
}

func TestSchedulerRunRejectsBadInterval(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))
	assert.Error(t, scheduler.Run(context.Background(), 0, 1))
}

type SharedAccessors struct {
	Counter ecs.Singleton[frameCounter]
	Bodies  ecs.View[body]
}

type embeddingSystem struct {
	SharedAccessors
	Movers ecs.Query[mover]

	seen int
}

func (s *embeddingSystem) Execute(frame *ecs.UpdateFrame) {
	s.Counter.Get().Frames++
	for id := range s.Movers.Iter() {
		if s.Bodies.Get(id) != nil {
			s.seen++
		}
	}
}

func TestSchedulerBindsEmbeddedStructsAndViews(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(frameCounter{})
	storage.Spawn(Position{}, Velocity{})

	system := &embeddingSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(system)
	scheduler.Once(0)

	assert.Equal(t, 1, system.Counter.Get().Frames)
	assert.Equal(t, 1, system.seen)
}
