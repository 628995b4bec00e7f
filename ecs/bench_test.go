package ecs_test

import (
	"testing"

	"github.com/plus3/prepositions/ecs"
)

func BenchmarkSpawnDelete(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	b.ReportAllocs()
	for b.Loop() {
		id := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
		storage.Delete(id)
	}
}

func BenchmarkViewIteration(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float64(i)}, Velocity{DX: 1})
		storage.Spawn(Position{X: float64(i)})
	}
	view := ecs.NewView[mover](storage)

	b.ResetTimer()
	for b.Loop() {
		for m := range view.Values() {
			m.Position.X += m.Velocity.DX
		}
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(frameCounter{})
	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{}, Velocity{DX: 1, DY: 1})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.Register(&counterSystem{})

	b.ResetTimer()
	for b.Loop() {
		scheduler.Once(1.0 / 60)
	}
}
