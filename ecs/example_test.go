package ecs_test

import (
	"fmt"

	"github.com/plus3/prepositions/ecs"
)

func ExampleView() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 120, Y: 100}, Label("blue"))
	storage.Spawn(Position{X: 280, Y: 200})

	type labelled struct {
		*Position
		Label *Label `ecs:"optional"`
	}

	for v := range ecs.NewView[labelled](storage).Values() {
		name := "unnamed"
		if v.Label != nil {
			name = string(*v.Label)
		}
		fmt.Printf("%s at (%.0f, %.0f)\n", name, v.X, v.Y)
	}
	// Output:
	// blue at (120, 100)
	// unnamed at (280, 200)
}

func ExampleScheduler() {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})

	for i := 0; i < 3; i++ {
		scheduler.Once(1)
	}

	pos := ecs.ReadComponent[Position](storage, id)
	fmt.Println(pos.X, pos.Y)
	// Output: 6 3
}

func ExampleNewSingleton() {
	storage := ecs.NewStorage(newTestRegistry())

	counter := ecs.NewSingleton(storage, frameCounter{Frames: 10})
	counter.Get().Frames++

	fmt.Println(counter.Get().Frames)
	// Output: 11
}

func ExampleStorage_ReadSingleton() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(frameCounter{Frames: 3})

	var counter *frameCounter
	if storage.ReadSingleton(&counter) {
		fmt.Println("frames:", counter.Frames)
	}
	// Output: frames: 3
}
