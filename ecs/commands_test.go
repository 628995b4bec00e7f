package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/prepositions/ecs"
	"github.com/stretchr/testify/assert"
)

type commandSystem struct {
	run func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) {
	s.run(frame)
}

func TestCommandsAreDeferredUntilFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var countDuringFrame int
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Position{X: 1})
		frame.Commands.Spawn(Position{X: 2})
		countDuringFrame = frame.Storage.Count()
	}})

	scheduler.Once(1.0 / 60)

	assert.Zero(t, countDuringFrame)
	assert.Equal(t, 2, storage.Count())
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	doomed := storage.Spawn(Position{X: 1})
	kept := storage.Spawn(Position{X: 2}, Label("kept"))

	scheduler := ecs.NewScheduler(storage)

	var deferredCount int
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		cmd := frame.Commands
		cmd.AddComponent(doomed, Velocity{DX: 1})
		cmd.Delete(doomed)
		cmd.AddComponent(kept, Velocity{DX: 5})
		cmd.RemoveComponent(kept, reflect.TypeFor[Label]())
		cmd.Spawn(Position{X: 3})
		cmd.Defer(func() {
			deferredCount = frame.Storage.Count()
		})
		assert.Equal(t, 6, cmd.Pending())
	}})

	scheduler.Once(1.0 / 60)

	assert.False(t, storage.Alive(doomed))
	assert.Equal(t, 5.0, ecs.ReadComponent[Velocity](storage, kept).DX)
	assert.Nil(t, ecs.ReadComponent[Label](storage, kept))
	assert.Equal(t, 2, deferredCount, "defers run after spawns")
}

func TestCommandsResetAfterFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	frames := 0
	scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
		assert.Zero(t, frame.Commands.Pending())
		if frames == 0 {
			frame.Commands.Spawn(Label("once"))
		}
		frames++
	}})

	scheduler.Once(0)
	scheduler.Once(0)
	assert.Equal(t, 1, storage.Count())
}
