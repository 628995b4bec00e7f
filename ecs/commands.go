package ecs

import "reflect"

// Commands buffers structural changes made while systems run.
// The Scheduler flushes the buffer after the last system of a frame.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []componentChange
	removes []componentChange
	defers  []func()
}

type componentChange struct {
	entity    EntityId
	component any
	compType  reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues a new entity with the given components
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the removal of an entity
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues attaching a component to an entity
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, componentChange{entity: entity, component: component})
}

// RemoveComponent queues detaching a component type from an entity
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, componentChange{entity: entity, compType: compType})
}

// Defer queues a function to run after all structural changes
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies queued operations to storage and empties the buffer.
// Deletes run first; removals and additions aimed at a deleted entity are dropped.
// Spawns follow, then deferred functions in the order they were queued.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]struct{}, len(c.deletes))
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = struct{}{}
	}

	for _, change := range c.removes {
		if _, gone := deleted[change.entity]; !gone {
			storage.RemoveComponent(change.entity, change.compType)
		}
	}

	for _, change := range c.adds {
		if _, gone := deleted[change.entity]; !gone {
			storage.AddComponent(change.entity, change.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
