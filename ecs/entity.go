package ecs

import "reflect"

// EntityId identifies an entity in a Storage.
// The lower 32 bits hold the slot, the upper 32 bits the generation of that slot.
// Generations start at 1, so the zero EntityId never names a live entity.
type EntityId uint64

// NewEntityId packs a slot and generation into an EntityId
func NewEntityId(slot uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(slot))
}

// Slot returns the storage slot of the entity
func (e EntityId) Slot() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation returns how many times the slot had been reused when the id was issued
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

type entityRecord struct {
	generation uint32
	alive      bool
	types      []reflect.Type
}
