package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

// Storage holds entities, their components and the singleton components of one world.
type Storage struct {
	registry   *ComponentRegistry
	pools      map[reflect.Type]componentPool
	entities   []entityRecord
	freeSlots  []uint32
	alive      int
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage backed by the given registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		pools:      make(map[reflect.Type]componentPool),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the registry the storage was created with
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity holding the provided components.
// Components may be passed by value or by pointer; the storage keeps a copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	id := s.allocate()
	for _, component := range components {
		s.insert(id, component)
	}
	return id
}

func (s *Storage) allocate() EntityId {
	var slot uint32
	if n := len(s.freeSlots); n > 0 {
		slot = s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
	} else {
		slot = uint32(len(s.entities))
		s.entities = append(s.entities, entityRecord{})
	}

	rec := &s.entities[slot]
	rec.generation++
	if rec.generation == 0 {
		rec.generation = 1
	}
	rec.alive = true
	rec.types = rec.types[:0]
	s.alive++

	return NewEntityId(slot, rec.generation)
}

func (s *Storage) record(id EntityId) *entityRecord {
	slot := id.Slot()
	if int(slot) >= len(s.entities) {
		return nil
	}
	rec := &s.entities[slot]
	if !rec.alive || rec.generation != id.Generation() {
		return nil
	}
	return rec
}

func (s *Storage) insert(id EntityId, component any) {
	compType := componentType(component)
	p, ok := s.pools[compType]
	if !ok {
		p = s.registry.newPool(compType)
		s.pools[compType] = p
	}
	p.insert(id, component)

	rec := s.record(id)
	if !slices.Contains(rec.types, compType) {
		rec.types = append(rec.types, compType)
		slices.SortFunc(rec.types, compareTypeNames)
	}
}

// Alive reports whether the id names an entity that has not been deleted
func (s *Storage) Alive(id EntityId) bool {
	return s.record(id) != nil
}

// Delete removes the entity and all of its components.
// Deleting a stale or unknown id is a no-op.
func (s *Storage) Delete(id EntityId) {
	rec := s.record(id)
	if rec == nil {
		return
	}
	for _, t := range rec.types {
		s.pools[t].remove(id)
	}
	rec.alive = false
	rec.types = rec.types[:0]
	s.freeSlots = append(s.freeSlots, id.Slot())
	s.alive--
}

// AddComponent attaches a component to a live entity, replacing one of the same type.
// Returns false when the entity does not exist.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	if s.record(id) == nil {
		return false
	}
	s.insert(id, component)
	return true
}

// RemoveComponent detaches a component type from an entity.
// An entity left without components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	rec := s.record(id)
	if rec == nil {
		return
	}
	idx := slices.Index(rec.types, compType)
	if idx < 0 {
		return
	}
	s.pools[compType].remove(id)
	rec.types = slices.Delete(rec.types, idx, idx+1)

	if len(rec.types) == 0 {
		s.Delete(id)
	}
}

// GetComponent returns a pointer to the component of the given type, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if s.record(id) == nil {
		return nil
	}
	p, ok := s.pools[compType]
	if !ok {
		return nil
	}
	return p.get(id)
}

// HasComponent reports whether a live entity carries the component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	rec := s.record(id)
	return rec != nil && slices.Contains(rec.types, compType)
}

// ComponentTypes returns the component types of an entity sorted by name
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	rec := s.record(id)
	if rec == nil {
		return nil
	}
	return slices.Clone(rec.types)
}

// Count returns the number of live entities
func (s *Storage) Count() int {
	return s.alive
}

// Entities iterates over all live entities in slot order
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot := range s.entities {
			rec := &s.entities[slot]
			if !rec.alive {
				continue
			}
			if !yield(NewEntityId(uint32(slot), rec.generation)) {
				return
			}
		}
	}
}

func (s *Storage) pointer(id EntityId, compType reflect.Type) unsafe.Pointer {
	p, ok := s.pools[compType]
	if !ok {
		return nil
	}
	return p.ptr(id)
}

// componentType returns the value type of a component, dereferencing pointers
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("components cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

func compareTypeNames(a, b reflect.Type) int {
	return cmp.Compare(a.String(), b.String())
}

// ComponentReader is satisfied by Storage and anything else that can look up components
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T component of an entity, or nil if it has none
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	component, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return component
}
