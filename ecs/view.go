package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	componentType reflect.Type
	offset        uintptr
	optional      bool
}

// View matches entities against a struct of component pointers.
//
//	type mover struct {
//		ecs.EntityId
//		*Position
//		Trail *Trail `ecs:"optional"`
//	}
//
// An EntityId field receives the id of the matched entity. Embedded pointer
// fields are required; named pointer fields may be tagged `ecs:"optional"` and
// are left nil when the entity lacks the component.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

// NewView builds a view for the struct type T. Malformed view structs panic.
func NewView[T any](storage *Storage) *View[T] {
	v := &View[T]{}
	v.Init(storage)
	return v
}

// Init binds the view to a storage and resolves its fields
func (v *View[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v.storage = storage
	v.fields = v.fields[:0]
	v.hasId = false
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or ecs.EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = !field.Anonymous
		}

		v.fields = append(v.fields, viewField{
			componentType: field.Type.Elem(),
			offset:        field.Offset,
			optional:      optional,
		})
	}
}

// Fill points the fields of *out at the components of an entity.
// Returns false if the entity is gone or lacks a required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	if !v.storage.Alive(id) {
		return false
	}

	base := unsafe.Pointer(out)
	for _, f := range v.fields {
		ptr := v.storage.pointer(id, f.componentType)
		if ptr == nil && !f.optional {
			return false
		}
		*(*unsafe.Pointer)(unsafe.Add(base, f.offset)) = ptr
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(base, v.idOffset)) = id
	}
	return true
}

// Get returns the filled view for an entity, or nil if it does not match
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// driver picks the entities worth checking: the owners of the smallest
// required pool, or every entity when the view has no required fields.
func (v *View[T]) driver() (iter.Seq[EntityId], bool) {
	var smallest componentPool
	required := false
	for _, f := range v.fields {
		if f.optional {
			continue
		}
		required = true
		p, ok := v.storage.pools[f.componentType]
		if !ok {
			return nil, false
		}
		if smallest == nil || p.len() < smallest.len() {
			smallest = p
		}
	}

	if !required {
		return v.storage.Entities(), true
	}
	return smallest.owners(), true
}

// Iter yields every matching entity with its filled view
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		ids, ok := v.driver()
		if !ok {
			return
		}

		var result T
		for id := range ids {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values yields only the filled views
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
