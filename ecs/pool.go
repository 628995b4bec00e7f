package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry records which component types a Storage may hold.
// Each Storage owns a registry, so independent sketches never share pools.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentPool
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentPool),
	}
}

// RegisterComponent registers T with the registry.
// Spawning or adding an unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentPool {
		return newPool[T]()
	}
}

// Registered reports whether the type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newPool(t reflect.Type) componentPool {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// componentPool is the type-erased view of a pool[T].
type componentPool interface {
	insert(id EntityId, value any)
	remove(id EntityId)
	ptr(id EntityId) unsafe.Pointer
	get(id EntityId) any
	len() int
	owners() iter.Seq[EntityId]
}

const poolBlockSize = 64

// pool stores every component of type T in fixed-size blocks.
// Blocks are never moved, so a pointer handed out stays valid until the
// component is removed.
type pool[T any] struct {
	blocks []*[poolBlockSize]T
	owner  []EntityId
	free   []int
	index  *intmap.Map[EntityId, int]
	count  int
}

func newPool[T any]() *pool[T] {
	return &pool[T]{
		index: intmap.New[EntityId, int](64),
	}
}

func (p *pool[T]) slot(i int) *T {
	return &p.blocks[i/poolBlockSize][i%poolBlockSize]
}

func (p *pool[T]) insert(id EntityId, value any) {
	var v T
	switch c := value.(type) {
	case T:
		v = c
	case *T:
		v = *c
	default:
		panic("component value does not match pool type")
	}

	if i, ok := p.index.Get(id); ok {
		*p.slot(i) = v
		return
	}

	var i int
	if n := len(p.free); n > 0 {
		i = p.free[n-1]
		p.free = p.free[:n-1]
		p.owner[i] = id
	} else {
		i = len(p.owner)
		if i/poolBlockSize >= len(p.blocks) {
			p.blocks = append(p.blocks, new([poolBlockSize]T))
		}
		p.owner = append(p.owner, id)
	}

	*p.slot(i) = v
	p.index.Put(id, i)
	p.count++
}

func (p *pool[T]) remove(id EntityId) {
	i, ok := p.index.Get(id)
	if !ok {
		return
	}
	var zero T
	*p.slot(i) = zero
	p.owner[i] = 0
	p.free = append(p.free, i)
	p.index.Del(id)
	p.count--
}

func (p *pool[T]) ptr(id EntityId) unsafe.Pointer {
	i, ok := p.index.Get(id)
	if !ok {
		return nil
	}
	return unsafe.Pointer(p.slot(i))
}

func (p *pool[T]) get(id EntityId) any {
	i, ok := p.index.Get(id)
	if !ok {
		return nil
	}
	return p.slot(i)
}

func (p *pool[T]) len() int {
	return p.count
}

// owners yields entity ids in slot order. Slots freed by removals are reused,
// so the order only matches spawn order until the first removal.
func (p *pool[T]) owners() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range p.owner {
			if id == 0 {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}
