package ecs

import "iter"

// Query caches the results of a View for the duration of one frame.
// The Scheduler calls Execute before running the system that owns the query,
// so systems iterate a stable snapshot even while they queue commands.
type Query[T any] struct {
	view  *View[T]
	ids   []EntityId
	items []T
	valid bool
}

// NewQuery creates a query bound to storage
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to a storage and drops any cached results
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.ids = q.ids[:0]
	q.items = q.items[:0]
	q.valid = false
}

// Execute rebuilds the cached results from the current storage contents
func (q *Query[T]) Execute() {
	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for id, item := range q.view.Iter() {
		q.ids = append(q.ids, id)
		q.items = append(q.items, item)
	}
	q.valid = true
}

// Iter yields the cached entity ids and views.
// Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Values yields the cached views.
// Panics if Execute has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}

// Len returns the number of cached results
func (q *Query[T]) Len() int {
	return len(q.items)
}
