package sim

import "iter"

// remover is implemented by every component store so the World can strip
// a destroyed entity from all of them.
type remover interface {
	Remove(e Entity)
}

// Store holds one component type as a sparse set: values are packed in a
// dense slice and looked up through a slot-indexed sparse table. Iteration
// order is deterministic for a given sequence of operations.
type Store[T any] struct {
	dense    []T
	entities []Entity
	sparse   []int32 // slot index -> dense index, -1 when absent
}

// NewStore creates an empty component store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense:    make([]T, 0, 16),
		entities: make([]Entity, 0, 16),
	}
}

func (s *Store[T]) lookup(e Entity) (int, bool) {
	idx := int(e.Index())
	if idx >= len(s.sparse) {
		return 0, false
	}
	d := s.sparse[idx]
	if d < 0 || s.entities[d] != e {
		return 0, false
	}
	return int(d), true
}

// Set attaches or overwrites the component of e.
// Overwriting never moves other values, so distinct entities may be
// overwritten from different goroutines.
func (s *Store[T]) Set(e Entity, v T) {
	if d, ok := s.lookup(e); ok {
		s.dense[d] = v
		return
	}

	idx := int(e.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, -1)
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, v)
	s.entities = append(s.entities, e)
}

// Get returns the component of e and whether it is present.
func (s *Store[T]) Get(e Entity) (T, bool) {
	if d, ok := s.lookup(e); ok {
		return s.dense[d], true
	}
	var zero T
	return zero, false
}

// Has reports whether e carries this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.lookup(e)
	return ok
}

// Remove detaches the component of e. Missing components are ignored.
func (s *Store[T]) Remove(e Entity) {
	d, ok := s.lookup(e)
	if !ok {
		return
	}

	last := len(s.dense) - 1
	if d != last {
		moved := s.entities[last]
		s.dense[d] = s.dense[last]
		s.entities[d] = moved
		s.sparse[moved.Index()] = int32(d)
	}

	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	s.sparse[e.Index()] = -1
}

// Len returns the number of entities carrying this component.
func (s *Store[T]) Len() int {
	return len(s.dense)
}

// All iterates over (entity, value) pairs in dense order.
// Set on an entity that already carries the component is allowed during
// iteration; adding or removing entities is not.
func (s *Store[T]) All() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		for i := range s.dense {
			if !yield(s.entities[i], s.dense[i]) {
				return
			}
		}
	}
}

// Update calls fn with a pointer to every value for in-place mutation.
// The pointer must not be retained after fn returns.
func (s *Store[T]) Update(fn func(Entity, *T)) {
	for i := range s.dense {
		fn(s.entities[i], &s.dense[i])
	}
}
