package ecs

import (
	"iter"
	"math"
)

// absent marks a sparse slot whose id owns no value
const absent = math.MaxUint32

// SparseSet stores values of a single component type keyed by entity id.
// Values are packed in a dense slice; removal swaps the last value into the
// hole, so iteration order is not stable.
//
// Pointers returned by Emplace and Get stay valid only until the next
// Emplace or Remove on the same set.
type SparseSet[T any] struct {
	dense  []T
	owners []uint32
	sparse []uint32
}

// NewSparseSet creates an empty sparse set
func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

// Emplace stores value for id and returns a pointer to the stored value.
// If id already has a value it is returned unchanged and value is dropped.
func (s *SparseSet[T]) Emplace(id uint32, value T) *T {
	if int(id) >= len(s.sparse) {
		s.grow(int(id) + 1)
	} else if idx := s.sparse[id]; idx != absent {
		return &s.dense[idx]
	}

	s.sparse[id] = uint32(len(s.dense))
	s.owners = append(s.owners, id)
	s.dense = append(s.dense, value)
	return &s.dense[len(s.dense)-1]
}

func (s *SparseSet[T]) grow(n int) {
	old := len(s.sparse)
	if n <= cap(s.sparse) {
		s.sparse = s.sparse[:n]
	} else {
		s.sparse = append(s.sparse[:cap(s.sparse)], make([]uint32, n-cap(s.sparse))...)
	}
	for i := old; i < n; i++ {
		s.sparse[i] = absent
	}
}

// Contains reports whether id has a value in this set
func (s *SparseSet[T]) Contains(id uint32) bool {
	return int(id) < len(s.sparse) && s.sparse[id] != absent
}

// Get returns a pointer to the value of id. id must be present.
func (s *SparseSet[T]) Get(id uint32) *T {
	if debugChecks {
		debugAssert(s.Contains(id), "SparseSet.Get on absent id")
	}
	return &s.dense[s.sparse[id]]
}

// Remove drops the value of id. id must be present. The last dense value is
// moved into the freed slot.
func (s *SparseSet[T]) Remove(id uint32) {
	if debugChecks {
		debugAssert(s.Contains(id), "SparseSet.Remove on absent id")
	}

	denseIndex := s.sparse[id]
	last := uint32(len(s.dense) - 1)

	if denseIndex != last {
		s.dense[denseIndex] = s.dense[last]
		s.owners[denseIndex] = s.owners[last]
		s.sparse[s.owners[denseIndex]] = denseIndex
	}

	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[id] = absent
}

// Len returns the number of values in the set
func (s *SparseSet[T]) Len() int {
	return len(s.dense)
}

// Entities returns the owner id of every dense slot. The slice is owned by
// the set and must not be modified.
func (s *SparseSet[T]) Entities() []uint32 {
	return s.owners
}

// Values returns the dense values in the same order as Entities
func (s *SparseSet[T]) Values() []T {
	return s.dense
}

// All iterates the set in dense order, yielding each owner id with a pointer
// to its value.
func (s *SparseSet[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := 0; i < len(s.dense); i++ {
			if !yield(s.owners[i], &s.dense[i]) {
				return
			}
		}
	}
}
