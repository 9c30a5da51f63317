package ecs

import "github.com/kamstrup/intmap"

// TypeIndex assigns a small, dense integer to every component type in the
// order types are first seen. It is not safe for concurrent use.
type TypeIndex struct {
	ids  *intmap.Map[uint64, int]
	next int
}

// NewTypeIndex creates an empty TypeIndex. The first type seen gets 0.
func NewTypeIndex() *TypeIndex {
	return &TypeIndex{
		ids: intmap.New[uint64, int](64),
	}
}

// TypeOf returns the index assigned to T, assigning the next free one on the
// first call for T.
func TypeOf[T any](ti *TypeIndex) int {
	key := typeKey[T]()
	if id, ok := ti.ids.Get(key); ok {
		return id
	}

	id := ti.next
	ti.next++
	ti.ids.Put(key, id)
	return id
}

// Len returns how many types have been assigned an index
func (ti *TypeIndex) Len() int {
	return ti.next
}
