package ecs

import (
	"fmt"
	"math"
)

// Entity is a lightweight handle made of an id and the generation the id had
// when the handle was created. It holds no data.
type Entity struct {
	id         uint32
	generation uint32
}

// Null is the invalid entity. Both fields hold the max representable value.
var Null = Entity{id: math.MaxUint32, generation: math.MaxUint32}

// NewEntity creates an Entity from an id and a generation
func NewEntity(id, generation uint32) Entity {
	return Entity{id: id, generation: generation}
}

// ID returns the entity id
func (e Entity) ID() uint32 {
	return e.id
}

// Generation returns the generation of the id captured by this handle
func (e Entity) Generation() uint32 {
	return e.generation
}

// IsNull reports whether e is the Null sentinel
func (e Entity) IsNull() bool {
	return e == Null
}

func (e Entity) String() string {
	if e.IsNull() {
		return "Entity(null)"
	}
	return fmt.Sprintf("Entity(%d@%d)", e.id, e.generation)
}
