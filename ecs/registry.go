package ecs

import (
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Registry owns entity lifecycles and the component pools. Entities are
// generational ids; destroyed ids are recycled in LIFO order.
//
// A Registry is not safe for concurrent use. The typed operations (Emplace,
// Get, Contains, Remove) do not check handle validity: passing a destroyed
// or foreign entity is a caller error.
type Registry struct {
	generations []uint32
	freeList    []uint32
	pools       poolRegistry
	singletons  *intmap.Map[int, unsafe.Pointer]
}

// Option configures a Registry
type Option func(*Registry)

// WithTypeIndex makes the registry assign pool slots from ti instead of a
// private TypeIndex. Registries sharing ti agree on the slot of every type.
func WithTypeIndex(ti *TypeIndex) Option {
	return func(r *Registry) {
		r.pools.types = ti
	}
}

// WithCapacity preallocates room for n entities
func WithCapacity(n int) Option {
	return func(r *Registry) {
		r.generations = make([]uint32, 0, n)
	}
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		pools:      newPoolRegistry(nil),
		singletons: intmap.New[int, unsafe.Pointer](8),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.pools.types == nil {
		r.pools.types = NewTypeIndex()
	}
	return r
}

// Create returns a new entity, reusing the most recently destroyed id when
// one is available.
func (r *Registry) Create() Entity {
	if len(r.freeList) == 0 {
		id := uint32(len(r.generations))
		r.generations = append(r.generations, 0)
		return Entity{id: id, generation: 0}
	}

	id := r.freeList[len(r.freeList)-1]
	r.freeList = r.freeList[:len(r.freeList)-1]
	return Entity{id: id, generation: r.generations[id]}
}

// Valid reports whether e refers to a live entity of this registry
func (r *Registry) Valid(e Entity) bool {
	return int(e.id) < len(r.generations) && r.generations[e.id] == e.generation
}

// Destroy releases e and removes its id from every pool. e must be valid;
// destroying a handle twice corrupts the free list.
func (r *Registry) Destroy(e Entity) {
	if debugChecks {
		debugAssert(r.Valid(e), "Destroy on invalid entity "+e.String())
	}

	r.freeList = append(r.freeList, e.id)
	r.generations[e.id]++

	for _, p := range r.pools.all() {
		if p.needsInit() {
			continue
		}
		p.removeID(e.id)
	}
}

// Alive returns the number of live entities
func (r *Registry) Alive() int {
	return len(r.generations) - len(r.freeList)
}

// Clear destroys every live entity and drops all component storage. The
// generation table is kept, so handles issued before Clear stay invalid.
func (r *Registry) Clear() {
	free := make([]bool, len(r.generations))
	for _, id := range r.freeList {
		free[id] = true
	}
	for id := range r.generations {
		if free[id] {
			continue
		}
		r.generations[id]++
		r.freeList = append(r.freeList, uint32(id))
	}

	r.pools.release()
	r.singletons.Clear()
}

// Emplace attaches value to e and returns a pointer to the stored component.
// If e already has a T, the existing value is returned unchanged.
func Emplace[T any](r *Registry, e Entity, value T) *T {
	return acquire[T](&r.pools).Emplace(e.id, value)
}

// Contains reports whether e has a T
func Contains[T any](r *Registry, e Entity) bool {
	return acquire[T](&r.pools).Contains(e.id)
}

// Get returns e's T. e must have one.
func Get[T any](r *Registry, e Entity) *T {
	return acquire[T](&r.pools).Get(e.id)
}

// TryGet returns e's T and true, or nil and false when e has none
func TryGet[T any](r *Registry, e Entity) (*T, bool) {
	set := acquire[T](&r.pools)
	if !set.Contains(e.id) {
		return nil, false
	}
	return set.Get(e.id), true
}

// Remove detaches e's T. e must have one.
func Remove[T any](r *Registry, e Entity) {
	acquire[T](&r.pools).Remove(e.id)
}

// Pool returns the set holding every T in the registry
func Pool[T any](r *Registry) *SparseSet[T] {
	return acquire[T](&r.pools)
}
