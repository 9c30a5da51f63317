package ecs

import "iter"

const (
	poolBlockSize = 64
)

// poolRegistry holds one pool per type index. Pools live in fixed-size
// blocks, so a pool never moves once created and *SparseSet pointers handed
// out by acquire stay valid for the life of the registry.
type poolRegistry struct {
	types  *TypeIndex
	blocks []*[poolBlockSize]pool
	count  int
}

func newPoolRegistry(types *TypeIndex) poolRegistry {
	return poolRegistry{types: types}
}

// acquire returns the set for T, creating and initializing its pool on first
// use. It is the only path that binds a pool slot to a type.
func acquire[T any](pr *poolRegistry) *SparseSet[T] {
	return typedSet[T](acquirePool[T](pr))
}

// acquirePool is acquire without the final reinterpretation, for callers
// that need the erased pool itself.
func acquirePool[T any](pr *poolRegistry) *pool {
	index := TypeOf[T](pr.types)
	if index >= pr.count {
		pr.resize(index + 1)
	}

	p := pr.at(index)
	if p.needsInit() {
		initPool[T](p)
	}
	return p
}

// resize grows the registry to n slots. New slots hold uninitialized pools.
func (pr *poolRegistry) resize(n int) {
	for len(pr.blocks)*poolBlockSize < n {
		pr.blocks = append(pr.blocks, new([poolBlockSize]pool))
	}
	pr.count = n
}

// at returns the pool in slot index. index must be below len().
func (pr *poolRegistry) at(index int) *pool {
	if debugChecks {
		debugAssert(index < pr.count, "pool index out of range")
	}
	return &pr.blocks[index/poolBlockSize][index%poolBlockSize]
}

func (pr *poolRegistry) len() int {
	return pr.count
}

// all iterates every slot in type index order, initialized or not
func (pr *poolRegistry) all() iter.Seq2[int, *pool] {
	return func(yield func(int, *pool) bool) {
		for i := 0; i < pr.len(); i++ {
			if !yield(i, pr.at(i)) {
				return
			}
		}
	}
}

// release tears down every pool. Slots stay bound to their type index and
// are initialized again on the next acquire.
func (pr *poolRegistry) release() {
	for _, p := range pr.all() {
		p.release()
	}
}
