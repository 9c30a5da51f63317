package ecs

import "unsafe"

// erasedSet has the memory layout shared by every SparseSet[T]: three slice
// headers. A pool keeps its set inline in one of these.
type erasedSet = SparseSet[struct{}]

// Every SparseSet instantiation must fit the erased layout exactly.
var (
	_ [unsafe.Sizeof(erasedSet{}) - unsafe.Sizeof(SparseSet[[64]byte]{})]struct{}
	_ [unsafe.Sizeof(SparseSet[[64]byte]{}) - unsafe.Sizeof(erasedSet{})]struct{}
)

// noCopy makes go vet flag pools copied by value. Use moveFrom instead.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// pool holds a SparseSet of a type only known at init time, together with
// the entry points needed to operate on it without knowing that type.
type pool struct {
	_ noCopy

	storage erasedSet
	tag     poolTag

	destroy  func(unsafe.Pointer)
	remove   func(unsafe.Pointer, uint32)
	size     func(unsafe.Pointer) int
	entities func(unsafe.Pointer) []uint32
	contains func(unsafe.Pointer, uint32) bool
}

func (p *pool) needsInit() bool {
	return p.destroy == nil
}

// initPool constructs an empty SparseSet[T] in p and binds the entry points
// for T. It must be called exactly once before any other operation.
func initPool[T any](p *pool) {
	if debugChecks {
		debugAssert(p.needsInit(), "pool initialized twice")
	}

	*(*SparseSet[T])(unsafe.Pointer(&p.storage)) = SparseSet[T]{}
	p.tag.set(typeKey[T]())

	p.destroy = destroySet[T]
	p.remove = removeFromSet[T]
	p.size = sizeOfSet[T]
	p.entities = entitiesOfSet[T]
	p.contains = setContains[T]
}

// typedSet reinterprets the pool storage as SparseSet[T]. T must be the type
// the pool was initialized with; only debug builds verify it.
func typedSet[T any](p *pool) *SparseSet[T] {
	p.tag.check(typeKey[T]())
	return (*SparseSet[T])(unsafe.Pointer(&p.storage))
}

// removeID drops id from the set if present
func (p *pool) removeID(id uint32) {
	p.remove(unsafe.Pointer(&p.storage), id)
}

// len is zero for released pools, so views outliving Registry.Clear see
// nothing instead of faulting.
func (p *pool) len() int {
	if p.size == nil {
		return 0
	}
	return p.size(unsafe.Pointer(&p.storage))
}

func (p *pool) ids() []uint32 {
	return p.entities(unsafe.Pointer(&p.storage))
}

func (p *pool) has(id uint32) bool {
	return p.contains(unsafe.Pointer(&p.storage), id)
}

// release tears down the set and clears the entry points. Calling it on an
// uninitialized or already released pool does nothing.
func (p *pool) release() {
	if p.destroy == nil {
		return
	}

	p.destroy(unsafe.Pointer(&p.storage))
	p.tag.reset()
	p.clearEntries()
}

// moveFrom takes over the storage and entry points of src. src is left
// uninitialized and its release becomes a no-op.
func (p *pool) moveFrom(src *pool) {
	p.storage = src.storage
	p.tag = src.tag
	p.destroy = src.destroy
	p.remove = src.remove
	p.size = src.size
	p.entities = src.entities
	p.contains = src.contains

	src.storage = erasedSet{}
	src.tag.reset()
	src.clearEntries()
}

func (p *pool) clearEntries() {
	p.destroy = nil
	p.remove = nil
	p.size = nil
	p.entities = nil
	p.contains = nil
}

func destroySet[T any](storage unsafe.Pointer) {
	*(*SparseSet[T])(storage) = SparseSet[T]{}
}

func removeFromSet[T any](storage unsafe.Pointer, id uint32) {
	set := (*SparseSet[T])(storage)
	if set.Contains(id) {
		set.Remove(id)
	}
}

func sizeOfSet[T any](storage unsafe.Pointer) int {
	return (*SparseSet[T])(storage).Len()
}

func entitiesOfSet[T any](storage unsafe.Pointer) []uint32 {
	return (*SparseSet[T])(storage).Entities()
}

func setContains[T any](storage unsafe.Pointer, id uint32) bool {
	return (*SparseSet[T])(storage).Contains(id)
}
