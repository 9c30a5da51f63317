package ecs

import "iter"

// A view iterates the entities that have every one of its component types.
// It is driven by whichever of those pools was smallest when the view was
// created, and checks membership in the others for each candidate.
//
// Views read the pools live. Adding or removing components of the viewed
// types while a traversal is in progress is a caller error: use Commands to
// defer structural changes until the traversal ends.

// viewBase holds what every arity shares: the registry for generation lookups
// and the driving pool.
type viewBase struct {
	registry *Registry
	driving  *pool
}

func (v *viewBase) init(r *Registry, pools ...*pool) {
	v.registry = r
	for _, p := range pools {
		if v.driving == nil || p.len() < v.driving.len() {
			v.driving = p
		}
	}
}

// SizeHint returns the size of the driving pool, an upper bound on the
// number of entities the view yields.
func (v *viewBase) SizeHint() int {
	return v.driving.len()
}

// ids yields every driving pool id accepted by match, in dense order
func (v *viewBase) ids(match func(uint32) bool) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for pos := 0; pos < v.driving.len(); pos++ {
			id := v.driving.ids()[pos]
			if !match(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

func (v *viewBase) entities(match func(uint32) bool) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for id := range v.ids(match) {
			if !yield(v.entity(id)) {
				return
			}
		}
	}
}

// entity rebuilds the handle of id from the current generation table
func (v *viewBase) entity(id uint32) Entity {
	return Entity{id: id, generation: v.registry.generations[id]}
}

// View1 iterates entities having an A
type View1[A any] struct {
	viewBase
	a *SparseSet[A]
}

// NewView1 creates a view over entities having an A
func NewView1[A any](r *Registry) *View1[A] {
	pa := acquirePool[A](&r.pools)
	v := &View1[A]{a: typedSet[A](pa)}
	v.init(r, pa)
	return v
}

func (v *View1[A]) has(id uint32) bool {
	return v.a.Contains(id)
}

// Entities iterates the matching entities
func (v *View1[A]) Entities() iter.Seq[Entity] {
	return v.entities(v.has)
}

// All iterates the matching entities along with their component
func (v *View1[A]) All() iter.Seq2[Entity, *A] {
	return func(yield func(Entity, *A) bool) {
		for id := range v.ids(v.has) {
			if !yield(v.entity(id), v.a.Get(id)) {
				return
			}
		}
	}
}

// Each calls fn for every matching entity with its component
func (v *View1[A]) Each(fn func(Entity, *A)) {
	for id := range v.ids(v.has) {
		fn(v.entity(id), v.a.Get(id))
	}
}

// View2 iterates entities having both an A and a B
type View2[A, B any] struct {
	viewBase
	a *SparseSet[A]
	b *SparseSet[B]
}

// NewView2 creates a view over entities having an A and a B
func NewView2[A, B any](r *Registry) *View2[A, B] {
	pa := acquirePool[A](&r.pools)
	pb := acquirePool[B](&r.pools)
	v := &View2[A, B]{a: typedSet[A](pa), b: typedSet[B](pb)}
	v.init(r, pa, pb)
	return v
}

func (v *View2[A, B]) has(id uint32) bool {
	return v.a.Contains(id) && v.b.Contains(id)
}

// Entities iterates the matching entities
func (v *View2[A, B]) Entities() iter.Seq[Entity] {
	return v.entities(v.has)
}

// Each calls fn for every matching entity with its components
func (v *View2[A, B]) Each(fn func(Entity, *A, *B)) {
	for id := range v.ids(v.has) {
		fn(v.entity(id), v.a.Get(id), v.b.Get(id))
	}
}

// View3 iterates entities having an A, a B and a C
type View3[A, B, C any] struct {
	viewBase
	a *SparseSet[A]
	b *SparseSet[B]
	c *SparseSet[C]
}

// NewView3 creates a view over entities having an A, a B and a C
func NewView3[A, B, C any](r *Registry) *View3[A, B, C] {
	pa := acquirePool[A](&r.pools)
	pb := acquirePool[B](&r.pools)
	pc := acquirePool[C](&r.pools)
	v := &View3[A, B, C]{a: typedSet[A](pa), b: typedSet[B](pb), c: typedSet[C](pc)}
	v.init(r, pa, pb, pc)
	return v
}

func (v *View3[A, B, C]) has(id uint32) bool {
	return v.a.Contains(id) && v.b.Contains(id) && v.c.Contains(id)
}

// Entities iterates the matching entities
func (v *View3[A, B, C]) Entities() iter.Seq[Entity] {
	return v.entities(v.has)
}

// Each calls fn for every matching entity with its components
func (v *View3[A, B, C]) Each(fn func(Entity, *A, *B, *C)) {
	for id := range v.ids(v.has) {
		fn(v.entity(id), v.a.Get(id), v.b.Get(id), v.c.Get(id))
	}
}

// View4 iterates entities having an A, a B, a C and a D
type View4[A, B, C, D any] struct {
	viewBase
	a *SparseSet[A]
	b *SparseSet[B]
	c *SparseSet[C]
	d *SparseSet[D]
}

// NewView4 creates a view over entities having an A, a B, a C and a D
func NewView4[A, B, C, D any](r *Registry) *View4[A, B, C, D] {
	pa := acquirePool[A](&r.pools)
	pb := acquirePool[B](&r.pools)
	pc := acquirePool[C](&r.pools)
	pd := acquirePool[D](&r.pools)
	v := &View4[A, B, C, D]{
		a: typedSet[A](pa),
		b: typedSet[B](pb),
		c: typedSet[C](pc),
		d: typedSet[D](pd),
	}
	v.init(r, pa, pb, pc, pd)
	return v
}

func (v *View4[A, B, C, D]) has(id uint32) bool {
	return v.a.Contains(id) && v.b.Contains(id) && v.c.Contains(id) && v.d.Contains(id)
}

// Entities iterates the matching entities
func (v *View4[A, B, C, D]) Entities() iter.Seq[Entity] {
	return v.entities(v.has)
}

// Each calls fn for every matching entity with its components
func (v *View4[A, B, C, D]) Each(fn func(Entity, *A, *B, *C, *D)) {
	for id := range v.ids(v.has) {
		fn(v.entity(id), v.a.Get(id), v.b.Get(id), v.c.Get(id), v.d.Get(id))
	}
}

// Term names one component type a View requires. Build terms with With.
type Term interface {
	acquire(r *Registry) *pool
}

type withTerm[T any] struct{}

func (withTerm[T]) acquire(r *Registry) *pool {
	return acquirePool[T](&r.pools)
}

// With returns the term requiring a T
func With[T any]() Term {
	return withTerm[T]{}
}

// View iterates entities having every type named by its terms, with no limit
// on their number. Components are read with Get on the registry.
type View struct {
	viewBase
	pools []*pool
}

// NewView creates a view over entities matching all terms. With no terms it
// yields nothing.
func NewView(r *Registry, terms ...Term) *View {
	v := &View{pools: make([]*pool, 0, len(terms))}
	for _, term := range terms {
		v.pools = append(v.pools, term.acquire(r))
	}
	v.init(r, v.pools...)
	return v
}

func (v *View) has(id uint32) bool {
	for _, p := range v.pools {
		if !p.has(id) {
			return false
		}
	}
	return true
}

// SizeHint returns the size of the driving pool, or zero for a view without
// terms.
func (v *View) SizeHint() int {
	if v.driving == nil {
		return 0
	}
	return v.driving.len()
}

// Entities iterates the matching entities
func (v *View) Entities() iter.Seq[Entity] {
	if v.driving == nil {
		return func(func(Entity) bool) {}
	}
	return v.entities(v.has)
}
