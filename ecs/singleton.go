package ecs

import "unsafe"

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global simulation
// state, configuration, or other registry-wide data.
type Singleton[T any] struct {
	registry     *Registry
	componentPtr unsafe.Pointer
	index        int
}

// NewSingleton creates a new Singleton accessor for the given registry.
// If initializer is provided and the singleton doesn't exist yet, it is
// created with the initializer value. Otherwise, a zero value is used.
// The singleton exists in the registry after the call.
func NewSingleton[T any](r *Registry, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{
		registry: r,
		index:    TypeOf[T](r.pools.types),
	}

	if _, ok := r.singletons.Get(s.index); !ok {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		r.singletons.Put(s.index, unsafe.Pointer(value))
	}

	s.updateCache()
	return s
}

// Init binds a zero Singleton to a registry, typically from a system's
// Setup method.
func (s *Singleton[T]) Init(r *Registry) {
	s.registry = r
	s.index = TypeOf[T](r.pools.types)
	s.updateCache()
}

// Get returns a pointer to the singleton value, or nil if the registry has
// none (for example after Registry.Clear).
func (s *Singleton[T]) Get() *T {
	s.updateCache()
	return (*T)(s.componentPtr)
}

// Exists returns true if the registry holds a value for T
func (s *Singleton[T]) Exists() bool {
	s.updateCache()
	return s.componentPtr != nil
}

// updateCache refreshes the cached pointer from the registry
func (s *Singleton[T]) updateCache() {
	if s.registry == nil {
		s.componentPtr = nil
		return
	}
	ptr, ok := s.registry.singletons.Get(s.index)
	if !ok {
		s.componentPtr = nil
		return
	}
	s.componentPtr = ptr
}
