package ecs

// Commands provides a buffer for deferred registry operations that are executed at the end of a frame.
// This prevents structural changes to component pools while a view is being traversed.
type Commands struct {
	spawns   []spawnCommand
	destroys []Entity
	emplaces []componentCommand
	removes  []componentCommand
	defers   []deferCommand
}

// NewCommands creates an empty command buffer
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	fn func(*Registry, Entity)
}

type componentCommand struct {
	entity Entity
	apply  func(*Registry, Entity)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity creation. fn runs right after the entity is created
// and may attach its components; it may be nil.
func (c *Commands) Spawn(fn func(*Registry, Entity)) {
	c.spawns = append(c.spawns, spawnCommand{fn: fn})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity Entity) {
	c.destroys = append(c.destroys, entity)
}

// EmplaceLater queues attaching value to entity.
func EmplaceLater[T any](c *Commands, entity Entity, value T) {
	c.emplaces = append(c.emplaces, componentCommand{
		entity: entity,
		apply: func(r *Registry, e Entity) {
			Emplace(r, e, value)
		},
	})
}

// RemoveLater queues detaching entity's T. Entities without a T are skipped.
func RemoveLater[T any](c *Commands, entity Entity) {
	c.removes = append(c.removes, componentCommand{
		entity: entity,
		apply: func(r *Registry, e Entity) {
			if Contains[T](r, e) {
				Remove[T](r, e)
			}
		},
	})
}

// Len returns the number of queued operations
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.emplaces) + len(c.removes) + len(c.defers)
}

// Flush applies all commands to the provided registry, resetting the buffer state.
// Destroys run first; component operations on entities that are no longer
// valid are dropped, and so are repeated destroys of the same handle.
// Commands queued by spawn callbacks or deferred functions while flushing
// are applied in a further round before Flush returns.
func (c *Commands) Flush(r *Registry) {
	for c.Len() > 0 {
		batch := *c
		*c = Commands{}
		batch.apply(r)
		c.reuse(&batch)
	}
}

func (c *Commands) apply(r *Registry) {
	for _, e := range c.destroys {
		if r.Valid(e) {
			r.Destroy(e)
		}
	}

	for _, cmd := range c.removes {
		if r.Valid(cmd.entity) {
			cmd.apply(r, cmd.entity)
		}
	}

	for _, cmd := range c.emplaces {
		if r.Valid(cmd.entity) {
			cmd.apply(r, cmd.entity)
		}
	}

	for _, cmd := range c.spawns {
		e := r.Create()
		if cmd.fn != nil {
			cmd.fn(r, e)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}
}

// reuse hands the applied batch's backing arrays back to c for every buffer
// that nothing was queued into during the batch.
func (c *Commands) reuse(batch *Commands) {
	recycle(&c.spawns, batch.spawns)
	recycle(&c.destroys, batch.destroys)
	recycle(&c.emplaces, batch.emplaces)
	recycle(&c.removes, batch.removes)
	recycle(&c.defers, batch.defers)
}

func recycle[E any](dst *[]E, applied []E) {
	if *dst != nil {
		return
	}
	clear(applied)
	*dst = applied[:0]
}
