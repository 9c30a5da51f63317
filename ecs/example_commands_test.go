package ecs_test

import (
	"fmt"

	"github.com/plus3/libecs/ecs"
)

type CleanupSystem struct {
	entities *ecs.View2[Position, Health]
}

func (s *CleanupSystem) Setup(r *ecs.Registry) {
	s.entities = ecs.NewView2[Position, Health](r)
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame) {
	deadCount := 0
	s.entities.Each(func(e ecs.Entity, _ *Position, h *Health) {
		if h.Current <= 0 {
			frame.Commands.Destroy(e)
			deadCount++
		}
	})
	if deadCount > 0 {
		fmt.Printf("Queued %d dead entities for destruction\n", deadCount)
	}
}

// ExampleCommands demonstrates using command buffers to defer entity mutations.
// Commands are essential when modifying entities during iteration, as destroying
// entities while a view walks a pool moves values around under it. The Scheduler
// flushes commands at the end of each frame, applying all deferred operations safely.
func ExampleCommands() {
	registry := ecs.NewRegistry()

	for _, hp := range []int{0, 50, 100} {
		e := registry.Create()
		ecs.Emplace(registry, e, Position{X: float32(hp), Y: float32(hp)})
		ecs.Emplace(registry, e, Health{Current: hp, Max: 100})
	}

	scheduler := ecs.NewScheduler(registry)
	scheduler.Register(&CleanupSystem{})

	scheduler.Once(1.0)

	remaining := 0
	for range ecs.NewView1[Position](registry).Entities() {
		remaining++
	}
	fmt.Printf("Remaining entities: %d\n", remaining)

	// Output:
	// Queued 1 dead entities for destruction
	// Remaining entities: 2
}
