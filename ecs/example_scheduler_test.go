package ecs_test

import (
	"fmt"

	"github.com/plus3/libecs/ecs"
)

type GravitySystem struct {
	bodies *ecs.View1[Velocity]
}

func (s *GravitySystem) Setup(r *ecs.Registry) {
	s.bodies = ecs.NewView1[Velocity](r)
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	for _, vel := range s.bodies.All() {
		vel.DY -= 10 * float32(frame.DeltaTime)
	}
}

type IntegrateSystem struct {
	bodies *ecs.View2[Position, Velocity]
}

func (s *IntegrateSystem) Setup(r *ecs.Registry) {
	s.bodies = ecs.NewView2[Position, Velocity](r)
}

func (s *IntegrateSystem) Execute(frame *ecs.UpdateFrame) {
	s.bodies.Each(func(_ ecs.Entity, pos *Position, vel *Velocity) {
		pos.X += vel.DX * float32(frame.DeltaTime)
		pos.Y += vel.DY * float32(frame.DeltaTime)
	})
}

// ExampleScheduler runs two systems in registration order. Views are built once
// in Setup and reused every frame.
func ExampleScheduler() {
	registry := ecs.NewRegistry()
	ball := registry.Create()
	ecs.Emplace(registry, ball, Position{X: 0, Y: 100})
	ecs.Emplace(registry, ball, Velocity{DX: 2, DY: 0})

	scheduler := ecs.NewScheduler(registry)
	scheduler.Register(&GravitySystem{})
	scheduler.Register(&IntegrateSystem{})

	for i := 0; i < 2; i++ {
		scheduler.Once(1.0)
	}

	pos := ecs.Get[Position](registry, ball)
	fmt.Printf("ball at (%.0f, %.0f)\n", pos.X, pos.Y)

	stats := scheduler.GetStats()
	for _, sys := range stats.Systems {
		fmt.Printf("%s ran %d times\n", sys.Name, sys.ExecutionCount)
	}

	// Output:
	// ball at (4, 70)
	// GravitySystem ran 2 times
	// IntegrateSystem ran 2 times
}
