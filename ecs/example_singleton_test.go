package ecs_test

import (
	"fmt"

	"github.com/plus3/libecs/ecs"
)

type SimConfig struct {
	MaxAgents  int
	Difficulty string
}

type SimClock struct {
	Tick int
}

// ExampleNewSingleton demonstrates creating and accessing singleton components.
// Singletons are registry-wide values not associated with any entity, useful
// for simulation state, configuration, or other application-wide data.
func ExampleNewSingleton() {
	registry := ecs.NewRegistry()

	// Create singleton with initializer
	config := ecs.NewSingleton(registry, SimConfig{
		MaxAgents:  4,
		Difficulty: "Normal",
	})

	fmt.Printf("Config: %d agents, %s difficulty\n", config.Get().MaxAgents, config.Get().Difficulty)

	// Modify the singleton
	config.Get().Difficulty = "Hard"
	fmt.Printf("Updated difficulty: %s\n", config.Get().Difficulty)

	// Create another reference to the same singleton
	sameConfig := ecs.NewSingleton[SimConfig](registry)
	fmt.Printf("Same config: %s difficulty\n", sameConfig.Get().Difficulty)

	// Output:
	// Config: 4 agents, Normal difficulty
	// Updated difficulty: Hard
	// Same config: Hard difficulty
}

type clockSystem struct {
	clock ecs.Singleton[SimClock]
}

func (s *clockSystem) Setup(r *ecs.Registry) {
	ecs.NewSingleton[SimClock](r)
	s.clock.Init(r)
}

func (s *clockSystem) Execute(*ecs.UpdateFrame) {
	s.clock.Get().Tick++
}

// ExampleSingleton_Init shows a system binding a Singleton field during
// registration and updating it every frame.
func ExampleSingleton_Init() {
	registry := ecs.NewRegistry()
	scheduler := ecs.NewScheduler(registry)
	scheduler.Register(&clockSystem{})

	for i := 0; i < 3; i++ {
		scheduler.Once(1.0 / 60)
	}

	fmt.Printf("Ticks: %d\n", ecs.NewSingleton[SimClock](registry).Get().Tick)

	registry.Clear()
	fmt.Printf("Ticks after clear: %d\n", ecs.NewSingleton[SimClock](registry).Get().Tick)

	// Output:
	// Ticks: 3
	// Ticks after clear: 0
}
