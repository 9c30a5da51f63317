package main

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/libecs/ecs"
)

// spawner creates entities with a random mix of components
type spawner struct {
	rng   *rand.Rand
	world WorldConfig
}

func (s *spawner) spawn(r *ecs.Registry, e ecs.Entity) {
	ecs.Emplace(r, e, Position{
		X: s.rng.Float32() * s.world.Width,
		Y: s.rng.Float32() * s.world.Height,
	})
	ecs.Emplace(r, e, Lifetime{
		Remaining: s.world.MinLifetime + s.rng.Float64()*(s.world.MaxLifetime-s.world.MinLifetime),
	})
	if s.rng.IntN(4) != 0 {
		ecs.Emplace(r, e, Velocity{
			DX: (s.rng.Float32()*2 - 1) * s.world.MaxSpeed,
			DY: (s.rng.Float32()*2 - 1) * s.world.MaxSpeed,
		})
	}
	if s.rng.IntN(2) == 0 {
		ecs.Emplace(r, e, Health{Current: 100, Max: 100})
	}
}

// movementSystem integrates velocities and wraps positions at the world edges
type movementSystem struct {
	movers *ecs.View2[Position, Velocity]
	world  ecs.Singleton[World]
}

func (s *movementSystem) Setup(r *ecs.Registry) {
	s.movers = ecs.NewView2[Position, Velocity](r)
	s.world.Init(r)
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	w := s.world.Get()
	dt := float32(frame.DeltaTime)
	s.movers.Each(func(_ ecs.Entity, pos *Position, vel *Velocity) {
		pos.X = wrap(pos.X+vel.DX*dt, w.Width)
		pos.Y = wrap(pos.Y+vel.DY*dt, w.Height)
	})
}

// wrap folds v into [0, limit)
func wrap(v, limit float32) float32 {
	m := float32(math.Mod(float64(v), float64(limit)))
	if m < 0 {
		m += limit
	}
	// -tiny + limit can round up to limit
	if m >= limit {
		m = 0
	}
	return m
}

// damageSystem drains health from moving entities and destroys the ones
// that run out.
type damageSystem struct {
	targets *ecs.View3[Health, Velocity, Position]
}

func (s *damageSystem) Setup(r *ecs.Registry) {
	s.targets = ecs.NewView3[Health, Velocity, Position](r)
}

func (s *damageSystem) Execute(frame *ecs.UpdateFrame) {
	s.targets.Each(func(e ecs.Entity, h *Health, _ *Velocity, _ *Position) {
		h.Current--
		if h.Current <= 0 {
			frame.Commands.Destroy(e)
		}
	})
}

// lifetimeSystem expires entities and queues a replacement for each one, so
// the population stays roughly constant while ids keep being recycled.
type lifetimeSystem struct {
	lifetimes *ecs.View1[Lifetime]
	world     ecs.Singleton[World]
	spawner   *spawner
}

func (s *lifetimeSystem) Setup(r *ecs.Registry) {
	s.lifetimes = ecs.NewView1[Lifetime](r)
	s.world.Init(r)
}

func (s *lifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	w := s.world.Get()
	for e, lt := range s.lifetimes.All() {
		lt.Remaining -= frame.DeltaTime
		if lt.Remaining > 0 {
			continue
		}
		frame.Commands.Destroy(e)
		frame.Commands.Spawn(s.spawner.spawn)
		w.Expired++
		w.Spawned++
	}
	w.Frames++
}

// churnSystem parks and restores velocities to exercise attach and detach
type churnSystem struct {
	movers  *ecs.View1[Velocity]
	frozen  *ecs.View1[Frozen]
	rng     *rand.Rand
	percent int
}

func (s *churnSystem) Setup(r *ecs.Registry) {
	s.movers = ecs.NewView1[Velocity](r)
	s.frozen = ecs.NewView1[Frozen](r)
}

func (s *churnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.percent == 0 {
		return
	}

	for e, vel := range s.movers.All() {
		if s.rng.IntN(100) < s.percent {
			ecs.EmplaceLater(frame.Commands, e, Frozen{Velocity: *vel})
			ecs.RemoveLater[Velocity](frame.Commands, e)
		}
	}
	for e, f := range s.frozen.All() {
		if s.rng.IntN(100) < s.percent {
			ecs.EmplaceLater(frame.Commands, e, f.Velocity)
			ecs.RemoveLater[Frozen](frame.Commands, e)
		}
	}
}

// registerSystems wires every stress system into the scheduler in frame order
func registerSystems(scheduler *ecs.Scheduler, sp *spawner, rng *rand.Rand, cfg WorldConfig) {
	scheduler.Register(&movementSystem{})
	scheduler.Register(&damageSystem{})
	scheduler.Register(&lifetimeSystem{spawner: sp})
	scheduler.Register(&churnSystem{rng: rng, percent: cfg.ChurnPercent})
}
