package main

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/libecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *Config {
	cfg := defaults()
	cfg.Run.Entities = 200
	cfg.World.MinLifetime = 0.5
	cfg.World.MaxLifetime = 1
	return cfg
}

func TestWrap(t *testing.T) {
	assert.Equal(t, float32(5), wrap(105, 100))
	assert.Equal(t, float32(95), wrap(-5, 100))
	assert.Equal(t, float32(0), wrap(100, 100))
	assert.Equal(t, float32(42), wrap(42, 100))
	assert.Equal(t, float32(0), wrap(-1e-9, 100))
}

func TestWrapFarOutsideWorld(t *testing.T) {
	done := make(chan [4]float32, 1)
	go func() {
		done <- [4]float32{wrap(1e12, 1000), wrap(-1e12, 1000), wrap(3e38, 7), wrap(-3e38, 7)}
	}()

	select {
	case got := <-done:
		for _, v := range got[:2] {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1000))
		}
		for _, v := range got[2:] {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(7))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("wrap did not return")
	}
}

func TestMovementSurvivesHugeSpeedAndLongFrame(t *testing.T) {
	r := ecs.NewRegistry()
	ecs.NewSingleton(r, World{Width: 1000, Height: 1000})
	e := r.Create()
	ecs.Emplace(r, e, Position{X: 10, Y: 10})
	ecs.Emplace(r, e, Velocity{DX: 1e12, DY: -1e12})

	scheduler := ecs.NewScheduler(r)
	scheduler.Register(&movementSystem{})
	scheduler.Once(60)

	pos := ecs.Get[Position](r, e)
	assert.True(t, pos.X >= 0 && pos.X < 1000, "x=%v", pos.X)
	assert.True(t, pos.Y >= 0 && pos.Y < 1000, "y=%v", pos.Y)
}

func TestSpawnerAlwaysAddsPositionAndLifetime(t *testing.T) {
	r := ecs.NewRegistry()
	sp := &spawner{rng: rand.New(rand.NewPCG(1, 2)), world: defaults().World}

	for i := 0; i < 100; i++ {
		sp.spawn(r, r.Create())
	}

	assert.Equal(t, 100, ecs.Pool[Position](r).Len())
	assert.Equal(t, 100, ecs.Pool[Lifetime](r).Len())
	for _, lt := range ecs.Pool[Lifetime](r).Values() {
		assert.GreaterOrEqual(t, lt.Remaining, 1.0)
		assert.LessOrEqual(t, lt.Remaining, 5.0)
	}
	for _, pos := range ecs.Pool[Position](r).Values() {
		assert.Less(t, pos.X, float32(1000))
		assert.Less(t, pos.Y, float32(1000))
	}
}

func TestMovementWrapsAtWorldEdge(t *testing.T) {
	r := ecs.NewRegistry()
	ecs.NewSingleton(r, World{Width: 10, Height: 10})
	e := r.Create()
	ecs.Emplace(r, e, Position{X: 9, Y: 1})
	ecs.Emplace(r, e, Velocity{DX: 2, DY: -2})

	scheduler := ecs.NewScheduler(r)
	scheduler.Register(&movementSystem{})
	scheduler.Once(1)

	assert.Equal(t, Position{X: 1, Y: 9}, *ecs.Get[Position](r, e))
}

func TestLifetimeReplacesExpiredEntities(t *testing.T) {
	cfg := testConfig()
	sim := newSimulation(cfg, zap.NewNop())
	require.Equal(t, 200, sim.registry.Alive())

	// every lifetime is at most one second
	sim.scheduler.Once(1.5)

	w := sim.world.Get()
	require.NotNil(t, w)
	assert.Equal(t, int64(1), w.Frames)
	assert.Equal(t, int64(200), w.Expired)
	assert.Equal(t, int64(400), w.Spawned)
	assert.Equal(t, 200, sim.registry.Alive())

	stats := sim.registry.Stats()
	assert.Equal(t, 0, stats.FreeIds)
	assert.Equal(t, 200, ecs.Pool[Lifetime](sim.registry).Len())
}

func TestChurnTogglesVelocity(t *testing.T) {
	r := ecs.NewRegistry()
	for i := 0; i < 50; i++ {
		ecs.Emplace(r, r.Create(), Velocity{DX: float32(i)})
	}

	scheduler := ecs.NewScheduler(r)
	scheduler.Register(&churnSystem{rng: rand.New(rand.NewPCG(3, 4)), percent: 100})

	scheduler.Once(0.016)
	assert.Equal(t, 0, ecs.Pool[Velocity](r).Len())
	assert.Equal(t, 50, ecs.Pool[Frozen](r).Len())

	scheduler.Once(0.016)
	assert.Equal(t, 50, ecs.Pool[Velocity](r).Len())
	assert.Equal(t, 0, ecs.Pool[Frozen](r).Len())
	for e, vel := range ecs.NewView1[Velocity](r).All() {
		assert.Equal(t, float32(e.ID()), vel.DX)
	}
}

func TestDamageDestroysDepletedMovers(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.Create()
	ecs.Emplace(r, e, Position{})
	ecs.Emplace(r, e, Velocity{})
	ecs.Emplace(r, e, Health{Current: 2, Max: 2})
	still := r.Create()
	ecs.Emplace(r, still, Position{})
	ecs.Emplace(r, still, Health{Current: 1, Max: 1})

	scheduler := ecs.NewScheduler(r)
	scheduler.Register(&damageSystem{})

	scheduler.Once(0.016)
	assert.True(t, r.Valid(e))
	scheduler.Once(0.016)
	assert.False(t, r.Valid(e))
	assert.True(t, r.Valid(still))
}
