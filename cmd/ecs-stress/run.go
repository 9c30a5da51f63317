package main

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/plus3/libecs/ecs"
	"go.uber.org/zap"
)

// simulation bundles the registry and scheduler of one run
type simulation struct {
	registry  *ecs.Registry
	scheduler *ecs.Scheduler
	world     *ecs.Singleton[World]
}

func newSimulation(cfg *Config, log *zap.Logger) *simulation {
	rng := rand.New(rand.NewPCG(cfg.Run.Seed, cfg.Run.Seed^0x9e3779b97f4a7c15))
	registry := ecs.NewRegistry(ecs.WithCapacity(cfg.Run.Entities))
	world := ecs.NewSingleton(registry, World{Width: cfg.World.Width, Height: cfg.World.Height})

	sp := &spawner{rng: rng, world: cfg.World}
	for i := 0; i < cfg.Run.Entities; i++ {
		sp.spawn(registry, registry.Create())
	}
	world.Get().Spawned = int64(cfg.Run.Entities)

	scheduler := ecs.NewScheduler(registry, ecs.WithLogger(log))
	registerSystems(scheduler, sp, rng, cfg.World)

	return &simulation{registry: registry, scheduler: scheduler, world: world}
}

func runSimulation(ctx context.Context, cfg *Config, log *zap.Logger) *Report {
	log.Info("populating registry", zap.Int("entities", cfg.Run.Entities))
	sim := newSimulation(cfg, log)

	report := &Report{
		Duration:       cfg.Run.Duration,
		Entities:       cfg.Run.Entities,
		Seed:           cfg.Run.Seed,
		ChurnPercent:   cfg.World.ChurnPercent,
		GCPauseMetrics: cfg.Run.GCPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", cfg.Run.Duration))
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Run.Duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			sim.scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Registry = sim.registry.Stats()
	report.Scheduler = sim.scheduler.GetStats()
	if w := sim.world.Get(); w != nil {
		report.World = *w
	}

	log.Info("simulation finished",
		zap.Int64("updates", report.TotalUpdates),
		zap.Int("alive", report.Registry.AliveEntities),
	)
	return report
}
