package ecs

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// systemTiming accumulates the durations of one system's executions
type systemTiming struct {
	runs  int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration
}

func (t *systemTiming) record(d time.Duration) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.last = d
	t.total += d
	t.runs++
}

func (t *systemTiming) snapshot(name string) SystemStats {
	out := SystemStats{
		Name:           name,
		ExecutionCount: t.runs,
		MinDuration:    t.min,
		MaxDuration:    t.max,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.runs > 0 {
		out.AvgDuration = t.total / time.Duration(t.runs)
	}
	return out
}

type scheduledSystem struct {
	system System
	name   string
	timing systemTiming
}

// Scheduler runs registered systems in registration order against one
// registry, then applies the commands they queued.
type Scheduler struct {
	registry *Registry
	systems  []*scheduledSystem
	commands *Commands
	log      *zap.Logger
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for registration and flush events
func WithLogger(log *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.log = log
	}
}

// NewScheduler creates a new scheduler for the given registry.
func NewScheduler(registry *Registry, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		registry: registry,
		commands: NewCommands(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system to the scheduler, running its Setup first if it has one.
func (s *Scheduler) Register(system System) {
	if setup, ok := system.(SystemSetup); ok {
		setup.Setup(s.registry)
	}

	entry := &scheduledSystem{system: system, name: systemName(system)}
	s.systems = append(s.systems, entry)

	s.log.Debug("system registered", zap.String("system", entry.name), zap.Int("order", len(s.systems)-1))
}

func systemName(system System) string {
	if named, ok := system.(NamedSystem); ok {
		return named.Name()
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", system), "*")
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		name = name[dot+1:]
	}
	return name
}

// Once executes all registered systems once with the given delta time, then
// flushes the commands they queued.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.registry, s.commands)

	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(frame)
		entry.timing.record(time.Since(start))
	}

	if pending := frame.Commands.Len(); pending > 0 {
		s.log.Debug("flushing commands", zap.Int("pending", pending))
	}
	frame.Commands.Flush(s.registry)
}

// Run calls Once on every tick of interval until ctx is done. The delta
// passed to systems is the measured time between ticks.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, 0, len(s.systems)),
	}
	for _, entry := range s.systems {
		stats.Systems = append(stats.Systems, entry.timing.snapshot(entry.name))
		stats.TotalExecutions += entry.timing.runs
	}
	return stats
}

// Slowest returns the name of the system with the highest average duration,
// or "" before any system has run.
func (st *SchedulerStats) Slowest() string {
	name, worst := "", time.Duration(math.MinInt64)
	for _, sys := range st.Systems {
		if sys.ExecutionCount > 0 && sys.AvgDuration > worst {
			name, worst = sys.Name, sys.AvgDuration
		}
	}
	return name
}
