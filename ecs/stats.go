package ecs

// RegistryStats is a snapshot of registry occupancy
type RegistryStats struct {
	AliveEntities  int
	FreeIds        int
	PoolCount      int
	ComponentCount int
	SingletonCount int
	Pools          []PoolStats
}

// PoolStats describes one initialized pool
type PoolStats struct {
	TypeIndex int
	Size      int
}

// Stats collects occupancy counters. Uninitialized pool slots are skipped.
func (r *Registry) Stats() RegistryStats {
	stats := RegistryStats{
		AliveEntities:  r.Alive(),
		FreeIds:        len(r.freeList),
		SingletonCount: r.singletons.Len(),
	}

	for index, p := range r.pools.all() {
		if p.needsInit() {
			continue
		}
		size := p.len()
		stats.PoolCount++
		stats.ComponentCount += size
		stats.Pools = append(stats.Pools, PoolStats{TypeIndex: index, Size: size})
	}

	return stats
}
