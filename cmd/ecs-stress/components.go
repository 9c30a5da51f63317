package main

// Position in world units
type Position struct {
	X, Y float32
}

// Velocity in world units per second
type Velocity struct {
	DX, DY float32
}

// Lifetime counts down in seconds; the entity is destroyed and replaced when
// it reaches zero.
type Lifetime struct {
	Remaining float64
}

type Health struct {
	Current int32
	Max     int32
}

// Frozen marks movers whose velocity has been parked by the churn system.
type Frozen struct {
	Velocity Velocity
}

// World is the registry-wide simulation state
type World struct {
	Width, Height float32
	Frames        int64
	Spawned       int64
	Expired       int64
}
