package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and can keep views and custom
// state in fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemSetup is implemented by systems that build views or bind singletons
// once, when they are registered with a Scheduler.
type SystemSetup interface {
	Setup(registry *Registry)
}

// NamedSystem overrides the name a system is reported under in scheduler stats.
type NamedSystem interface {
	Name() string
}
