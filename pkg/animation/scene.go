package animation

import "github.com/decker502/animstudio/internal/curve"

// Transformable is the handle a player writes evaluated transforms into.
// pkg/scene's Object satisfies it; tests substitute recording fakes.
type Transformable interface {
	SetPosition(v curve.Vec3)
	SetRotation(v curve.Vec3)
	SetScale(v curve.Vec3)
}

// Scene is the narrow port the animation core consumes from the scene graph.
// The core never enumerates or creates objects; it only resolves the names a
// clip animates. Passing the scene into Update every frame keeps the core
// free of global engine state.
type Scene interface {
	// FindObjectByName resolves a named object. The second return value is
	// false when the scene has no object with that name.
	FindObjectByName(name string) (Transformable, bool)
}
