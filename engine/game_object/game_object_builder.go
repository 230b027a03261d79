package game_object

import "github.com/Carmen-Shannon/lenticular/engine/model"

// GameObjectBuilderOption configures a GameObject in NewGameObject.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the object identifier.
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithModel sets the mesh drawn for the object.
//
// Parameters:
//   - m: the mesh
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithPosition sets the starting world position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.initial.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the starting Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation around X, Y and Z
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.initial.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the starting per-axis scale.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.initial.scale = [3]float32{sx, sy, sz}
	}
}

// WithEnabled sets whether the object starts enabled.
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}
