package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/lenticular/common"
	"github.com/Carmen-Shannon/lenticular/engine/model"
)

// transform is published as a whole so a reader never sees rotation X from one update and Y from another.
type transform struct {
	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

type gameObject struct {
	name    string
	enabled atomic.Bool
	mdl     model.Model
	current atomic.Pointer[transform]

	// initial transform state applied by the builder options
	initial transform
}

// GameObject is a renderable entity: a mesh plus a transform. Setters may be called from any goroutine while the
// render loop reads the transform.
type GameObject interface {
	// Name returns the object identifier.
	Name() string

	// Enabled reports whether the object should be drawn.
	Enabled() bool

	// Model returns the mesh drawn for this object, or nil.
	Model() model.Model

	// Position returns the world position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation around X, Y and Z
	Rotation() (rx, ry, rz float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// ModelMatrix builds the model-to-world matrix from one consistent snapshot of the transform.
	//
	// Returns:
	//   - [16]float32: column-major matrix
	ModelMatrix() [16]float32

	// SetEnabled toggles drawing.
	SetEnabled(enabled bool)

	// SetPosition replaces the world position.
	SetPosition(x, y, z float32)

	// SetRotation replaces the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation around X, Y and Z
	SetRotation(rx, ry, rz float32)

	// SetScale replaces the per-axis scale.
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject at the origin with unit scale and no rotation.
//
// Parameters:
//   - options: GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the new object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		initial: transform{scale: [3]float32{1, 1, 1}},
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	t := g.initial
	g.current.Store(&t)
	return g
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Position() (x, y, z float32) {
	t := g.current.Load()
	return t.position[0], t.position[1], t.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	t := g.current.Load()
	return t.rotation[0], t.rotation[1], t.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	t := g.current.Load()
	return t.scale[0], t.scale[1], t.scale[2]
}

func (g *gameObject) ModelMatrix() [16]float32 {
	t := g.current.Load()
	var m [16]float32
	common.BuildModelMatrix(m[:], t.position, t.rotation, t.scale)
	return m
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.update(func(t *transform) { t.position = [3]float32{x, y, z} })
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.update(func(t *transform) { t.rotation = [3]float32{rx, ry, rz} })
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.update(func(t *transform) { t.scale = [3]float32{sx, sy, sz} })
}

// update copies the current transform, applies fn, and swaps the copy in. Concurrent writers retry.
func (g *gameObject) update(fn func(*transform)) {
	for {
		old := g.current.Load()
		next := *old
		fn(&next)
		if g.current.CompareAndSwap(old, &next) {
			return
		}
	}
}
