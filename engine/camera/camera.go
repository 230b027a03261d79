package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/lenticular/common"
)

type cameraImpl struct {
	mu sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera is a fixed perspective camera. It caches its view and projection matrices and rebuilds them whenever a
// setter changes an input.
type Camera interface {
	// Position returns the eye position in world space.
	//
	// Returns:
	//   - x, y, z: eye position
	Position() (x, y, z float32)

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - x, y, z: look-at point
	Target() (x, y, z float32)

	// Up returns the camera's up vector.
	Up() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns width / height.
	Aspect() float32

	// Near returns the near plane distance.
	Near() float32

	// Far returns the far plane distance.
	Far() float32

	// ViewMatrix returns the world-to-view matrix (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the view-to-clip matrix (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() [16]float32

	// Uniform packs the camera state in its GPU layout.
	//
	// Returns:
	//   - GPUCameraUniform: view-projection matrix and eye position
	Uniform() GPUCameraUniform

	// SetPosition moves the eye.
	//
	// Parameters:
	//   - x, y, z: eye position
	SetPosition(x, y, z float32)

	// SetTarget changes the look-at point.
	//
	// Parameters:
	//   - x, y, z: look-at point
	SetTarget(x, y, z float32)

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float32)

	// SetAspect sets width / height.
	SetAspect(aspect float32)

	// SetNear sets the near plane distance.
	SetNear(near float32)

	// SetFar sets the far plane distance.
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at (0, 0, 15) looking at the origin with a 75 degree field of view, a square aspect,
// and clip planes at 0.1 and 1000. Options override any of these.
//
// Parameters:
//   - options: CameraBuilderOption functions
//
// Returns:
//   - Camera: the camera with its matrices computed
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position: [3]float32{0, 0, 15},
		up:       [3]float32{0, 1, 0},
		fov:      75 * math.Pi / 180,
		aspect:   1,
		near:     0.1,
		far:      1000,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position[0], c.position[1], c.position[2]
}

func (c *cameraImpl) Target() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target[0], c.target[1], c.target[2]
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

// updateMatrices rebuilds the cached matrices. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
