package lenticular

import "sync"

// Target receives the pose produced by a Handler.
type Target interface {
	// SetBlendRatio sets the cross-fade weight of the second image.
	SetBlendRatio(ratio float32)
	// SetRotation sets the Euler rotation of the card in radians.
	SetRotation(x, y, z float32)
}

// BlendTarget is the ratio half of a Target, usually the card's material.
type BlendTarget interface {
	SetBlendRatio(ratio float32)
}

// RotationTarget is the rotation half of a Target, usually the card's game object.
type RotationTarget interface {
	SetRotation(x, y, z float32)
}

type joinedTarget struct {
	BlendTarget
	RotationTarget
}

// Join combines a blend target and a rotation target into a single Target.
//
// Parameters:
//   - blend: receives the ratio
//   - rotation: receives the tilt
//
// Returns:
//   - Target: a target forwarding to both
func Join(blend BlendTarget, rotation RotationTarget) Target {
	return joinedTarget{BlendTarget: blend, RotationTarget: rotation}
}

// Viewport reports the current display size in the same pixel space as incoming positions.
type Viewport func() (width, height float64)

// Touch is one active contact point.
type Touch struct {
	ID int
	X  float64
	Y  float64
}

// Handler turns pointer and touch movement into card poses.
type Handler interface {
	// PointerMove applies the pose for a cursor at (x, y).
	PointerMove(x, y float64)

	// TouchMove applies the pose for the first contact in touches. An empty list is ignored.
	TouchMove(touches []Touch)

	// Detach disconnects the handler from its target. Events received afterwards have no effect.
	Detach()

	// Attached reports whether Detach has not yet been called.
	Attached() bool
}

type handlerImpl struct {
	mu       sync.Mutex
	target   Target
	viewport Viewport
	maxTilt  float64
	detached bool
}

var _ Handler = &handlerImpl{}

// NewHandler creates a Handler driving target, using viewport to read the display size on every event.
//
// Parameters:
//   - target: receives ratio and rotation updates
//   - viewport: reports the display size
//   - options: HandlerBuilderOption functions
//
// Returns:
//   - Handler: the attached handler
func NewHandler(target Target, viewport Viewport, options ...HandlerBuilderOption) Handler {
	h := &handlerImpl{
		target:   target,
		viewport: viewport,
		maxTilt:  MaxTilt,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *handlerImpl) PointerMove(x, y float64) {
	h.apply(x, y)
}

func (h *handlerImpl) TouchMove(touches []Touch) {
	if len(touches) == 0 {
		return
	}
	h.apply(touches[0].X, touches[0].Y)
}

func (h *handlerImpl) Detach() {
	h.mu.Lock()
	h.detached = true
	h.mu.Unlock()
}

func (h *handlerImpl) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.detached
}

func (h *handlerImpl) apply(x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.detached || h.target == nil || h.viewport == nil {
		return
	}

	w, ht := h.viewport()
	// a zero sized display has no meaningful center
	if w <= 0 || ht <= 0 {
		return
	}

	pose := mapWithTilt(x, y, w, ht, h.maxTilt)
	h.target.SetBlendRatio(float32(pose.Ratio))
	h.target.SetRotation(float32(pose.TiltX), float32(pose.TiltY), 0)
}
