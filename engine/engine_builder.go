package engine

import (
	"github.com/Carmen-Shannon/lenticular/engine/window"
	"github.com/Carmen-Shannon/lenticular/lenticular"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithWindow sets the window the engine processes events for and closes on Unmount.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the renderable drawn every frame. The engine releases it on Unmount.
//
// Parameters:
//   - s: the scene to render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s Renderable) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithInputHandler connects window pointer motion to h while mounted.
func WithInputHandler(h lenticular.Handler) EngineBuilderOption {
	return func(e *engine) {
		e.handler = h
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit.Store(int64(frameDuration(fps)))
	}
}
